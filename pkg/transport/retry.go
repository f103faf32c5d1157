package transport

import "time"

// decisionKind enumerates how the call loop proceeds after a failed attempt.
type decisionKind int

const (
	// decisionStop propagates the error to the caller.
	decisionStop decisionKind = iota

	// decisionRetryAfter re-attempts the request after waiting.
	decisionRetryAfter

	// decisionRefreshAndRetryOnce refreshes the token unconditionally and
	// re-attempts the request once, outside the regular retry budget.
	decisionRefreshAndRetryOnce
)

// decision is the outcome of the retry policy for one failed attempt.
type decision struct {
	kind decisionKind
	wait time.Duration
}

// retryPolicy decides whether a failed attempt is retried. It is a pure
// function of the classified error and the attempt number, so it can be
// tested independently of the HTTP layer.
type retryPolicy struct {
	// MaxRetries is the number of re-attempts allowed after the initial
	// request for server errors.
	MaxRetries int

	// Backoff is the base delay; attempt n waits Backoff * 2^n.
	Backoff time.Duration
}

// decide returns the retry decision for the error observed on the given
// 0-indexed attempt. Only server errors consume the retry budget; an auth
// failure requests a single refresh-and-retry which the call loop caps at
// one occurrence per call.
func (p retryPolicy) decide(err error, attempt int) decision {
	switch ClassOf(err) {
	case ClassServer:
		if attempt >= p.MaxRetries {
			return decision{kind: decisionStop}
		}
		return decision{kind: decisionRetryAfter, wait: p.Backoff << attempt}
	case ClassAuth:
		return decision{kind: decisionRefreshAndRetryOnce}
	default:
		return decision{kind: decisionStop}
	}
}
