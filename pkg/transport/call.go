package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/go-querystring/query"
)

// Version is the library version reported in the User-Agent header.
const Version = "0.1.0"

const userAgent = "flanks-go/" + Version

// Call executes an authenticated API call and returns the raw decoded JSON
// body. method must be one of GET, POST, PUT, DELETE; an empty method
// defaults to POST. For GET requests the body is ignored and params (a
// url.Values or a struct with `url` tags) is encoded into the query string;
// for the other methods body is sent as the JSON payload (an empty object
// when nil).
//
// Server errors (>=500) are retried up to MaxRetries times with exponential
// backoff. A 401 triggers exactly one token refresh followed by one
// re-attempt, regardless of the remaining retry budget; a second 401
// propagates. All other failures propagate immediately as classified
// errors.
func (c *Connection) Call(ctx context.Context, method, path string, body any, params any) (json.RawMessage, error) {
	if method == "" {
		method = http.MethodPost
	}
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, newConfigError("unsupported method %q", method)
	}

	start := time.Now()
	defer func() {
		flanksRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	refreshed := false
	attempt := 0
	for {
		raw, err := c.execute(ctx, method, path, body, params)
		if err == nil {
			if attempt > 0 || refreshed {
				c.logger.Info().
					Str("endpoint", path).
					Int("attempt", attempt+1).
					Msg("Request succeeded after retry")
			}
			return raw, nil
		}

		class := ClassOf(err)
		flanksErrorsTotal.WithLabelValues(string(class)).Inc()

		switch d := c.policy.decide(err, attempt); d.kind {
		case decisionRetryAfter:
			flanksRetriesTotal.WithLabelValues(string(class)).Inc()
			c.logger.Warn().
				Str("endpoint", path).
				Str("error_class", string(class)).
				Int("attempt", attempt+1).
				Dur("backoff", d.wait).
				Msg("Retrying request after backoff")

			select {
			case <-ctx.Done():
				return nil, newNetworkError("request cancelled during backoff", ctx.Err())
			case <-time.After(d.wait):
			}
			attempt++

		case decisionRefreshAndRetryOnce:
			if refreshed {
				c.logger.Warn().
					Str("endpoint", path).
					Msg("Auth error persists after token refresh")
				return nil, err
			}
			refreshed = true
			c.logger.Info().
				Str("endpoint", path).
				Msg("Token rejected, refreshing and retrying once")
			if rerr := c.forceRefresh(ctx); rerr != nil {
				return nil, rerr
			}

		default:
			if class == ClassServer {
				flanksRetryExhaustedTotal.WithLabelValues(string(class)).Inc()
				c.logger.Warn().
					Str("endpoint", path).
					Int("attempts", attempt+1).
					Msg("Retry budget exhausted")
			}
			return nil, err
		}
	}
}

// execute performs a single authenticated HTTP attempt.
func (c *Connection) execute(ctx context.Context, method, path string, body any, params any) (json.RawMessage, error) {
	token, err := c.bearerToken()
	if err != nil {
		return nil, err
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	if method == http.MethodGet && params != nil {
		values, err := encodeParams(params)
		if err != nil {
			return nil, err
		}
		u.RawQuery = values.Encode()
	}

	var reqBody io.Reader
	if method != http.MethodGet {
		if body == nil {
			body = struct{}{}
		}
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, newContractError("marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, newContractError("create request: %v", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http().Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", path).Msg("HTTP request failed")
		flanksRequestsTotal.WithLabelValues(path, "network_error").Inc()
		return nil, newNetworkError(fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError("read response body", err)
	}

	flanksRequestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().
			Str("endpoint", path).
			Int("status", resp.StatusCode).
			Msg("API request error")
		return nil, classify(resp.StatusCode, data)
	}

	return json.RawMessage(data), nil
}

// encodeParams converts GET parameters into url.Values. url.Values pass
// through unchanged; structs are encoded via their `url` tags.
func encodeParams(params any) (url.Values, error) {
	switch v := params.(type) {
	case url.Values:
		return v, nil
	default:
		values, err := query.Values(params)
		if err != nil {
			return nil, newContractError("encode query params: %v", err)
		}
		return values, nil
	}
}

// Object executes a call whose response must be a JSON object and decodes
// it into T. An array (or other shape) response fails with a
// contract-classified error and is never retried.
func Object[T any](ctx context.Context, c *Connection, method, path string, body any, params any) (T, error) {
	var out T
	raw, err := c.Call(ctx, method, path, body, params)
	if err != nil {
		return out, err
	}
	if !startsWith(raw, '{') {
		return out, newContractError("expected object response from %s", path)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, newContractError("decode object response from %s: %v", path, err)
	}
	return out, nil
}

// List executes a call whose response must be a JSON array and decodes it
// into a slice of T.
func List[T any](ctx context.Context, c *Connection, method, path string, body any, params any) ([]T, error) {
	raw, err := c.Call(ctx, method, path, body, params)
	if err != nil {
		return nil, err
	}
	if !startsWith(raw, '[') {
		return nil, newContractError("expected array response from %s", path)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, newContractError("decode array response from %s: %v", path, err)
	}
	return out, nil
}

// startsWith reports whether the first non-whitespace byte of raw is b.
func startsWith(raw []byte, b byte) bool {
	for _, r := range raw {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return r == b
		}
	}
	return false
}
