package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/flanks-io/flanks-go/pkg/transport"
)

// nextTokenKey is the cursor field every paginated response carries.
const nextTokenKey = "next_page_token"

// Pager drives a single cursor-based endpoint. The body template is sent
// on every request, merged with the current page_token; itemsKey names the
// field holding the page's item array.
type Pager[T any] struct {
	conn     *transport.Connection
	path     string
	body     map[string]any
	itemsKey string
}

// NewPager creates a pager for one endpoint. The body template is not
// copied; callers must not mutate it while iterating.
func NewPager[T any](conn *transport.Connection, path string, body map[string]any, itemsKey string) *Pager[T] {
	return &Pager[T]{
		conn:     conn,
		path:     path,
		body:     body,
		itemsKey: itemsKey,
	}
}

// Next fetches a single page. An empty pageToken requests the first page.
// A response that is not an object, or that lacks the items field, fails
// with a contract-classified error; such failures are never retried here
// (server-error retries already happened inside the transport).
func (p *Pager[T]) Next(ctx context.Context, pageToken string) (Page[T], error) {
	payload := make(map[string]any, len(p.body)+1)
	for k, v := range p.body {
		payload[k] = v
	}
	if pageToken != "" {
		payload["page_token"] = pageToken
	} else {
		payload["page_token"] = nil
	}

	raw, err := p.conn.Call(ctx, http.MethodPost, p.path, payload, nil)
	if err != nil {
		return Page[T]{}, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Page[T]{}, contractError("expected object response from %s: %v", p.path, err)
	}

	itemsRaw, ok := envelope[p.itemsKey]
	if !ok {
		return Page[T]{}, contractError("response from %s missing %q field", p.path, p.itemsKey)
	}

	var items []T
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return Page[T]{}, contractError("decode %q items from %s: %v", p.itemsKey, p.path, err)
	}

	var next string
	if tokenRaw, ok := envelope[nextTokenKey]; ok {
		// An absent or null cursor terminates iteration; unmarshalling
		// null into a string is a no-op.
		if err := json.Unmarshal(tokenRaw, &next); err != nil {
			return Page[T]{}, contractError("decode %s from %s: %v", nextTokenKey, p.path, err)
		}
	}

	log.Debug().
		Str("endpoint", p.path).
		Int("items", len(items)).
		Bool("has_next", next != "").
		Msg("Fetched page")

	return Page[T]{Items: items, NextPageToken: next}, nil
}

// All returns a lazy sequence over every item on every page, in server
// order. The next page is requested only after the previous page's items
// have been consumed; breaking out of the loop stops all fetching. The
// sequence restarts from the first page on each call.
func (p *Pager[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		token := ""
		for {
			page, err := p.Next(ctx, token)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
			if !page.HasNext() {
				return
			}
			token = page.NextPageToken
		}
	}
}

// contractError builds a contract-classified transport error.
func contractError(format string, args ...any) *transport.Error {
	return &transport.Error{
		Class:   transport.ClassContract,
		Message: fmt.Sprintf(format, args...),
	}
}
