package transport

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "api error with status",
			err:  &Error{Class: ClassValidation, StatusCode: 400, Message: "validation error"},
			want: "flanks validation error (status 400): validation error",
		},
		{
			name: "wrapped network cause",
			err:  &Error{Class: ClassNetwork, Message: "POST /v0/test failed", Err: errors.New("connection refused")},
			want: "flanks network error: POST /v0/test failed: connection refused",
		},
		{
			name: "config error without status",
			err:  &Error{Class: ClassConfig, Message: "client_id is required"},
			want: "flanks config error: client_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := newNetworkError("request failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	wrapped := fmt.Errorf("fetching entities: %w", err)
	var apiErr *Error
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As should find *Error through wrapping")
	}
	if apiErr.Class != ClassNetwork {
		t.Errorf("Class = %q, want %q", apiErr.Class, ClassNetwork)
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("plain"), want: ""},
		{name: "direct", err: classify(401, nil), want: ClassAuth},
		{name: "wrapped", err: fmt.Errorf("listing links: %w", classify(500, nil)), want: ClassServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassOf(tt.err); got != tt.want {
				t.Errorf("ClassOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		statusCode int
		want       Class
	}{
		{400, ClassValidation},
		{401, ClassAuth},
		{404, ClassNotFound},
		{500, ClassServer},
		{502, ClassServer},
		{503, ClassServer},
		{402, ClassAPI},
		{403, ClassAPI},
		{418, ClassAPI},
		{429, ClassAPI},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.statusCode), func(t *testing.T) {
			err := classify(tt.statusCode, []byte(`{"error": "detail"}`))
			if err.Class != tt.want {
				t.Errorf("Class = %q, want %q", err.Class, tt.want)
			}
			if err.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", err.StatusCode, tt.statusCode)
			}
			if !strings.Contains(string(err.Body), "detail") {
				t.Errorf("Body = %q, want raw response preserved", err.Body)
			}
		})
	}
}
