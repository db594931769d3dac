// Package transport defines the dispatch boundary between built query
// documents and whatever carries them to a GraphQL server. The core document
// packages know nothing about I/O; everything network-shaped lives behind
// the Backend interface.
package transport

import (
	"context"
	"time"

	"github.com/TheRealReal/graphql-client/internal/document"
)

// Backend dispatches one document with its variable values and returns the
// server's response. Implementations MUST be safe for concurrent use; the
// batch layer may dispatch from multiple goroutines.
//
// Provided implementations:
// - internal/httptp.Transport: production HTTP client
// - Mock (transport_mock.go): in-memory test double
type Backend interface {
	// Dispatch executes a single request. The error return is reserved for
	// transport-level failures (connectivity, protocol, decoding); GraphQL
	// execution errors come back inside Response.
	Dispatch(ctx context.Context, doc document.Document, variables map[string]any, opts Options) (*Response, error)
}

// Options is the per-dispatch options bag. Backends apply what they
// understand and ignore the rest.
type Options struct {
	// Headers are extra transport headers for this dispatch.
	Headers map[string]string

	// Timeout bounds the dispatch if the incoming context has no deadline.
	// 0 means the backend default applies.
	Timeout time.Duration
}

// ResponseError is one error entry of a GraphQL response.
type ResponseError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e ResponseError) Error() string {
	return e.Message
}

// State classifies a Response. GraphQL execution can succeed for part of a
// selection set while other parts fail, so callers must branch three ways
// rather than treating any error as total failure.
type State int

const (
	// StateSuccess: data and no errors.
	StateSuccess State = iota
	// StateFailure: errors and no data.
	StateFailure
	// StatePartial: data and errors side by side.
	StatePartial
)

func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	case StatePartial:
		return "partial"
	default:
		return "unknown"
	}
}

// Response is the decoded GraphQL response body.
type Response struct {
	Data   any             `json:"data"`
	Errors []ResponseError `json:"errors,omitempty"`
}

// State reports whether the response is a full success, a full failure, or a
// partial success.
func (r *Response) State() State {
	switch {
	case len(r.Errors) == 0:
		return StateSuccess
	case r.Data == nil:
		return StateFailure
	default:
		return StatePartial
	}
}
