package httptp

import "errors"

var (
	// ErrMissingEndpoint indicates New was called without an endpoint URL.
	ErrMissingEndpoint = errors.New("httptp: endpoint URL is required")
)
