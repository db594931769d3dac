// Package httptp is the HTTP transport: it carries encoded query documents
// to a GraphQL endpoint as JSON POST requests and decodes the response body
// into the transport result shape.
package httptp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/TheRealReal/graphql-client/internal/document"
	"github.com/TheRealReal/graphql-client/internal/eventbus"
	"github.com/TheRealReal/graphql-client/internal/events"
	"github.com/TheRealReal/graphql-client/internal/reqid"
	"github.com/TheRealReal/graphql-client/internal/transport"
)

// Transport implements transport.Backend over HTTP. It is stateless apart
// from its configuration and safe for concurrent use.
type Transport struct {
	url  string
	opts *Options
}

var _ transport.Backend = (*Transport)(nil)

// New creates an HTTP transport for the given endpoint URL.
func New(url string, opts ...Option) (*Transport, error) {
	if url == "" {
		return nil, ErrMissingEndpoint
	}
	o := defaultOptions()
	for _, f := range opts {
		f(o)
	}
	if o.Client == nil {
		o.Client = http.DefaultClient
	}
	return &Transport{url: url, opts: o}, nil
}

// request is the GraphQL-over-HTTP request body.
type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Dispatch encodes doc, POSTs it, and decodes the response. GraphQL errors
// come back inside the Response; the error return covers transport failures
// only.
func (t *Transport) Dispatch(ctx context.Context, doc document.Document, variables map[string]any, opts transport.Options) (*transport.Response, error) {
	if _, ok := ctx.Deadline(); !ok {
		timeout := t.opts.RequestTimeout
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
	}

	ctx, _ = reqid.NewContext(ctx)
	query := document.Encode(doc)
	start := time.Now()
	eventbus.Publish(ctx, events.DispatchStart{
		Query:         query,
		OperationName: doc.Name,
		OperationType: string(doc.Operation),
	})

	resp, err := t.roundTrip(ctx, query, doc.Name, variables, opts.Headers)

	finish := events.DispatchFinish{
		Query:         query,
		OperationName: doc.Name,
		OperationType: string(doc.Operation),
		Err:           err,
		Duration:      time.Since(start),
	}
	if resp != nil {
		finish.State = resp.State().String()
	}
	eventbus.Publish(ctx, finish)

	return resp, err
}

func (t *Transport) roundTrip(ctx context.Context, query, operationName string, variables map[string]any, headers map[string]string) (*transport.Response, error) {
	body, err := json.Marshal(request{
		Query:         query,
		OperationName: operationName,
		Variables:     variables,
	})
	if err != nil {
		return nil, fmt.Errorf("httptp: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("httptp: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for name, value := range t.opts.Headers {
		req.Header.Set(name, value)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	httpResp, err := t.opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httptp: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, fmt.Errorf("httptp: server returned %s: %s", httpResp.Status, snippet)
	}

	var out transport.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("httptp: decode response: %w", err)
	}
	return &out, nil
}
