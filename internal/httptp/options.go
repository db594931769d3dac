package httptp

import (
	"net/http"
	"time"
)

// Options configures the HTTP transport behavior.
//
// Defaults:
// - RequestTimeout: 10s (used only if the incoming context has no deadline
//   and the per-dispatch options carry no timeout)
// - Client:         http.DefaultClient
//
// All options are safe to leave zero-valued to use defaults.

type Options struct {
	Client *http.Client

	RequestTimeout time.Duration

	// Headers are sent with every dispatch. Per-dispatch headers with the
	// same name take precedence.
	Headers map[string]string
}

// Option mutates Options
//
// Use WithX helpers below.

type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Client:         http.DefaultClient,
		RequestTimeout: 10 * time.Second,
	}
}

func WithClient(c *http.Client) Option          { return func(o *Options) { o.Client = c } }
func WithRequestTimeout(d time.Duration) Option { return func(o *Options) { o.RequestTimeout = d } }
func WithHeader(name, value string) Option {
	return func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[name] = value
	}
}
