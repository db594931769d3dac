package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/TheRealReal/graphql-client/internal/document"
)

// DispatchRecord captures a single Dispatch invocation for assertions.
type DispatchRecord struct {
	// Document is the dispatched document as built.
	Document document.Document
	// Query is the encoded query text, for convenience.
	Query string
	// Variables is a shallow copy of the variable values.
	Variables map[string]any
	// Options is the options bag as passed.
	Options Options
}

// Mock implements Backend and returns pre-seeded responses in order, while
// recording Dispatch invocations for inspection.
type Mock struct {
	mu        sync.Mutex
	responses []*Response
	errs      []error
	idx       int
	calls     []DispatchRecord
}

// NewMock creates a Mock that will return the provided responses in order
// for successive Dispatch() invocations.
func NewMock(responses ...*Response) *Mock {
	cp := make([]*Response, len(responses))
	copy(cp, responses)
	return &Mock{responses: cp}
}

// NewMockWithErrors allows seeding per-dispatch errors alongside responses.
// For dispatch i, if errs[i] is non-nil, Dispatch returns that error and
// ignores responses[i]. If errs is shorter than responses, remaining
// dispatches use responses with no error.
func NewMockWithErrors(responses []*Response, errs []error) *Mock {
	cp := make([]*Response, len(responses))
	copy(cp, responses)
	ep := make([]error, len(errs))
	copy(ep, errs)
	return &Mock{responses: cp, errs: ep}
}

// Respond queues one more response, after those already seeded.
func (m *Mock) Respond(resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Dispatch records the invocation and returns the next queued response.
// If responses are exhausted, it returns an error.
func (m *Mock) Dispatch(ctx context.Context, doc document.Document, variables map[string]any, opts Options) (*Response, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	var vars map[string]any
	if variables != nil {
		vars = make(map[string]any, len(variables))
		for k, v := range variables {
			vars[k] = v
		}
	}
	m.calls = append(m.calls, DispatchRecord{
		Document:  doc,
		Query:     document.Encode(doc),
		Variables: vars,
		Options:   opts,
	})

	if m.idx >= len(m.responses) && m.idx >= len(m.errs) {
		return nil, fmt.Errorf("mock backend: no more responses")
	}
	if m.idx < len(m.errs) {
		if err := m.errs[m.idx]; err != nil {
			m.idx++
			return nil, err
		}
	}
	var resp *Response
	if m.idx < len(m.responses) {
		resp = m.responses[m.idx]
	}
	m.idx++
	if resp == nil {
		return nil, fmt.Errorf("mock backend: no response seeded for dispatch %d", m.idx)
	}
	return resp, nil
}

// Calls returns a copy of the recorded dispatches in order.
func (m *Mock) Calls() []DispatchRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DispatchRecord, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears recorded dispatches and rewinds the response queue.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.idx = 0
}
