// Package batch folds several independently built documents into one
// network round trip. Callers add documents with their variable values and
// a callback; Run merges everything into a single operation, dispatches it
// once, and folds the callbacks over an accumulator.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/TheRealReal/graphql-client/internal/document"
	"github.com/TheRealReal/graphql-client/internal/eventbus"
	"github.com/TheRealReal/graphql-client/internal/events"
	"github.com/TheRealReal/graphql-client/internal/transport"
)

// Callback consumes the batch response and the accumulator so far,
// returning the next accumulator value. Each entry usually picks its own
// slice of the merged response out of resp.Data.
type Callback func(resp *transport.Response, acc any) any

type entry struct {
	doc      document.Document
	vars     map[string]any
	callback Callback
}

// Batch accumulates documents until Run. The zero value is not usable; use
// New. A Batch is not safe for concurrent mutation.
type Batch struct {
	name    string
	entries []entry
}

// New creates an empty batch. The name becomes the merged operation's name.
func New(name string) *Batch {
	return &Batch{name: name}
}

// Add appends a document with its variable values and an optional callback.
// Every document in a batch must share the operation kind of the first one.
func (b *Batch) Add(doc document.Document, vars map[string]any, cb Callback) error {
	if len(b.entries) > 0 && doc.Operation != b.entries[0].doc.Operation {
		return fmt.Errorf("batch %q: cannot add %s document %q to a %s batch",
			b.name, doc.Operation, doc.Name, b.entries[0].doc.Operation)
	}
	b.entries = append(b.entries, entry{doc: doc, vars: vars, callback: cb})
	return nil
}

// Size reports how many documents the batch holds.
func (b *Batch) Size() int { return len(b.entries) }

// Run merges the accumulated documents under the batch name, dispatches the
// merged document through be, and folds the callbacks over acc in Add
// order. Variable values are unioned with later entries winning on key
// overlap; colliding variable *declarations* fail the merge before anything
// is dispatched. On a merge or dispatch error no callback runs.
func (b *Batch) Run(ctx context.Context, be transport.Backend, acc any) (any, *transport.Response, error) {
	start := time.Now()
	eventbus.Publish(ctx, events.BatchStart{Name: b.name, Size: len(b.entries)})

	resp, err := b.dispatch(ctx, be)

	eventbus.Publish(ctx, events.BatchFinish{
		Name:     b.name,
		Size:     len(b.entries),
		Err:      err,
		Duration: time.Since(start),
	})
	if err != nil {
		return acc, nil, err
	}

	for _, e := range b.entries {
		if e.callback == nil {
			continue
		}
		acc = e.callback(resp, acc)
	}
	return acc, resp, nil
}

func (b *Batch) dispatch(ctx context.Context, be transport.Backend) (*transport.Response, error) {
	if len(b.entries) == 0 {
		return nil, fmt.Errorf("batch %q: no documents added", b.name)
	}

	docs := make([]document.Document, len(b.entries))
	for i, e := range b.entries {
		docs[i] = e.doc
	}
	merged, err := document.MergeMany(docs, b.name)
	if err != nil {
		return nil, fmt.Errorf("batch %q: %w", b.name, err)
	}

	vars := make(map[string]any)
	for _, e := range b.entries {
		for k, v := range e.vars {
			vars[k] = v
		}
	}
	if len(vars) == 0 {
		vars = nil
	}

	return be.Dispatch(ctx, merged, vars, transport.Options{})
}
