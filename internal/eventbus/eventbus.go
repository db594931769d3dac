// Package eventbus is a minimal typed in-process pub/sub used to observe
// dispatches without coupling the transport packages to any telemetry SDK.
package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

// Handler processes events of type T.
type Handler[T any] func(context.Context, T)

type registration struct {
	id int64
	fn func(context.Context, any)
}

// Bus dispatches events to handlers registered per event type.
type Bus struct {
	mu       sync.RWMutex
	nextID   int64
	handlers map[reflect.Type][]registration
}

// New creates a new Bus.
func New() *Bus { return &Bus{handlers: make(map[reflect.Type][]registration)} }

func (b *Bus) subscribe(t reflect.Type, fn func(context.Context, any)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], registration{id: id, fn: fn})
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		regs := b.handlers[t]
		for i, r := range regs {
			if r.id == id {
				regs = append(regs[:i], regs[i+1:]...)
				break
			}
		}
		if len(regs) == 0 {
			delete(b.handlers, t)
		} else {
			b.handlers[t] = regs
		}
	}
}

// emit dispatches e to all handlers registered for its dynamic type.
// Handlers run synchronously on the publishing goroutine.
func (b *Bus) emit(ctx context.Context, e any) {
	if b == nil {
		return
	}
	t := reflect.TypeOf(e)
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[t]...)
	b.mu.RUnlock()
	for _, r := range regs {
		r.fn(ctx, e)
	}
}

var global atomic.Pointer[Bus]

// Use sets the global bus. Passing nil disables event publishing.
func Use(b *Bus) { global.Store(b) }

// Subscribe registers h with the global bus. The returned function removes
// the subscription; it is a no-op when no bus is installed.
func Subscribe[T any](h Handler[T]) (unsubscribe func()) {
	if b := global.Load(); b != nil {
		t := reflect.TypeOf((*T)(nil)).Elem()
		return b.subscribe(t, func(ctx context.Context, v any) { h(ctx, v.(T)) })
	}
	return func() {}
}

// Publish sends e through the global bus.
func Publish[T any](ctx context.Context, e T) {
	if b := global.Load(); b != nil {
		b.emit(ctx, e)
	}
}
