package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ N int }
type pong struct{ N int }

func TestSubscribePublish(t *testing.T) {
	Use(New())
	defer Use(nil)

	var pings, pongs []int
	unsub := Subscribe(func(ctx context.Context, e ping) { pings = append(pings, e.N) })
	Subscribe(func(ctx context.Context, e pong) { pongs = append(pongs, e.N) })

	Publish(context.Background(), ping{1})
	Publish(context.Background(), pong{2})
	Publish(context.Background(), ping{3})

	require.Equal(t, []int{1, 3}, pings)
	require.Equal(t, []int{2}, pongs)

	unsub()
	Publish(context.Background(), ping{4})
	require.Equal(t, []int{1, 3}, pings)
}

func TestPublishWithoutBus(t *testing.T) {
	Use(nil)
	// must not panic and Subscribe must hand back a callable no-op
	unsub := Subscribe(func(ctx context.Context, e ping) {})
	Publish(context.Background(), ping{1})
	unsub()
}

func TestMultipleHandlersSameType(t *testing.T) {
	Use(New())
	defer Use(nil)

	var order []string
	Subscribe(func(ctx context.Context, e ping) { order = append(order, "first") })
	Subscribe(func(ctx context.Context, e ping) { order = append(order, "second") })

	Publish(context.Background(), ping{1})
	require.Equal(t, []string{"first", "second"}, order)
}
