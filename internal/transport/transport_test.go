package transport

import (
	"context"
	"fmt"
	"testing"

	"github.com/TheRealReal/graphql-client/internal/document"
	"github.com/stretchr/testify/require"
)

func TestResponseState(t *testing.T) {
	cases := []struct {
		name string
		resp Response
		want State
	}{
		{"data only", Response{Data: map[string]any{"a": 1}}, StateSuccess},
		{"null data no errors", Response{}, StateSuccess},
		{"errors only", Response{Errors: []ResponseError{{Message: "boom"}}}, StateFailure},
		{"data and errors", Response{Data: map[string]any{"a": 1}, Errors: []ResponseError{{Message: "boom"}}}, StatePartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.resp.State())
		})
	}
}

func TestStateString(t *testing.T) {
	require.Equal(t, "success", StateSuccess.String())
	require.Equal(t, "failure", StateFailure.String())
	require.Equal(t, "partial", StatePartial.String())
}

func TestMock(t *testing.T) {
	doc, err := document.NewQuery("Q", nil, []document.Field{document.NewField("a")})
	require.NoError(t, err)

	t.Run("returns seeded responses in order", func(t *testing.T) {
		first := &Response{Data: map[string]any{"a": 1}}
		second := &Response{Errors: []ResponseError{{Message: "boom"}}}
		m := NewMock(first, second)

		got, err := m.Dispatch(context.Background(), doc, map[string]any{"id": 1}, Options{})
		require.NoError(t, err)
		require.Same(t, first, got)

		got, err = m.Dispatch(context.Background(), doc, nil, Options{})
		require.NoError(t, err)
		require.Same(t, second, got)

		_, err = m.Dispatch(context.Background(), doc, nil, Options{})
		require.ErrorContains(t, err, "no more responses")
	})

	t.Run("records dispatches", func(t *testing.T) {
		m := NewMock(&Response{})
		_, err := m.Dispatch(context.Background(), doc, map[string]any{"id": 1}, Options{Timeout: 0})
		require.NoError(t, err)

		calls := m.Calls()
		require.Len(t, calls, 1)
		require.Equal(t, "Q", calls[0].Document.Name)
		require.Contains(t, calls[0].Query, "query Q {")
		require.Equal(t, map[string]any{"id": 1}, calls[0].Variables)
	})

	t.Run("seeded errors take precedence", func(t *testing.T) {
		boom := fmt.Errorf("connect refused")
		m := NewMockWithErrors([]*Response{nil, {}}, []error{boom, nil})

		_, err := m.Dispatch(context.Background(), doc, nil, Options{})
		require.ErrorIs(t, err, boom)

		got, err := m.Dispatch(context.Background(), doc, nil, Options{})
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("reset rewinds the queue", func(t *testing.T) {
		m := NewMock(&Response{})
		_, err := m.Dispatch(context.Background(), doc, nil, Options{})
		require.NoError(t, err)

		m.Reset()
		require.Empty(t, m.Calls())
		_, err = m.Dispatch(context.Background(), doc, nil, Options{})
		require.NoError(t, err)
	})
}
