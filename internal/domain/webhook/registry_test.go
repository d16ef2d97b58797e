package webhook

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	ctx := context.Background()

	sub, err := r.Register(ctx, "https://example.com/hook", []string{"call.started", "call.ended"}, "s3cret")
	require.NoError(t, err)
	assert.Contains(t, sub.ID, "wh_")
	assert.Equal(t, "https://example.com/hook", sub.URL)
	assert.Len(t, sub.Events, 2)

	got, err := r.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
}

func TestRegistry_RegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		events []string
	}{
		{name: "invalid url", url: "not a url", events: []string{"call.started"}},
		{name: "non-http scheme", url: "ftp://example.com/hook", events: []string{"call.started"}},
		{name: "no events", url: "https://example.com/hook", events: nil},
		{name: "unsupported event", url: "https://example.com/hook", events: []string{"call.imagined"}},
		{name: "one bad event among good", url: "https://example.com/hook", events: []string{"call.started", "nope"}},
	}

	r := NewRegistry(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Register(context.Background(), tt.url, tt.events, "")
			assert.Error(t, err)
		})
	}
}

func TestRegistry_UnregisterAndList(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	ctx := context.Background()

	a, err := r.Register(ctx, "https://example.com/a", []string{"call.started"}, "")
	require.NoError(t, err)
	b, err := r.Register(ctx, "https://example.com/b", []string{"call.ended"}, "")
	require.NoError(t, err)

	assert.Len(t, r.List(ctx), 2)

	require.NoError(t, r.Unregister(ctx, a.ID))
	assert.ErrorIs(t, r.Unregister(ctx, a.ID), ErrNotFound)

	_, err = r.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	remaining := r.List(ctx)
	require.Len(t, remaining, 1)
	assert.Equal(t, b.ID, remaining[0].ID)
}

func TestRegistry_SubscribersFor(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	ctx := context.Background()

	_, err := r.Register(ctx, "https://example.com/started", []string{"call.started"}, "")
	require.NoError(t, err)
	_, err = r.Register(ctx, "https://example.com/all", []string{"call.started", "call.ended", "call.transferred"}, "")
	require.NoError(t, err)

	assert.Len(t, r.SubscribersFor("call.started"), 2)
	assert.Len(t, r.SubscribersFor("call.ended"), 1)
	assert.Empty(t, r.SubscribersFor("call.recording.available"))
}
