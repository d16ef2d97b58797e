package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-center-server/internal/config"
)

func dispatcherConfig() *config.Config {
	return &config.Config{
		WebhookMaxRetries: 2,
		WebhookRetryDelay: 10 * time.Millisecond,
		WebhookTimeout:    time.Second,
	}
}

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	received := make(chan deliveryEnvelope, 1)
	secrets := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var envelope deliveryEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		received <- envelope
		secrets <- r.Header.Get("X-Webhook-Secret")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	registry := NewRegistry(zerolog.Nop())
	_, err := registry.Register(context.Background(), server.URL, []string{"call.started"}, "s3cret")
	require.NoError(t, err)

	d := NewDispatcher(dispatcherConfig(), registry, zerolog.Nop())
	d.Emit(context.Background(), "call.started", map[string]any{"call_id": "call_1"})

	select {
	case envelope := <-received:
		assert.Equal(t, "call.started", envelope.Event)
		assert.Equal(t, "call_1", envelope.Data["call_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not delivered")
	}
	assert.Equal(t, "s3cret", <-secrets)
}

func TestDispatcher_SkipsUnsubscribedEvents(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	registry := NewRegistry(zerolog.Nop())
	_, err := registry.Register(context.Background(), server.URL, []string{"call.ended"}, "")
	require.NoError(t, err)

	d := NewDispatcher(dispatcherConfig(), registry, zerolog.Nop())
	d.Emit(context.Background(), "call.started", map[string]any{"call_id": "call_1"})

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, hits.Load())
}

func TestDispatcher_RetriesFailedDeliveries(t *testing.T) {
	var attempts atomic.Int32
	delivered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
		close(delivered)
	}))
	defer server.Close()

	registry := NewRegistry(zerolog.Nop())
	_, err := registry.Register(context.Background(), server.URL, []string{"call.ended"}, "")
	require.NoError(t, err)

	d := NewDispatcher(dispatcherConfig(), registry, zerolog.Nop())
	d.Emit(context.Background(), "call.ended", map[string]any{"call_id": "call_1"})

	select {
	case <-delivered:
		assert.Equal(t, int32(3), attempts.Load())
	case <-time.After(2 * time.Second):
		t.Fatal("delivery was not retried to success")
	}
}
