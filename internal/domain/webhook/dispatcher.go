package webhook

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"call-center-server/internal/config"
	"call-center-server/internal/infrastructure/metrics"
)

// deliveryEnvelope is the JSON body posted to subscribers.
type deliveryEnvelope struct {
	Event     string         `json:"event"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// Dispatcher fans call lifecycle events out to registered webhooks. Delivery
// is fire-and-forget from the caller's point of view; each subscriber gets
// its own goroutine with retries.
type Dispatcher struct {
	registry   *Registry
	client     *resty.Client
	maxRetries int
	retryDelay time.Duration

	log zerolog.Logger
}

// NewDispatcher creates a webhook dispatcher.
func NewDispatcher(cfg *config.Config, registry *Registry, log zerolog.Logger) *Dispatcher {
	client := resty.New().
		SetTimeout(cfg.WebhookTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "call-api-webhook/1.0")
	return &Dispatcher{
		registry:   registry,
		client:     client,
		maxRetries: cfg.WebhookMaxRetries,
		retryDelay: cfg.WebhookRetryDelay,
		log:        log.With().Str("component", "webhook-dispatcher").Logger(),
	}
}

// Emit delivers an event to every matching subscriber. It returns
// immediately; call processing never waits on webhook endpoints.
func (d *Dispatcher) Emit(ctx context.Context, event string, payload map[string]any) {
	subscribers := d.registry.SubscribersFor(event)
	if len(subscribers) == 0 {
		return
	}

	envelope := deliveryEnvelope{
		Event:     event,
		Timestamp: time.Now(),
		Data:      payload,
	}
	for _, sub := range subscribers {
		go d.deliver(sub, event, envelope)
	}
}

// deliver posts the envelope with retries. Delivery is detached from the
// request context on purpose; a finished HTTP request must not cancel it.
func (d *Dispatcher) deliver(sub *Subscription, event string, envelope deliveryEnvelope) {
	ctx := context.Background()

	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(d.retryDelay)
		}

		req := d.client.R().SetContext(ctx).SetBody(envelope)
		if sub.Secret != "" {
			req.SetHeader("X-Webhook-Secret", sub.Secret)
		}
		res, err := req.Post(sub.URL)
		if err == nil && !res.IsError() {
			metrics.WebhookDeliveries.WithLabelValues(event, "success").Inc()
			d.log.Debug().Str("webhook_id", sub.ID).Str("event", event).Msg("webhook delivered")
			return
		}

		logEvent := d.log.Warn().Str("webhook_id", sub.ID).Str("event", event).Int("attempt", attempt+1)
		if err != nil {
			logEvent.Err(err).Msg("webhook delivery failed")
		} else {
			logEvent.Int("status", res.StatusCode()).Msg("webhook delivery rejected")
		}
	}

	metrics.WebhookDeliveries.WithLabelValues(event, "failed").Inc()
	d.log.Error().Str("webhook_id", sub.ID).Str("event", event).Msg("webhook delivery exhausted retries")
}
