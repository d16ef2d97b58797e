package handlers

import (
	"context"

	"call-center-server/internal/domain/webhook"
)

// WebhookHandler handles webhook subscription HTTP requests.
type WebhookHandler struct {
	registry *webhook.Registry
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(registry *webhook.Registry) *WebhookHandler {
	return &WebhookHandler{registry: registry}
}

// Register stores a new webhook subscription.
func (h *WebhookHandler) Register(ctx context.Context, url string, events []string, secret string) (*webhook.Subscription, error) {
	return h.registry.Register(ctx, url, events, secret)
}

// Unregister removes a webhook subscription.
func (h *WebhookHandler) Unregister(ctx context.Context, id string) error {
	return h.registry.Unregister(ctx, id)
}

// Get retrieves a webhook subscription by ID.
func (h *WebhookHandler) Get(ctx context.Context, id string) (*webhook.Subscription, error) {
	return h.registry.Get(ctx, id)
}

// List retrieves all webhook subscriptions.
func (h *WebhookHandler) List(ctx context.Context) []*webhook.Subscription {
	return h.registry.List(ctx)
}
