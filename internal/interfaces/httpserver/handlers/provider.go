package handlers

import (
	"github.com/google/wire"

	"call-center-server/internal/domain/call"
	"call-center-server/internal/domain/webhook"
)

// Provider holds all HTTP handlers.
type Provider struct {
	Call    *CallHandler
	Webhook *WebhookHandler
}

// NewProvider creates a new handler provider.
func NewProvider(callService call.Service, registry *webhook.Registry) *Provider {
	return &Provider{
		Call:    NewCallHandler(callService),
		Webhook: NewWebhookHandler(registry),
	}
}

// HandlerProvider provides all handlers for wire.
var HandlerProvider = wire.NewSet(
	NewCallHandler,
	NewWebhookHandler,
	NewProvider,
)
