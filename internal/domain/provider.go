// Package domain wires the domain services.
package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"call-center-server/internal/config"
	"call-center-server/internal/domain/call"
	"call-center-server/internal/domain/conversation"
	"call-center-server/internal/domain/flow"
	"call-center-server/internal/domain/webhook"
)

// ProvideFlowCatalog loads the conversation flow catalog.
func ProvideFlowCatalog(cfg *config.Config, log zerolog.Logger) (*flow.Catalog, error) {
	return flow.NewCatalog(cfg.FlowConfigPath, log)
}

// ProvideConversationEngine provides the conversation engine.
func ProvideConversationEngine(
	catalog *flow.Catalog,
	intents conversation.IntentExtractor,
	sentiment conversation.SentimentScorer,
	cfg *config.Config,
	log zerolog.Logger,
) *conversation.Engine {
	return conversation.NewEngine(
		catalog,
		intents,
		sentiment,
		conversation.NewSelector(),
		conversation.NewTransferPolicy(cfg.NegativeScoreThreshold),
		log,
	)
}

// ProvideCallService provides the call orchestration service.
func ProvideCallService(
	cfg *config.Config,
	store call.Store,
	engine *conversation.Engine,
	transcriber call.Transcriber,
	synthesizer call.Synthesizer,
	telephony call.Telephony,
	events call.EventSink,
	log zerolog.Logger,
) call.Service {
	return call.NewOrchestrator(cfg, store, engine, transcriber, synthesizer, telephony, events, log)
}

// ProvideWebhookRegistry provides the webhook registry.
func ProvideWebhookRegistry(log zerolog.Logger) *webhook.Registry {
	return webhook.NewRegistry(log)
}

// ProvideEventSink provides the webhook dispatcher as the call event sink.
func ProvideEventSink(cfg *config.Config, registry *webhook.Registry, log zerolog.Logger) call.EventSink {
	return webhook.NewDispatcher(cfg, registry, log)
}

// ServiceProvider provides all domain services.
var ServiceProvider = wire.NewSet(
	ProvideFlowCatalog,
	ProvideConversationEngine,
	ProvideCallService,
	ProvideWebhookRegistry,
	ProvideEventSink,
)
