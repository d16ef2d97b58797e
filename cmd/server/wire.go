//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"call-center-server/internal/config"
	"call-center-server/internal/domain"
	"call-center-server/internal/domain/call"
	"call-center-server/internal/domain/conversation"
	"call-center-server/internal/infrastructure/nlp"
	"call-center-server/internal/infrastructure/speech"
	"call-center-server/internal/infrastructure/store"
	"call-center-server/internal/infrastructure/telephony"
	"call-center-server/internal/interfaces/httpserver"
)

// ProviderSet is the wire provider set for the application.
var ProviderSet = wire.NewSet(
	// Infrastructure providers
	ProvideIntentExtractor,
	ProvideSentimentScorer,
	ProvideTranscriber,
	ProvideSynthesizer,
	ProvideSessionStore,
	ProvideTelephony,

	// Domain providers
	domain.ServiceProvider,

	// Interface providers
	httpserver.New,

	// Application
	NewApplication,
)

// ProvideIntentExtractor provides the configured intent extractor.
func ProvideIntentExtractor(cfg *config.Config, log zerolog.Logger) (conversation.IntentExtractor, error) {
	return nlp.NewIntentExtractor(cfg, log)
}

// ProvideSentimentScorer provides the configured sentiment scorer.
func ProvideSentimentScorer(cfg *config.Config, log zerolog.Logger) (conversation.SentimentScorer, error) {
	return nlp.NewSentimentScorer(cfg, log)
}

// ProvideTranscriber provides the configured speech-to-text collaborator.
func ProvideTranscriber(cfg *config.Config, log zerolog.Logger) (call.Transcriber, error) {
	return speech.NewTranscriber(cfg, log)
}

// ProvideSynthesizer provides the configured text-to-speech collaborator.
func ProvideSynthesizer(cfg *config.Config, log zerolog.Logger) (call.Synthesizer, error) {
	return speech.NewSynthesizer(cfg, log)
}

// ProvideSessionStore provides the call session registry.
func ProvideSessionStore(log zerolog.Logger) call.Store {
	return store.NewMemoryStore(log)
}

// ProvideTelephony provides the carrier integration.
func ProvideTelephony(cfg *config.Config, log zerolog.Logger) call.Telephony {
	return telephony.NewSimulatedProvider(cfg.OutboundNumber, log)
}

// CreateApplication creates the application with all dependencies wired.
func CreateApplication(
	cfg *config.Config,
	log zerolog.Logger,
) (*Application, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
