// @title           Call API
// @version         1.0
// @description     AI call center core service.
// @description     Handles inbound and outbound calls, scripted conversations, and human handoff.

// @host      localhost:8188
// @BasePath  /v1

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"call-center-server/internal/config"
	"call-center-server/internal/domain"
	"call-center-server/internal/infrastructure/logger"
	"call-center-server/internal/infrastructure/nlp"
	"call-center-server/internal/infrastructure/observability"
	"call-center-server/internal/infrastructure/speech"
	"call-center-server/internal/infrastructure/store"
	"call-center-server/internal/infrastructure/telephony"
	"call-center-server/internal/interfaces/httpserver"
)

// Application holds the main application components.
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

// NewApplication creates a new application instance.
func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

// Start runs the application until the context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup observability
	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	// AI collaborators, selected by configuration
	intents, err := nlp.NewIntentExtractor(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize intent extractor")
	}
	sentiment, err := nlp.NewSentimentScorer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize sentiment scorer")
	}
	transcriber, err := speech.NewTranscriber(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize transcriber")
	}
	synthesizer, err := speech.NewSynthesizer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize synthesizer")
	}

	// Conversation flows
	catalog, err := domain.ProvideFlowCatalog(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load flow catalog")
	}
	engine := domain.ProvideConversationEngine(catalog, intents, sentiment, cfg, log)

	// Call infrastructure
	sessionStore := store.NewMemoryStore(log)
	carrier := telephony.NewSimulatedProvider(cfg.OutboundNumber, log)
	webhookRegistry := domain.ProvideWebhookRegistry(log)
	events := domain.ProvideEventSink(cfg, webhookRegistry, log)

	// Call orchestration service
	callService := domain.ProvideCallService(cfg, sessionStore, engine, transcriber, synthesizer, carrier, events, log)

	// HTTP server
	httpServer := httpserver.New(cfg, log, callService, webhookRegistry)

	app := NewApplication(httpServer, log)

	log.Info().
		Str("service", cfg.ServiceName).
		Int("port", cfg.HTTPPort).
		Str("environment", cfg.Environment).
		Msg("starting application")

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
