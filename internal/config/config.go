package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the call-api service.
type Config struct {
	// Service settings
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"call-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"CALL_API_PORT" envDefault:"8188"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// OpenTelemetry
	EnableTracing bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	// Conversation flows
	FlowConfigPath string `env:"FLOW_CONFIG_PATH" envDefault:""`
	DefaultFlowID  string `env:"DEFAULT_FLOW_ID" envDefault:"default"`

	// AI providers
	NLPProvider       string `env:"NLP_PROVIDER" envDefault:"rules"`
	SentimentProvider string `env:"SENTIMENT_PROVIDER" envDefault:"rules"`
	STTProvider       string `env:"STT_PROVIDER" envDefault:"local"`
	TTSProvider       string `env:"TTS_PROVIDER" envDefault:"local"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenAIModel       string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GoogleAPIKey      string `env:"GOOGLE_API_KEY"`
	DefaultVoiceID    string `env:"DEFAULT_VOICE_ID" envDefault:"default"`

	// Transfer policy
	NegativeScoreThreshold float64 `env:"NEGATIVE_SCORE_THRESHOLD" envDefault:"0.2"`

	// Call handling
	RecordingEnabled   bool          `env:"RECORDING_ENABLED" envDefault:"true"`
	ListenTimeout      time.Duration `env:"LISTEN_TIMEOUT" envDefault:"5s"`
	MaxConcurrentCalls int64         `env:"MAX_CONCURRENT_CALLS" envDefault:"100"`
	OutboundNumber     string        `env:"OUTBOUND_PHONE_NUMBER" envDefault:"+15551234567"`

	// Transfer targets
	DefaultTransferNumber string `env:"DEFAULT_TRANSFER_NUMBER" envDefault:"+15551234567"`
	SupportTransferNumber string `env:"SUPPORT_TRANSFER_NUMBER" envDefault:"+15552345678"`
	SalesTransferNumber   string `env:"SALES_TRANSFER_NUMBER" envDefault:"+15553456789"`

	// Webhooks
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookRetryDelay time.Duration `env:"WEBHOOK_RETRY_DELAY" envDefault:"5s"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	// Provider variants that need credentials must fail at startup, not at
	// the first call.
	if cfg.NLPProvider == "openai" || cfg.SentimentProvider == "openai" {
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when an openai provider is selected")
		}
	}
	if cfg.STTProvider == "google" || cfg.TTSProvider == "google" {
		if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY is required when a google provider is selected")
		}
	}

	if cfg.MaxConcurrentCalls <= 0 {
		return nil, fmt.Errorf("MAX_CONCURRENT_CALLS must be positive")
	}
	if cfg.NegativeScoreThreshold < 0 || cfg.NegativeScoreThreshold > 1 {
		return nil, fmt.Errorf("NEGATIVE_SCORE_THRESHOLD must be in [0,1]")
	}

	return cfg, nil
}

// TransferNumbers returns the department routing table. The default entry is
// always present.
func (c *Config) TransferNumbers() map[string]string {
	return map[string]string{
		"default": c.DefaultTransferNumber,
		"support": c.SupportTransferNumber,
		"sales":   c.SalesTransferNumber,
	}
}

// Addr returns the HTTP server address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
