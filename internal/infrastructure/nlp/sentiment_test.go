package nlp

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"call-center-server/internal/config"
	"call-center-server/internal/domain/conversation"
)

func TestRuleScorer_Analyze(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantSentiment string
		wantScore     float64
	}{
		{
			name:          "positive words",
			text:          "this is great, thank you",
			wantSentiment: conversation.SentimentPositive,
			wantScore:     0.7,
		},
		{
			name:          "negative words",
			text:          "terrible service, this is a problem",
			wantSentiment: conversation.SentimentNegative,
			wantScore:     0.3,
		},
		{
			name:          "balanced text is neutral",
			text:          "the good and the bad",
			wantSentiment: conversation.SentimentNeutral,
			wantScore:     0.5,
		},
		{
			name:          "no sentiment words is neutral",
			text:          "I called about my account",
			wantSentiment: conversation.SentimentNeutral,
			wantScore:     0.5,
		},
		{
			name:          "strongly positive clamps at one",
			text:          "good great excellent wonderful amazing fantastic happy",
			wantSentiment: conversation.SentimentPositive,
			wantScore:     1.0,
		},
		{
			name:          "strongly negative clamps at zero",
			text:          "bad terrible awful horrible poor broken angry useless",
			wantSentiment: conversation.SentimentNegative,
			wantScore:     0.0,
		},
	}

	scorer := NewRuleScorer(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Analyze(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if got.Sentiment != tt.wantSentiment {
				t.Errorf("Sentiment = %q, want %q", got.Sentiment, tt.wantSentiment)
			}
			if diff := got.Score - tt.wantScore; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
		})
	}
}

func TestNewSentimentScorer(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		wantErr  bool
	}{
		{name: "rules provider", provider: "rules"},
		{name: "empty defaults to rules", provider: ""},
		{name: "openai without key fails", provider: "openai", wantErr: true},
		{name: "openai with key", provider: "openai", apiKey: "sk-test"},
		{name: "unknown provider fails", provider: "vader", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{SentimentProvider: tt.provider, OpenAIAPIKey: tt.apiKey, OpenAIModel: "gpt-4o-mini"}
			_, err := NewSentimentScorer(cfg, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSentimentScorer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
