package nlp

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"call-center-server/internal/config"
	"call-center-server/internal/domain/conversation"
)

func TestRuleExtractor_Process(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantIntent   string
		wantEntities map[string]string
	}{
		{
			name:       "greeting phrase",
			text:       "Hello there",
			wantIntent: "greeting",
		},
		{
			name:       "farewell phrase",
			text:       "ok goodbye then",
			wantIntent: "farewell",
		},
		{
			name:       "information request",
			text:       "what is your opening time",
			wantIntent: "information",
		},
		{
			name:         "booking with time entities",
			text:         "I want to book a table for tomorrow morning",
			wantIntent:   "booking",
			wantEntities: map[string]string{"time": "tomorrow", "time_of_day": "morning"},
		},
		{
			name:       "complaint phrase",
			text:       "my order is not working",
			wantIntent: "complaint",
		},
		{
			name:       "transfer request",
			text:       "I need to speak to a human",
			wantIntent: "transfer",
		},
		{
			name:       "no match",
			text:       "zzz qqq",
			wantIntent: conversation.IntentUnknown,
		},
		{
			name:       "case insensitive",
			text:       "HELLO THERE",
			wantIntent: "greeting",
		},
	}

	extractor := NewRuleExtractor(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractor.Process(context.Background(), tt.text, nil)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if got.Intent != tt.wantIntent {
				t.Errorf("Intent = %q, want %q", got.Intent, tt.wantIntent)
			}
			if got.Intent != conversation.IntentUnknown && got.Confidence == 0 {
				t.Error("matched intent has zero confidence")
			}
			for k, v := range tt.wantEntities {
				if got.Entities[k] != v {
					t.Errorf("Entities[%q] = %q, want %q", k, got.Entities[k], v)
				}
			}
		})
	}
}

func TestNewIntentExtractor(t *testing.T) {
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
		{name: "unknown provider fails", provider: "watson", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{NLPProvider: tt.provider, OpenAIAPIKey: tt.apiKey, OpenAIModel: "gpt-4o-mini"}
			_, err := NewIntentExtractor(cfg, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Errorf("NewIntentExtractor() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
