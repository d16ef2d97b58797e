// Package nlp provides the intent extraction and sentiment scoring
// collaborators consumed by the conversation engine. Each capability has a
// rule-based variant with no external dependencies and an OpenAI-backed
// variant; the variant is selected by configuration at construction time.
package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"call-center-server/internal/config"
	"call-center-server/internal/domain/conversation"
)

// NewIntentExtractor returns the extractor variant named in the config.
func NewIntentExtractor(cfg *config.Config, log zerolog.Logger) (conversation.IntentExtractor, error) {
	switch cfg.NLPProvider {
	case "", "rules":
		return NewRuleExtractor(log), nil
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, fmt.Errorf("openai intent extractor requires an API key")
		}
		return NewOpenAIExtractor(cfg.OpenAIAPIKey, cfg.OpenAIModel, log), nil
	default:
		return nil, fmt.Errorf("unknown NLP provider %q", cfg.NLPProvider)
	}
}

// RuleExtractor matches intents by keyword lookup. It is the default
// provider and the one used in development and tests.
type RuleExtractor struct {
	intents map[string][]string
	log     zerolog.Logger
}

// NewRuleExtractor creates a keyword-based intent extractor.
func NewRuleExtractor(log zerolog.Logger) *RuleExtractor {
	return &RuleExtractor{
		intents: map[string][]string{
			"greeting":    {"hello", "hi", "hey", "good morning", "good afternoon", "good evening"},
			"farewell":    {"goodbye", "bye", "see you", "talk to you later"},
			"information": {"what is", "how does", "can you tell me", "i want to know"},
			"booking":     {"book", "schedule", "appointment", "reserve"},
			"complaint":   {"problem", "issue", "not working", "broken", "complaint"},
			"transfer":    {"speak to a human", "talk to a representative", "speak to a manager", "human", "agent"},
		},
		log: log.With().Str("component", "rule-intent-extractor").Logger(),
	}
}

// Process extracts an intent and a few simple entities from text.
func (r *RuleExtractor) Process(ctx context.Context, text string, metadata map[string]string) (conversation.IntentResult, error) {
	lowered := strings.ToLower(text)

	result := conversation.IntentResult{
		Intent:   conversation.IntentUnknown,
		Entities: map[string]string{},
	}

	for intent, phrases := range r.intents {
		for _, phrase := range phrases {
			if strings.Contains(lowered, phrase) {
				result.Intent = intent
				result.Confidence = 0.7
				break
			}
		}
		if result.Intent != conversation.IntentUnknown {
			break
		}
	}

	if strings.Contains(lowered, "tomorrow") {
		result.Entities["time"] = "tomorrow"
	} else if strings.Contains(lowered, "today") {
		result.Entities["time"] = "today"
	}
	switch {
	case strings.Contains(lowered, "morning"):
		result.Entities["time_of_day"] = "morning"
	case strings.Contains(lowered, "afternoon"):
		result.Entities["time_of_day"] = "afternoon"
	case strings.Contains(lowered, "evening"):
		result.Entities["time_of_day"] = "evening"
	}

	return result, nil
}

// OpenAIExtractor classifies intents with a chat completion call.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIExtractor creates an OpenAI-backed intent extractor.
func NewOpenAIExtractor(apiKey, model string, log zerolog.Logger) *OpenAIExtractor {
	return &OpenAIExtractor{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log.With().Str("component", "openai-intent-extractor").Logger(),
	}
}

const intentSystemPrompt = `You classify call-center utterances. Respond with JSON only:
{"intent": one of [greeting, farewell, information, booking, complaint, transfer, unknown],
 "entities": object of string values, "confidence": number between 0 and 1}`

type intentCompletion struct {
	Intent     string            `json:"intent"`
	Entities   map[string]string `json:"entities"`
	Confidence float64           `json:"confidence"`
}

// Process classifies text via the OpenAI API.
func (o *OpenAIExtractor) Process(ctx context.Context, text string, metadata map[string]string) (conversation.IntentResult, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: intentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return conversation.IntentResult{}, fmt.Errorf("openai intent extraction: %w", err)
	}
	if len(resp.Choices) == 0 {
		return conversation.IntentResult{}, fmt.Errorf("openai intent extraction: empty response")
	}

	var parsed intentCompletion
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		o.log.Warn().Err(err).Msg("unparseable intent completion, treating as unknown")
		return conversation.IntentResult{Intent: conversation.IntentUnknown, Entities: map[string]string{}}, nil
	}

	if parsed.Intent == "" {
		parsed.Intent = conversation.IntentUnknown
	}
	if parsed.Entities == nil {
		parsed.Entities = map[string]string{}
	}

	return conversation.IntentResult{
		Intent:     parsed.Intent,
		Entities:   parsed.Entities,
		Confidence: parsed.Confidence,
	}, nil
}
