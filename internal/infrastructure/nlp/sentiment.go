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

// NewSentimentScorer returns the scorer variant named in the config.
func NewSentimentScorer(cfg *config.Config, log zerolog.Logger) (conversation.SentimentScorer, error) {
	switch cfg.SentimentProvider {
	case "", "rules":
		return NewRuleScorer(log), nil
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, fmt.Errorf("openai sentiment scorer requires an API key")
		}
		return NewOpenAIScorer(cfg.OpenAIAPIKey, cfg.OpenAIModel, log), nil
	default:
		return nil, fmt.Errorf("unknown sentiment provider %q", cfg.SentimentProvider)
	}
}

// RuleScorer scores sentiment by counting positive and negative words.
// The score is 0.5 shifted by 0.1 per word of imbalance, clamped to [0,1].
type RuleScorer struct {
	positive []string
	negative []string
	log      zerolog.Logger
}

// NewRuleScorer creates a word-count sentiment scorer.
func NewRuleScorer(log zerolog.Logger) *RuleScorer {
	return &RuleScorer{
		positive: []string{
			"good", "great", "excellent", "wonderful", "amazing", "fantastic",
			"happy", "pleased", "satisfied", "love", "like", "enjoy", "thank",
			"appreciate", "helpful", "perfect", "best", "better", "awesome",
		},
		negative: []string{
			"bad", "terrible", "awful", "horrible", "poor", "disappointing",
			"unhappy", "dissatisfied", "hate", "dislike", "problem", "issue",
			"wrong", "mistake", "error", "fail", "worst", "worse", "annoying",
			"frustrating", "useless", "broken", "complaint", "angry",
		},
		log: log.With().Str("component", "rule-sentiment-scorer").Logger(),
	}
}

// Analyze scores the sentiment of text.
func (r *RuleScorer) Analyze(ctx context.Context, text string) (conversation.SentimentResult, error) {
	lowered := strings.ToLower(text)

	positiveCount := 0
	for _, w := range r.positive {
		if strings.Contains(lowered, w) {
			positiveCount++
		}
	}
	negativeCount := 0
	for _, w := range r.negative {
		if strings.Contains(lowered, w) {
			negativeCount++
		}
	}

	switch {
	case positiveCount > negativeCount:
		score := 0.5 + float64(positiveCount-negativeCount)*0.1
		if score > 1.0 {
			score = 1.0
		}
		return conversation.SentimentResult{Sentiment: conversation.SentimentPositive, Score: score}, nil
	case negativeCount > positiveCount:
		score := 0.5 - float64(negativeCount-positiveCount)*0.1
		if score < 0.0 {
			score = 0.0
		}
		return conversation.SentimentResult{Sentiment: conversation.SentimentNegative, Score: score}, nil
	default:
		return conversation.SentimentResult{Sentiment: conversation.SentimentNeutral, Score: 0.5}, nil
	}
}

// OpenAIScorer scores sentiment with a chat completion call.
type OpenAIScorer struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIScorer creates an OpenAI-backed sentiment scorer.
func NewOpenAIScorer(apiKey, model string, log zerolog.Logger) *OpenAIScorer {
	return &OpenAIScorer{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log.With().Str("component", "openai-sentiment-scorer").Logger(),
	}
}

const sentimentSystemPrompt = `You score the sentiment of call-center utterances. Respond with JSON only:
{"sentiment": one of [positive, negative, neutral], "score": number between 0 and 1
 where 0 is most negative and 1 is most positive}`

type sentimentCompletion struct {
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// Analyze scores text via the OpenAI API.
func (o *OpenAIScorer) Analyze(ctx context.Context, text string) (conversation.SentimentResult, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sentimentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return conversation.SentimentResult{}, fmt.Errorf("openai sentiment analysis: %w", err)
	}
	if len(resp.Choices) == 0 {
		return conversation.SentimentResult{}, fmt.Errorf("openai sentiment analysis: empty response")
	}

	var parsed sentimentCompletion
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		o.log.Warn().Err(err).Msg("unparseable sentiment completion, treating as neutral")
		return conversation.SentimentResult{Sentiment: conversation.SentimentNeutral, Score: 0.5}, nil
	}

	switch parsed.Sentiment {
	case conversation.SentimentPositive, conversation.SentimentNegative, conversation.SentimentNeutral:
	default:
		parsed.Sentiment = conversation.SentimentNeutral
		parsed.Score = 0.5
	}

	return conversation.SentimentResult{Sentiment: parsed.Sentiment, Score: parsed.Score}, nil
}
