package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"call-center-server/internal/config"
	"call-center-server/internal/domain/call"
)

// NewSynthesizer returns the synthesizer variant named in the config.
func NewSynthesizer(cfg *config.Config, log zerolog.Logger) (call.Synthesizer, error) {
	switch cfg.TTSProvider {
	case "", "local":
		return NewLocalSynthesizer(log), nil
	case "google":
		if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
			return nil, fmt.Errorf("google synthesizer requires an API key")
		}
		return NewGoogleSynthesizer(cfg.GoogleAPIKey, log), nil
	default:
		return nil, fmt.Errorf("unknown TTS provider %q", cfg.TTSProvider)
	}
}

// LocalSynthesizer returns a placeholder audio payload without touching any
// external service.
type LocalSynthesizer struct {
	log zerolog.Logger
}

// NewLocalSynthesizer creates the offline synthesizer.
func NewLocalSynthesizer(log zerolog.Logger) *LocalSynthesizer {
	return &LocalSynthesizer{log: log.With().Str("component", "local-synthesizer").Logger()}
}

// Synthesize returns placeholder WAV bytes for any text.
func (l *LocalSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (call.SpeechAudio, error) {
	if strings.TrimSpace(text) == "" {
		return call.SpeechAudio{}, fmt.Errorf("empty synthesis text")
	}
	l.log.Debug().Int("text_length", len(text)).Str("voice_id", voiceID).Msg("simulated synthesis")
	return call.SpeechAudio{
		Data:   []byte("simulated-audio:" + text),
		Format: "wav",
	}, nil
}

// GoogleSynthesizer calls the Google Cloud Text-to-Speech REST API.
type GoogleSynthesizer struct {
	client *resty.Client
	apiKey string
	log    zerolog.Logger
}

// NewGoogleSynthesizer creates a Google-backed synthesizer.
func NewGoogleSynthesizer(apiKey string, log zerolog.Logger) *GoogleSynthesizer {
	return &GoogleSynthesizer{
		client: resty.New(),
		apiKey: apiKey,
		log:    log.With().Str("component", "google-synthesizer").Logger(),
	}
}

type googleSynthesizeRequest struct {
	Input       googleSynthesisInput `json:"input"`
	Voice       googleVoiceSelection `json:"voice"`
	AudioConfig googleAudioConfig    `json:"audioConfig"`
}

type googleSynthesisInput struct {
	Text string `json:"text"`
}

type googleVoiceSelection struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name,omitempty"`
}

type googleAudioConfig struct {
	AudioEncoding string `json:"audioEncoding"`
}

type googleSynthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize sends text to the synthesize endpoint and decodes the returned
// audio.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (call.SpeechAudio, error) {
	if strings.TrimSpace(text) == "" {
		return call.SpeechAudio{}, fmt.Errorf("empty synthesis text")
	}

	voiceName := voiceID
	if voiceName == "default" {
		voiceName = ""
	}

	var parsed googleSynthesizeResponse
	res, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(googleSynthesizeRequest{
			Input:       googleSynthesisInput{Text: text},
			Voice:       googleVoiceSelection{LanguageCode: defaultLanguage, Name: voiceName},
			AudioConfig: googleAudioConfig{AudioEncoding: "LINEAR16"},
		}).
		SetResult(&parsed).
		Post(googleSynthURL)
	if err != nil {
		return call.SpeechAudio{}, fmt.Errorf("google synthesis request: %w", err)
	}
	if res.IsError() {
		return call.SpeechAudio{}, fmt.Errorf("google synthesis request: status %d", res.StatusCode())
	}

	audio, err := base64.StdEncoding.DecodeString(parsed.AudioContent)
	if err != nil {
		return call.SpeechAudio{}, fmt.Errorf("decode synthesis audio: %w", err)
	}
	return call.SpeechAudio{Data: audio, Format: "wav"}, nil
}
