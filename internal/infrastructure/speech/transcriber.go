// Package speech provides the speech-to-text and text-to-speech
// collaborators. Each has a local variant used in development and tests and
// a Google Cloud REST variant; the variant is selected by configuration.
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

const (
	defaultLanguage = "en-US"
	googleSpeechURL = "https://speech.googleapis.com/v1/speech:recognize"
	googleSynthURL  = "https://texttospeech.googleapis.com/v1/text:synthesize"
	localTranscript = "This is a simulated transcription."
	localConfidence = 0.8
)

// NewTranscriber returns the transcriber variant named in the config.
func NewTranscriber(cfg *config.Config, log zerolog.Logger) (call.Transcriber, error) {
	switch cfg.STTProvider {
	case "", "local":
		return NewLocalTranscriber(log), nil
	case "google":
		if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
			return nil, fmt.Errorf("google transcriber requires an API key")
		}
		return NewGoogleTranscriber(cfg.GoogleAPIKey, log), nil
	default:
		return nil, fmt.Errorf("unknown STT provider %q", cfg.STTProvider)
	}
}

// LocalTranscriber returns a canned transcription without touching any
// external service.
type LocalTranscriber struct {
	log zerolog.Logger
}

// NewLocalTranscriber creates the offline transcriber.
func NewLocalTranscriber(log zerolog.Logger) *LocalTranscriber {
	return &LocalTranscriber{log: log.With().Str("component", "local-transcriber").Logger()}
}

// Transcribe returns a fixed transcript for any audio payload.
func (l *LocalTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (call.Transcription, error) {
	if len(audio) == 0 {
		return call.Transcription{}, fmt.Errorf("empty audio payload")
	}
	if language == "" {
		language = defaultLanguage
	}
	l.log.Debug().Int("audio_bytes", len(audio)).Msg("simulated transcription")
	return call.Transcription{
		Text:       localTranscript,
		Confidence: localConfidence,
		Language:   language,
	}, nil
}

// GoogleTranscriber calls the Google Cloud Speech-to-Text REST API.
type GoogleTranscriber struct {
	client *resty.Client
	apiKey string
	log    zerolog.Logger
}

// NewGoogleTranscriber creates a Google-backed transcriber.
func NewGoogleTranscriber(apiKey string, log zerolog.Logger) *GoogleTranscriber {
	return &GoogleTranscriber{
		client: resty.New(),
		apiKey: apiKey,
		log:    log.With().Str("component", "google-transcriber").Logger(),
	}
}

type googleRecognizeRequest struct {
	Config googleRecognizeConfig `json:"config"`
	Audio  googleRecognizeAudio  `json:"audio"`
}

type googleRecognizeConfig struct {
	Encoding     string `json:"encoding"`
	LanguageCode string `json:"languageCode"`
}

type googleRecognizeAudio struct {
	Content string `json:"content"`
}

type googleRecognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe sends audio to the recognize endpoint and returns the top
// alternative.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (call.Transcription, error) {
	if len(audio) == 0 {
		return call.Transcription{}, fmt.Errorf("empty audio payload")
	}
	if language == "" {
		language = defaultLanguage
	}

	var parsed googleRecognizeResponse
	res, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(googleRecognizeRequest{
			Config: googleRecognizeConfig{Encoding: "LINEAR16", LanguageCode: language},
			Audio:  googleRecognizeAudio{Content: base64.StdEncoding.EncodeToString(audio)},
		}).
		SetResult(&parsed).
		Post(googleSpeechURL)
	if err != nil {
		return call.Transcription{}, fmt.Errorf("google speech request: %w", err)
	}
	if res.IsError() {
		return call.Transcription{}, fmt.Errorf("google speech request: status %d", res.StatusCode())
	}
	if len(parsed.Results) == 0 || len(parsed.Results[0].Alternatives) == 0 {
		return call.Transcription{}, fmt.Errorf("google speech request: no transcription results")
	}

	top := parsed.Results[0].Alternatives[0]
	return call.Transcription{
		Text:       top.Transcript,
		Confidence: top.Confidence,
		Language:   language,
	}, nil
}
