// Package call owns call sessions: the lifecycle state machine for one
// telephone call, its transcript, and the orchestration of conversation,
// speech, and telephony collaborators per turn.
package call

import (
	"context"
	"errors"
	"sync"
	"time"

	"call-center-server/internal/domain/conversation"
)

var (
	// ErrSessionNotFound is returned when a call ID is not registered.
	ErrSessionNotFound = errors.New("call session not found")
	// ErrSessionExists is returned when creating a session whose ID is taken.
	ErrSessionExists = errors.New("call session already exists")
	// ErrSessionTerminated is returned for operations on a terminal session.
	// Terminal sessions reject all mutations; callers treat this the same as
	// a missing session.
	ErrSessionTerminated = errors.New("call session already terminated")
	// ErrTooManyCalls is returned when call admission is exhausted.
	ErrTooManyCalls = errors.New("concurrent call limit reached")
)

// Direction of a call relative to the service.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Status is the lifecycle state of a call session.
type Status string

const (
	StatusInitiated   Status = "initiated"
	StatusRinging     Status = "ringing"
	StatusInProgress  Status = "in-progress"
	StatusCompleted   Status = "completed"
	StatusTransferred Status = "transferred"
	StatusFailed      Status = "failed"
)

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusTransferred || s == StatusFailed
}

// TranscriptEntry is one utterance recorded on the call.
type TranscriptEntry struct {
	Speaker   conversation.Speaker `json:"speaker"`
	Text      string               `json:"text"`
	Timestamp time.Time            `json:"timestamp"`
}

// Action tells the caller-facing layer what to do next on the call.
type Action struct {
	Type      string `json:"type"`
	TimeoutMS int    `json:"timeout_ms,omitempty"`
}

// ActionListen arms the audio capture window on the call.
const ActionListen = "listen"

// Session is the lifecycle record for one telephone call. It is owned
// exclusively by the orchestrator; all mutations happen while holding the
// session's own mutex, so no two operations on the same call ID run
// concurrently.
type Session struct {
	mu sync.Mutex

	recordingActive bool

	CallID          string            `json:"call_id"`
	Direction       Direction         `json:"direction"`
	From            string            `json:"from"`
	To              string            `json:"to"`
	Status          Status            `json:"status"`
	FlowID          string            `json:"flow_id"`
	ConversationID  string            `json:"conversation_id,omitempty"`
	Transcript      []TranscriptEntry `json:"transcript"`
	RecordingURL    string            `json:"recording_url,omitempty"`
	TransferTo      string            `json:"transfer_to,omitempty"`
	Context         map[string]string `json:"context,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	EndedAt         *time.Time        `json:"ended_at,omitempty"`
	DurationSeconds int64             `json:"duration_seconds"`
	EndReason       string            `json:"end_reason,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	NextAction      *Action           `json:"next_action,omitempty"`
}

// Snapshot returns a copy of the session safe to hand outside the
// orchestrator.
func (s *Session) Snapshot() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() *Session {
	cp := &Session{
		CallID:          s.CallID,
		Direction:       s.Direction,
		From:            s.From,
		To:              s.To,
		Status:          s.Status,
		FlowID:          s.FlowID,
		ConversationID:  s.ConversationID,
		RecordingURL:    s.RecordingURL,
		TransferTo:      s.TransferTo,
		StartedAt:       s.StartedAt,
		DurationSeconds: s.DurationSeconds,
		EndReason:       s.EndReason,
		Summary:         s.Summary,
	}
	cp.Transcript = make([]TranscriptEntry, len(s.Transcript))
	copy(cp.Transcript, s.Transcript)
	cp.Context = make(map[string]string, len(s.Context))
	for k, v := range s.Context {
		cp.Context[k] = v
	}
	if s.EndedAt != nil {
		ended := *s.EndedAt
		cp.EndedAt = &ended
	}
	if s.NextAction != nil {
		action := *s.NextAction
		cp.NextAction = &action
	}
	return cp
}

func (s *Session) appendTranscriptLocked(speaker conversation.Speaker, text string) {
	s.Transcript = append(s.Transcript, TranscriptEntry{
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now(),
	})
}

// Store is the registry of call sessions. Terminal sessions stay registered
// so lookups keep working after a call ends.
type Store interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, callID string) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
}

// Transcription is the output of the speech-to-text collaborator.
type Transcription struct {
	Text       string
	Confidence float64
	Language   string
}

// Transcriber converts caller audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (Transcription, error)
}

// SpeechAudio is the output of the text-to-speech collaborator.
type SpeechAudio struct {
	Data   []byte
	Format string
}

// Synthesizer converts response text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (SpeechAudio, error)
}

// DialResult is returned by the telephony collaborator for outbound dials.
type DialResult struct {
	CallID string
	From   string
	To     string
	Status string
}

// Recording describes a finished call recording.
type Recording struct {
	URL             string
	DurationSeconds int64
}

// Telephony is the narrow contract to the carrier integration.
type Telephony interface {
	Dial(ctx context.Context, number string) (DialResult, error)
	Answer(ctx context.Context, callID string) error
	Hangup(ctx context.Context, callID, reason string) error
	Transfer(ctx context.Context, callID, target string) error
	StartRecording(ctx context.Context, callID string) error
	StopRecording(ctx context.Context, callID string) (Recording, error)
}

// ConversationEngine is the slice of the conversation engine the
// orchestrator drives.
type ConversationEngine interface {
	Start(ctx context.Context, conversationID, flowID string, metadata map[string]string) (*conversation.Instance, error)
	Process(ctx context.Context, in conversation.ProcessInput, text string) (*conversation.ProcessResult, error)
	End(ctx context.Context, conversationID string) (*conversation.Instance, error)
}

// EventSink receives call lifecycle events. Emission must never block call
// processing.
type EventSink interface {
	Emit(ctx context.Context, event string, payload map[string]any)
}

// Call lifecycle event names.
const (
	EventCallStarted        = "call.started"
	EventCallEnded          = "call.ended"
	EventCallTransferred    = "call.transferred"
	EventRecordingAvailable = "call.recording.available"
)

// Turn actions returned to the caller-facing layer.
const (
	TurnActionContinue = "continue"
	TurnActionTransfer = "transfer"
	TurnActionEndCall  = "end_call"
)

// TurnResult is the outcome of processing one unit of caller input.
type TurnResult struct {
	Action          string `json:"action"`
	Message         string `json:"message"`
	NextState       string `json:"next_state,omitempty"`
	TransferTo      string `json:"transfer_to,omitempty"`
	SynthesisFailed bool   `json:"synthesis_failed,omitempty"`
}

// Service is the call orchestration API consumed by the HTTP layer.
type Service interface {
	HandleIncomingCall(ctx context.Context, callID, from, to, flowID string) (*Session, error)
	MakeOutboundCall(ctx context.Context, toNumber, flowID string, callContext map[string]string) (*Session, error)
	ProcessSpeech(ctx context.Context, callID string, audio []byte, language string) (*TurnResult, error)
	ProcessDTMF(ctx context.Context, callID, digits string) (*TurnResult, error)
	EndCall(ctx context.Context, callID, reason string) (*Session, error)
	GetSession(ctx context.Context, callID string) (*Session, error)
	ListActive(ctx context.Context) ([]*Session, error)
}
