// Package conversation owns live conversation instances and the transition
// logic that picks the next state and response for each user turn.
package conversation

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a conversation ID is not in the active set.
var ErrNotFound = errors.New("conversation not found")

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser   Speaker = "user"
	SpeakerSystem Speaker = "system"
)

// TurnMetadata carries the NLP annotations attached to a user turn.
type TurnMetadata struct {
	Intent    string  `json:"intent,omitempty"`
	Sentiment string  `json:"sentiment,omitempty"`
	Score     float64 `json:"score,omitempty"`
}

// Turn is one utterance in a conversation. Turns are append-only and their
// timestamps are non-decreasing.
type Turn struct {
	Speaker   Speaker       `json:"speaker"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
	Metadata  *TurnMetadata `json:"metadata,omitempty"`
}

// Instance is one live run through a flow.
type Instance struct {
	ID        string            `json:"id"`
	FlowID    string            `json:"flow_id"`
	State     string            `json:"state"`
	History   []Turn            `json:"history"`
	Context   map[string]string `json:"context,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// clone returns a deep copy safe to hand outside the engine.
func (i *Instance) clone() *Instance {
	cp := *i
	cp.History = make([]Turn, len(i.History))
	copy(cp.History, i.History)
	cp.Context = make(map[string]string, len(i.Context))
	for k, v := range i.Context {
		cp.Context[k] = v
	}
	return &cp
}

func (i *Instance) appendTurn(speaker Speaker, text string, meta *TurnMetadata) {
	now := time.Now()
	i.History = append(i.History, Turn{
		Speaker:   speaker,
		Text:      text,
		Timestamp: now,
		Metadata:  meta,
	})
	i.UpdatedAt = now
}

// IntentResult is the output of the intent extraction collaborator.
type IntentResult struct {
	Intent     string
	Entities   map[string]string
	Confidence float64
}

// SentimentResult is the output of the sentiment scoring collaborator.
type SentimentResult struct {
	Sentiment string
	Score     float64
}

// Sentiment labels produced by scorers.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// IntentUnknown is the intent reported when extraction finds no match.
const IntentUnknown = "unknown"

// IntentTransfer is the intent that forces a human handoff.
const IntentTransfer = "transfer"
