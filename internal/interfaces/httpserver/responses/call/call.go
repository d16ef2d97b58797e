// Package callres contains HTTP response DTOs for call endpoints.
package callres

import (
	"time"

	domaincall "call-center-server/internal/domain/call"
)

// CallResponse represents a call session in API responses.
type CallResponse struct {
	ID              string            `json:"id"`
	Object          string            `json:"object"`
	Direction       string            `json:"direction"`
	From            string            `json:"from"`
	To              string            `json:"to"`
	Status          string            `json:"status"`
	FlowID          string            `json:"flow_id"`
	ConversationID  string            `json:"conversation_id,omitempty"`
	Transcript      []TranscriptEntry `json:"transcript"`
	RecordingURL    string            `json:"recording_url,omitempty"`
	TransferTo      string            `json:"transfer_to,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	EndedAt         *time.Time        `json:"ended_at,omitempty"`
	DurationSeconds int64             `json:"duration_seconds"`
	EndReason       string            `json:"end_reason,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	NextAction      *NextActionDetail `json:"next_action,omitempty"`
}

// TranscriptEntry is one utterance in the call transcript.
type TranscriptEntry struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NextActionDetail tells the caller-facing layer what to do next.
type NextActionDetail struct {
	Type      string `json:"type"`
	TimeoutMS int    `json:"timeout_ms,omitempty"`
}

// TurnResponse represents the outcome of one caller input.
type TurnResponse struct {
	Object          string `json:"object"`
	Action          string `json:"action"`
	Message         string `json:"message"`
	NextState       string `json:"next_state,omitempty"`
	TransferTo      string `json:"transfer_to,omitempty"`
	SynthesisFailed bool   `json:"synthesis_failed,omitempty"`
}

// ListCallsResponse represents the response for listing calls.
type ListCallsResponse struct {
	Object string          `json:"object"`
	Data   []*CallResponse `json:"data"`
}

// NewCallResponse creates a CallResponse from a domain session snapshot.
func NewCallResponse(sess *domaincall.Session) *CallResponse {
	resp := &CallResponse{
		ID:              sess.CallID,
		Object:          "call.session",
		Direction:       string(sess.Direction),
		From:            sess.From,
		To:              sess.To,
		Status:          string(sess.Status),
		FlowID:          sess.FlowID,
		ConversationID:  sess.ConversationID,
		RecordingURL:    sess.RecordingURL,
		TransferTo:      sess.TransferTo,
		StartedAt:       sess.StartedAt,
		EndedAt:         sess.EndedAt,
		DurationSeconds: sess.DurationSeconds,
		EndReason:       sess.EndReason,
		Summary:         sess.Summary,
	}
	resp.Transcript = make([]TranscriptEntry, len(sess.Transcript))
	for i, entry := range sess.Transcript {
		resp.Transcript[i] = TranscriptEntry{
			Speaker:   string(entry.Speaker),
			Text:      entry.Text,
			Timestamp: entry.Timestamp,
		}
	}
	if sess.NextAction != nil {
		resp.NextAction = &NextActionDetail{
			Type:      sess.NextAction.Type,
			TimeoutMS: sess.NextAction.TimeoutMS,
		}
	}
	return resp
}

// NewTurnResponse creates a TurnResponse from a domain turn result.
func NewTurnResponse(res *domaincall.TurnResult) *TurnResponse {
	return &TurnResponse{
		Object:          "call.turn",
		Action:          res.Action,
		Message:         res.Message,
		NextState:       res.NextState,
		TransferTo:      res.TransferTo,
		SynthesisFailed: res.SynthesisFailed,
	}
}

// NewListCallsResponse creates a ListCallsResponse from session snapshots.
func NewListCallsResponse(sessions []*domaincall.Session) *ListCallsResponse {
	data := make([]*CallResponse, len(sessions))
	for i, sess := range sessions {
		data[i] = NewCallResponse(sess)
	}
	return &ListCallsResponse{
		Object: "list",
		Data:   data,
	}
}
