// Package callreq contains HTTP request DTOs for call endpoints.
package callreq

// InboundCallRequest represents a carrier notification of an incoming call.
type InboundCallRequest struct {
	// CallID is the carrier's identifier; one is generated when absent.
	CallID string `json:"call_id,omitempty"`
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
	FlowID string `json:"flow_id,omitempty"`
}

// OutboundCallRequest represents a request to place an outbound call.
type OutboundCallRequest struct {
	To     string `json:"to" binding:"required"`
	FlowID string `json:"flow_id,omitempty"`
	// Context carries routing hints such as the transfer department.
	Context map[string]string `json:"context,omitempty"`
}

// SpeechRequest carries one chunk of caller audio.
type SpeechRequest struct {
	// Audio is the base64-encoded audio payload.
	Audio    string `json:"audio" binding:"required"`
	Language string `json:"language,omitempty"`
}

// DTMFRequest carries a keypad entry.
type DTMFRequest struct {
	Digits string `json:"digits" binding:"required"`
}

// EndCallRequest optionally names why the call is being ended.
type EndCallRequest struct {
	Reason string `json:"reason,omitempty"`
}
