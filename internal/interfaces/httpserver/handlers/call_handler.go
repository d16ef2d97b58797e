package handlers

import (
	"context"

	"call-center-server/internal/domain/call"
)

// CallHandler handles call-related HTTP requests.
type CallHandler struct {
	service call.Service
}

// NewCallHandler creates a new call handler.
func NewCallHandler(service call.Service) *CallHandler {
	return &CallHandler{service: service}
}

// HandleIncoming registers and answers an incoming call.
func (h *CallHandler) HandleIncoming(ctx context.Context, callID, from, to, flowID string) (*call.Session, error) {
	return h.service.HandleIncomingCall(ctx, callID, from, to, flowID)
}

// MakeOutbound places an outbound call.
func (h *CallHandler) MakeOutbound(ctx context.Context, to, flowID string, callContext map[string]string) (*call.Session, error) {
	return h.service.MakeOutboundCall(ctx, to, flowID, callContext)
}

// ProcessSpeech runs caller audio through the turn pipeline.
func (h *CallHandler) ProcessSpeech(ctx context.Context, callID string, audio []byte, language string) (*call.TurnResult, error) {
	return h.service.ProcessSpeech(ctx, callID, audio, language)
}

// ProcessDTMF runs a keypad entry through the turn pipeline.
func (h *CallHandler) ProcessDTMF(ctx context.Context, callID, digits string) (*call.TurnResult, error) {
	return h.service.ProcessDTMF(ctx, callID, digits)
}

// EndCall terminates a call.
func (h *CallHandler) EndCall(ctx context.Context, callID, reason string) (*call.Session, error) {
	return h.service.EndCall(ctx, callID, reason)
}

// GetSession retrieves a call session by ID.
func (h *CallHandler) GetSession(ctx context.Context, callID string) (*call.Session, error) {
	return h.service.GetSession(ctx, callID)
}

// ListActive retrieves all active call sessions.
func (h *CallHandler) ListActive(ctx context.Context) ([]*call.Session, error) {
	return h.service.ListActive(ctx)
}
