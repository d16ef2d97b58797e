// Package telephony provides a simulated carrier integration. It keeps an
// in-memory table of carrier-side call legs so the orchestrator can be
// exercised end to end without a real trunk.
package telephony

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"call-center-server/internal/domain/call"
	"call-center-server/internal/utils/idgen"
)

type carrierCall struct {
	callID     string
	from       string
	to         string
	status     string
	recording  bool
	recordedAt time.Time
}

// SimulatedProvider implements the telephony contract against an in-memory
// call table. Dials always connect, transfers always succeed, and recordings
// produce a deterministic URL.
type SimulatedProvider struct {
	outboundNumber string

	mu    sync.Mutex
	calls map[string]*carrierCall

	log zerolog.Logger
}

var _ call.Telephony = (*SimulatedProvider)(nil)

// NewSimulatedProvider creates a simulated carrier.
func NewSimulatedProvider(outboundNumber string, log zerolog.Logger) *SimulatedProvider {
	return &SimulatedProvider{
		outboundNumber: outboundNumber,
		calls:          make(map[string]*carrierCall),
		log:            log.With().Str("component", "simulated-telephony").Logger(),
	}
}

// Dial places an outbound call leg. Numbers must be in E.164-like form.
func (p *SimulatedProvider) Dial(ctx context.Context, number string) (call.DialResult, error) {
	if !validNumber(number) {
		return call.DialResult{}, fmt.Errorf("invalid phone number %q", number)
	}

	callID, err := idgen.GenerateSecureID("call", 24)
	if err != nil {
		return call.DialResult{}, err
	}

	p.mu.Lock()
	p.calls[callID] = &carrierCall{
		callID: callID,
		from:   p.outboundNumber,
		to:     number,
		status: "connected",
	}
	p.mu.Unlock()

	p.log.Info().Str("call_id", callID).Str("to", number).Msg("outbound call connected")
	return call.DialResult{
		CallID: callID,
		From:   p.outboundNumber,
		To:     number,
		Status: "connected",
	}, nil
}

// Answer accepts a call leg. Carrier-originated calls are not in the table
// yet; answering registers them.
func (p *SimulatedProvider) Answer(ctx context.Context, callID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	leg, ok := p.calls[callID]
	if !ok {
		leg = &carrierCall{callID: callID}
		p.calls[callID] = leg
	}
	leg.status = "connected"
	p.log.Info().Str("call_id", callID).Msg("call answered")
	return nil
}

// Hangup tears down a call leg.
func (p *SimulatedProvider) Hangup(ctx context.Context, callID, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	leg, ok := p.calls[callID]
	if !ok {
		return fmt.Errorf("no such call %q", callID)
	}
	leg.status = "ended"
	p.log.Info().Str("call_id", callID).Str("reason", reason).Msg("call hung up")
	return nil
}

// Transfer bridges a call leg to another number.
func (p *SimulatedProvider) Transfer(ctx context.Context, callID, target string) error {
	if !validNumber(target) {
		return fmt.Errorf("invalid transfer target %q", target)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	leg, ok := p.calls[callID]
	if !ok {
		return fmt.Errorf("no such call %q", callID)
	}
	if leg.status == "ended" {
		return fmt.Errorf("call %q already ended", callID)
	}
	leg.status = "transferred"
	p.log.Info().Str("call_id", callID).Str("target", target).Msg("call transferred")
	return nil
}

// StartRecording begins recording a call leg.
func (p *SimulatedProvider) StartRecording(ctx context.Context, callID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	leg, ok := p.calls[callID]
	if !ok {
		return fmt.Errorf("no such call %q", callID)
	}
	if leg.recording {
		return fmt.Errorf("call %q already recording", callID)
	}
	leg.recording = true
	leg.recordedAt = time.Now()
	return nil
}

// StopRecording finishes recording and returns where the file would live.
func (p *SimulatedProvider) StopRecording(ctx context.Context, callID string) (call.Recording, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	leg, ok := p.calls[callID]
	if !ok {
		return call.Recording{}, fmt.Errorf("no such call %q", callID)
	}
	if !leg.recording {
		return call.Recording{}, fmt.Errorf("call %q not recording", callID)
	}
	leg.recording = false

	return call.Recording{
		URL:             fmt.Sprintf("https://recordings.local/%s.wav", callID),
		DurationSeconds: int64(time.Since(leg.recordedAt).Seconds()),
	}, nil
}

// validNumber accepts a leading plus followed by 7 to 15 digits.
func validNumber(number string) bool {
	if !strings.HasPrefix(number, "+") {
		return false
	}
	digits := number[1:]
	if len(digits) < 7 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
