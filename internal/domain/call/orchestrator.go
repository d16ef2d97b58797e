package call

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"call-center-server/internal/config"
	"call-center-server/internal/domain/conversation"
	"call-center-server/internal/domain/flow"
	"call-center-server/internal/infrastructure/metrics"
	"call-center-server/internal/utils/idgen"
	"call-center-server/internal/utils/platformerrors"
)

// Orchestrator drives call sessions end to end. It owns the lifecycle state
// machine and is the only writer of session state; every operation on a call
// runs under that session's mutex, including collaborator calls, so turns on
// one call are strictly serialized.
type Orchestrator struct {
	store       Store
	engine      ConversationEngine
	transcriber Transcriber
	synthesizer Synthesizer
	telephony   Telephony
	events      EventSink

	admission       *semaphore.Weighted
	defaultFlowID   string
	outboundNumber  string
	defaultVoiceID  string
	transferNumbers map[string]string
	recordCalls     bool
	listenTimeoutMS int

	log zerolog.Logger
}

var _ Service = (*Orchestrator)(nil)

// NewOrchestrator creates the call orchestration service.
func NewOrchestrator(
	cfg *config.Config,
	store Store,
	engine ConversationEngine,
	transcriber Transcriber,
	synthesizer Synthesizer,
	telephony Telephony,
	events EventSink,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:           store,
		engine:          engine,
		transcriber:     transcriber,
		synthesizer:     synthesizer,
		telephony:       telephony,
		events:          events,
		admission:       semaphore.NewWeighted(cfg.MaxConcurrentCalls),
		defaultFlowID:   cfg.DefaultFlowID,
		outboundNumber:  cfg.OutboundNumber,
		defaultVoiceID:  cfg.DefaultVoiceID,
		transferNumbers: cfg.TransferNumbers(),
		recordCalls:     cfg.RecordingEnabled,
		listenTimeoutMS: int(cfg.ListenTimeout.Milliseconds()),
		log:             log.With().Str("component", "call-orchestrator").Logger(),
	}
}

// HandleIncomingCall registers a carrier-originated call, answers it, starts
// its conversation, and speaks the greeting.
func (o *Orchestrator) HandleIncomingCall(ctx context.Context, callID, from, to, flowID string) (*Session, error) {
	if callID == "" {
		id, err := idgen.GenerateSecureID("call", 24)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "generate call id", err)
		}
		callID = id
	}
	if flowID == "" {
		flowID = o.defaultFlowID
	}

	if !o.admission.TryAcquire(1) {
		return nil, ErrTooManyCalls
	}

	sess := &Session{
		CallID:    callID,
		Direction: DirectionInbound,
		From:      from,
		To:        to,
		Status:    StatusInitiated,
		FlowID:    flowID,
		Context:   map[string]string{},
		StartedAt: time.Now(),
	}
	if err := o.store.Create(ctx, sess); err != nil {
		o.admission.Release(1)
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := o.telephony.Answer(ctx, callID); err != nil {
		o.failLocked(ctx, sess, "answer failed")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "answer call", err)
	}
	o.transitionLocked(sess, StatusInProgress)

	if err := o.beginConversationLocked(ctx, sess); err != nil {
		o.failLocked(ctx, sess, "conversation start failed")
		return nil, err
	}

	metrics.RecordCallStarted(string(DirectionInbound))
	o.log.Info().Str("call_id", callID).Str("from", from).Str("flow_id", sess.FlowID).Msg("incoming call answered")
	o.events.Emit(ctx, EventCallStarted, o.eventPayloadLocked(sess))
	return sess.snapshotLocked(), nil
}

// MakeOutboundCall dials a number and starts the conversation once the call
// is up. The dial happens before any session is registered; a failed dial
// leaves no trace beyond the log.
func (o *Orchestrator) MakeOutboundCall(ctx context.Context, toNumber, flowID string, callContext map[string]string) (*Session, error) {
	if flowID == "" {
		flowID = o.defaultFlowID
	}

	if !o.admission.TryAcquire(1) {
		return nil, ErrTooManyCalls
	}

	dial, err := o.telephony.Dial(ctx, toNumber)
	if err != nil {
		o.admission.Release(1)
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "dial outbound call", err)
	}

	from := dial.From
	if from == "" {
		from = o.outboundNumber
	}
	sess := &Session{
		CallID:    dial.CallID,
		Direction: DirectionOutbound,
		From:      from,
		To:        toNumber,
		Status:    StatusInitiated,
		FlowID:    flowID,
		Context:   copyContext(callContext),
		StartedAt: time.Now(),
	}
	if err := o.store.Create(ctx, sess); err != nil {
		o.admission.Release(1)
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// The simulated carrier answers immediately; the ringing status exists
	// as a recorded transition, not a wait state.
	o.transitionLocked(sess, StatusRinging)
	o.transitionLocked(sess, StatusInProgress)

	if err := o.beginConversationLocked(ctx, sess); err != nil {
		o.failLocked(ctx, sess, "conversation start failed")
		return nil, err
	}

	metrics.RecordCallStarted(string(DirectionOutbound))
	o.log.Info().Str("call_id", sess.CallID).Str("to", toNumber).Str("flow_id", sess.FlowID).Msg("outbound call connected")
	o.events.Emit(ctx, EventCallStarted, o.eventPayloadLocked(sess))
	return sess.snapshotLocked(), nil
}

// ProcessSpeech transcribes caller audio and runs the text through the
// conversation turn pipeline. A transcription failure leaves the session
// unchanged.
func (o *Orchestrator) ProcessSpeech(ctx context.Context, callID string, audio []byte, language string) (*TurnResult, error) {
	sess, err := o.store.Get(ctx, callID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Status.Terminal() {
		return nil, ErrSessionTerminated
	}

	start := time.Now()
	tr, err := o.transcriber.Transcribe(ctx, audio, language)
	metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "transcribe caller audio", err)
	}
	o.log.Debug().Str("call_id", callID).Float64("confidence", tr.Confidence).Msg("audio transcribed")

	return o.processTurnLocked(ctx, sess, tr.Text, tr.Text)
}

// ProcessDTMF records a keypad entry and runs it through the same turn
// pipeline as speech, as the synthetic utterance "Pressed <digits>".
func (o *Orchestrator) ProcessDTMF(ctx context.Context, callID, digits string) (*TurnResult, error) {
	sess, err := o.store.Get(ctx, callID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Status.Terminal() {
		return nil, ErrSessionTerminated
	}

	return o.processTurnLocked(ctx, sess, "DTMF: "+digits, "Pressed "+digits)
}

// EndCall terminates a call at the caller's or operator's request.
func (o *Orchestrator) EndCall(ctx context.Context, callID, reason string) (*Session, error) {
	sess, err := o.store.Get(ctx, callID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Status.Terminal() {
		return nil, ErrSessionTerminated
	}
	if reason == "" {
		reason = "caller hangup"
	}
	o.endLocked(ctx, sess, reason)
	return sess.snapshotLocked(), nil
}

// GetSession returns a snapshot of any registered session, terminal included.
func (o *Orchestrator) GetSession(ctx context.Context, callID string) (*Session, error) {
	sess, err := o.store.Get(ctx, callID)
	if err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

// ListActive returns snapshots of all non-terminal sessions.
func (o *Orchestrator) ListActive(ctx context.Context) ([]*Session, error) {
	sessions, err := o.store.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*Session, 0, len(sessions))
	for _, sess := range sessions {
		snap := sess.Snapshot()
		if !snap.Status.Terminal() {
			active = append(active, snap)
		}
	}
	return active, nil
}

// beginConversationLocked starts the session's conversation, records the
// greeting on the transcript, speaks it, and arms the listen window.
func (o *Orchestrator) beginConversationLocked(ctx context.Context, sess *Session) error {
	if o.recordCalls {
		if err := o.telephony.StartRecording(ctx, sess.CallID); err != nil {
			o.log.Warn().Err(err).Str("call_id", sess.CallID).Msg("recording could not be started")
		} else {
			sess.recordingActive = true
		}
	}

	inst, err := o.engine.Start(ctx, "", sess.FlowID, map[string]string{
		"call_id":   sess.CallID,
		"direction": string(sess.Direction),
		"caller":    sess.From,
	})
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "start conversation", err)
	}
	sess.ConversationID = inst.ID
	sess.FlowID = inst.FlowID

	greeting := greetingText(inst)
	sess.appendTranscriptLocked(conversation.SpeakerSystem, greeting)
	o.speakLocked(ctx, sess, greeting)
	sess.NextAction = &Action{Type: ActionListen, TimeoutMS: o.listenTimeoutMS}
	return nil
}

// processTurnLocked is the shared pipeline behind speech and DTMF input:
// record the user entry, run the conversation turn, then either transfer,
// wind the call down, or speak the response and keep listening.
func (o *Orchestrator) processTurnLocked(ctx context.Context, sess *Session, transcriptText, utterance string) (*TurnResult, error) {
	sess.appendTranscriptLocked(conversation.SpeakerUser, transcriptText)

	res, err := o.engine.Process(ctx, conversation.ProcessInput{
		ConversationID: sess.ConversationID,
		FlowID:         sess.FlowID,
		Metadata:       map[string]string{"call_id": sess.CallID},
	}, utterance)
	if err != nil {
		// Turn failures come from the NLP collaborators, so they are provider
		// faults like a failed transcription.
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "process conversation turn", err)
	}

	if res.TransferRequired {
		return o.transferLocked(ctx, sess, res)
	}

	sess.appendTranscriptLocked(conversation.SpeakerSystem, res.Response)
	synthesisFailed := !o.speakLocked(ctx, sess, res.Response)

	if res.NextState == flow.StateFarewell {
		o.endLocked(ctx, sess, "conversation completed")
		return &TurnResult{
			Action:          TurnActionEndCall,
			Message:         res.Response,
			NextState:       res.NextState,
			SynthesisFailed: synthesisFailed,
		}, nil
	}

	sess.NextAction = &Action{Type: ActionListen, TimeoutMS: o.listenTimeoutMS}
	return &TurnResult{
		Action:          TurnActionContinue,
		Message:         res.Response,
		NextState:       res.NextState,
		SynthesisFailed: synthesisFailed,
	}, nil
}

// transferLocked hands the call to a human. A carrier transfer failure leaves
// the session in progress so the caller can retry or hang up.
func (o *Orchestrator) transferLocked(ctx context.Context, sess *Session, res *conversation.ProcessResult) (*TurnResult, error) {
	target := o.resolveTransferTarget(sess.Context)

	if err := o.telephony.Transfer(ctx, sess.CallID, target); err != nil {
		metrics.Transfers.WithLabelValues("failed").Inc()
		o.log.Error().Err(err).Str("call_id", sess.CallID).Str("target", target).Msg("transfer failed")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeTransferFailed, "transfer call to human agent", err)
	}

	message := fmt.Sprintf("Transferring you to a human representative at %s. Please hold.", target)
	sess.appendTranscriptLocked(conversation.SpeakerSystem, message)
	o.speakLocked(ctx, sess, message)

	o.stopRecordingLocked(ctx, sess)
	o.transitionLocked(sess, StatusTransferred)
	sess.TransferTo = target
	sess.NextAction = nil
	o.finishLocked(ctx, sess, "transferred to human agent")

	metrics.Transfers.WithLabelValues("success").Inc()
	metrics.RecordCallEnded(string(StatusTransferred))
	o.log.Info().Str("call_id", sess.CallID).Str("target", target).Msg("call transferred")
	o.events.Emit(ctx, EventCallTransferred, o.eventPayloadLocked(sess))

	return &TurnResult{
		Action:     TurnActionTransfer,
		Message:    message,
		NextState:  res.NextState,
		TransferTo: target,
	}, nil
}

// endLocked completes a call: stop recording, hang up, move to completed,
// and compute the summary once.
func (o *Orchestrator) endLocked(ctx context.Context, sess *Session, reason string) {
	o.stopRecordingLocked(ctx, sess)

	if err := o.telephony.Hangup(ctx, sess.CallID, reason); err != nil {
		o.log.Warn().Err(err).Str("call_id", sess.CallID).Msg("hangup failed")
	}

	o.transitionLocked(sess, StatusCompleted)
	sess.NextAction = nil
	o.finishLocked(ctx, sess, reason)

	metrics.RecordCallEnded(string(StatusCompleted))
	o.log.Info().Str("call_id", sess.CallID).Str("reason", reason).Int64("duration_seconds", sess.DurationSeconds).Msg("call ended")
	o.events.Emit(ctx, EventCallEnded, o.eventPayloadLocked(sess))
}

// failLocked marks a session failed during setup, before it ever carried a
// conversation. Setup failures happen before RecordCallStarted, so neither
// the started nor the ended counters move here; the two totals stay paired.
func (o *Orchestrator) failLocked(ctx context.Context, sess *Session, reason string) {
	o.transitionLocked(sess, StatusFailed)
	sess.NextAction = nil
	o.finishLocked(ctx, sess, reason)
	o.log.Error().Str("call_id", sess.CallID).Str("reason", reason).Msg("call failed")
}

// finishLocked stamps the terminal bookkeeping shared by every way a call can
// end. The admission slot is released exactly once because terminal sessions
// reject all further mutations.
func (o *Orchestrator) finishLocked(ctx context.Context, sess *Session, reason string) {
	now := time.Now()
	sess.EndedAt = &now
	sess.DurationSeconds = int64(now.Sub(sess.StartedAt).Seconds())
	sess.EndReason = reason
	sess.Summary = buildSummary(sess, sess.DurationSeconds)

	if sess.ConversationID != "" {
		if _, err := o.engine.End(ctx, sess.ConversationID); err != nil {
			o.log.Debug().Err(err).Str("conversation_id", sess.ConversationID).Msg("conversation already gone")
		}
	}
	o.admission.Release(1)
}

func (o *Orchestrator) stopRecordingLocked(ctx context.Context, sess *Session) {
	if !sess.recordingActive {
		return
	}
	sess.recordingActive = false

	rec, err := o.telephony.StopRecording(ctx, sess.CallID)
	if err != nil {
		o.log.Warn().Err(err).Str("call_id", sess.CallID).Msg("recording could not be stopped")
		return
	}
	sess.RecordingURL = rec.URL
	o.events.Emit(ctx, EventRecordingAvailable, map[string]any{
		"call_id":          sess.CallID,
		"recording_url":    rec.URL,
		"duration_seconds": rec.DurationSeconds,
	})
}

// speakLocked synthesizes a system utterance. Synthesis failure is soft; the
// turn proceeds with the text-only response.
func (o *Orchestrator) speakLocked(ctx context.Context, sess *Session, text string) bool {
	start := time.Now()
	_, err := o.synthesizer.Synthesize(ctx, text, o.defaultVoiceID)
	metrics.SynthesisDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		o.log.Warn().Err(err).Str("call_id", sess.CallID).Msg("synthesis failed, continuing with text response")
		return false
	}
	return true
}

func (o *Orchestrator) transitionLocked(sess *Session, to Status) {
	metrics.RecordStatusTransition(string(sess.Status), string(to))
	sess.Status = to
}

// resolveTransferTarget picks the department number from the session context,
// falling back to the default line.
func (o *Orchestrator) resolveTransferTarget(callContext map[string]string) string {
	if dept, ok := callContext["department"]; ok {
		if number, ok := o.transferNumbers[dept]; ok {
			return number
		}
		o.log.Warn().Str("department", dept).Msg("unknown transfer department, using default")
	}
	return o.transferNumbers["default"]
}

func (o *Orchestrator) eventPayloadLocked(sess *Session) map[string]any {
	payload := map[string]any{
		"call_id":   sess.CallID,
		"direction": string(sess.Direction),
		"from":      sess.From,
		"to":        sess.To,
		"status":    string(sess.Status),
		"flow_id":   sess.FlowID,
	}
	if sess.TransferTo != "" {
		payload["transfer_to"] = sess.TransferTo
	}
	if sess.EndedAt != nil {
		payload["duration_seconds"] = sess.DurationSeconds
		payload["end_reason"] = sess.EndReason
	}
	return payload
}

// greetingText returns the first system turn of a freshly started
// conversation.
func greetingText(inst *conversation.Instance) string {
	for _, turn := range inst.History {
		if turn.Speaker == conversation.SpeakerSystem {
			return turn.Text
		}
	}
	return ""
}

func copyContext(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
