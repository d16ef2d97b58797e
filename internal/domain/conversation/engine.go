package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"call-center-server/internal/domain/flow"
	"call-center-server/internal/utils/idgen"
)

// fallbackResponse is used if a state definition somehow carries no
// candidates. Catalog validation makes this unreachable for loaded flows.
const fallbackResponse = "I'm not sure how to respond to that."

// IntentExtractor extracts an intent and entities from user text.
type IntentExtractor interface {
	Process(ctx context.Context, text string, metadata map[string]string) (IntentResult, error)
}

// SentimentScorer scores the sentiment of user text.
type SentimentScorer interface {
	Analyze(ctx context.Context, text string) (SentimentResult, error)
}

// ProcessInput identifies or creates the conversation a turn belongs to.
type ProcessInput struct {
	ConversationID string
	FlowID         string
	Metadata       map[string]string
}

// ProcessResult is the outcome of processing one user turn.
type ProcessResult struct {
	ConversationID   string            `json:"conversation_id"`
	Intent           string            `json:"intent"`
	Entities         map[string]string `json:"entities,omitempty"`
	Sentiment        string            `json:"sentiment"`
	SentimentScore   float64           `json:"sentiment_score"`
	Response         string            `json:"response"`
	NextState        string            `json:"next_state"`
	TransferRequired bool              `json:"transfer_required"`
}

// Engine owns the active conversation instances and applies flow rules to
// pick the next state and response for each turn.
type Engine struct {
	catalog   *flow.Catalog
	intents   IntentExtractor
	sentiment SentimentScorer
	selector  ResponseSelector
	policy    TransferPolicy

	mu     sync.Mutex
	active map[string]*Instance

	log zerolog.Logger
}

// NewEngine creates a conversation engine.
func NewEngine(
	catalog *flow.Catalog,
	intents IntentExtractor,
	sentiment SentimentScorer,
	selector ResponseSelector,
	policy TransferPolicy,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		catalog:   catalog,
		intents:   intents,
		sentiment: sentiment,
		selector:  selector,
		policy:    policy,
		active:    make(map[string]*Instance),
		log:       log.With().Str("component", "conversation-engine").Logger(),
	}
}

// Start returns the existing instance for conversationID unchanged, or
// creates a new one in the greeting state with the greeting turn already
// appended. An empty conversationID gets a generated one.
func (e *Engine) Start(ctx context.Context, conversationID, flowID string, metadata map[string]string) (*Instance, error) {
	inst, err := e.resolve(conversationID, flowID, metadata)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return inst.clone(), nil
}

// Process runs one user turn through the flow: extract intent and sentiment,
// record the user turn, decide the next state, and record the chosen system
// response.
func (e *Engine) Process(ctx context.Context, in ProcessInput, text string) (*ProcessResult, error) {
	inst, err := e.resolve(in.ConversationID, in.FlowID, in.Metadata)
	if err != nil {
		return nil, err
	}

	// Collaborator calls happen outside the engine lock; they may be slow.
	intentRes, err := e.intents.Process(ctx, text, in.Metadata)
	if err != nil {
		return nil, err
	}
	sentimentRes, err := e.sentiment.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	intent := intentRes.Intent
	if intent == "" {
		intent = IntentUnknown
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	inst.appendTurn(SpeakerUser, text, &TurnMetadata{
		Intent:    intent,
		Sentiment: sentimentRes.Sentiment,
		Score:     sentimentRes.Score,
	})

	f := e.catalog.Get(inst.FlowID)
	decision := e.policy.Evaluate(intent, sentimentRes.Sentiment, sentimentRes.Score)

	var nextState string
	if decision.Required {
		nextState = flow.StateTransfer
	} else {
		current := e.catalog.StateOf(f, inst.State)
		nextState = resolveNextState(intent, current.NextStates)
	}

	// The stored state keeps the computed name even when the flow does not
	// define it; only the response lookup falls back to greeting.
	inst.State = nextState
	response := e.respond(f, nextState)
	inst.appendTurn(SpeakerSystem, response, nil)

	e.log.Debug().
		Str("conversation_id", inst.ID).
		Str("intent", intent).
		Str("sentiment", sentimentRes.Sentiment).
		Str("next_state", nextState).
		Bool("transfer_required", decision.Required).
		Msg("processed turn")

	return &ProcessResult{
		ConversationID:   inst.ID,
		Intent:           intent,
		Entities:         intentRes.Entities,
		Sentiment:        sentimentRes.Sentiment,
		SentimentScore:   sentimentRes.Score,
		Response:         response,
		NextState:        nextState,
		TransferRequired: decision.Required,
	}, nil
}

// End removes the conversation from the active set and returns its final
// state.
func (e *Engine) End(ctx context.Context, conversationID string) (*Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, ok := e.active[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(e.active, conversationID)
	e.log.Info().Str("conversation_id", conversationID).Msg("conversation ended")
	return inst.clone(), nil
}

// Get returns a snapshot of an active conversation.
func (e *Engine) Get(ctx context.Context, conversationID string) (*Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	inst, ok := e.active[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	return inst.clone(), nil
}

// ListActive returns snapshots of all active conversations.
func (e *Engine) ListActive(ctx context.Context) []*Instance {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Instance, 0, len(e.active))
	for _, inst := range e.active {
		out = append(out, inst.clone())
	}
	return out
}

// resolve returns the registered instance for the ID, creating and greeting a
// new one when absent. Retrieval of an existing instance never resets it.
func (e *Engine) resolve(conversationID, flowID string, metadata map[string]string) (*Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if conversationID != "" {
		if inst, ok := e.active[conversationID]; ok {
			return inst, nil
		}
	} else {
		id, err := idgen.GenerateSecureID("conv", 24)
		if err != nil {
			return nil, err
		}
		conversationID = id
	}

	if !e.catalog.Has(flowID) {
		e.log.Warn().Str("flow_id", flowID).Msg("unknown flow, using default")
		flowID = flow.DefaultFlowID
	}

	now := time.Now()
	inst := &Instance{
		ID:        conversationID,
		FlowID:    flowID,
		State:     flow.StateGreeting,
		Context:   copyMetadata(metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}

	f := e.catalog.Get(flowID)
	inst.appendTurn(SpeakerSystem, e.respond(f, flow.StateGreeting), nil)

	e.active[conversationID] = inst
	e.log.Info().Str("conversation_id", conversationID).Str("flow_id", flowID).Msg("conversation started")
	return inst, nil
}

func (e *Engine) respond(f flow.Flow, stateName string) string {
	def := e.catalog.StateOf(f, stateName)
	if len(def.Responses) == 0 {
		return fallbackResponse
	}
	return e.selector.Select(def.Responses)
}

// resolveNextState applies the ordered tie-break over the current state's
// eligible transitions:
//  1. the extracted intent, when eligible
//  2. "information" for an unknown intent, when eligible
//  3. the first eligible transition
//  4. "farewell" when there are none
func resolveNextState(intent string, nextStates []string) string {
	for _, s := range nextStates {
		if s == intent {
			return intent
		}
	}
	if intent == IntentUnknown {
		for _, s := range nextStates {
			if s == flow.StateInformation {
				return flow.StateInformation
			}
		}
	}
	if len(nextStates) > 0 {
		return nextStates[0]
	}
	return flow.StateFarewell
}

func copyMetadata(metadata map[string]string) map[string]string {
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
