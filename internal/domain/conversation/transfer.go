package conversation

import "fmt"

// DefaultNegativeScoreThreshold is the sentiment score below which a negative
// caller is handed off. Tunable via configuration, not derived.
const DefaultNegativeScoreThreshold = 0.2

// TransferDecision is the outcome of the handoff policy.
type TransferDecision struct {
	Required bool
	Reason   string
}

// TransferPolicy decides whether a human handoff is required. It is a pure
// function of the extracted intent and sentiment; it holds no state.
type TransferPolicy struct {
	NegativeScoreThreshold float64
}

// NewTransferPolicy builds a policy with the given threshold; non-positive
// values fall back to the default.
func NewTransferPolicy(threshold float64) TransferPolicy {
	if threshold <= 0 {
		threshold = DefaultNegativeScoreThreshold
	}
	return TransferPolicy{NegativeScoreThreshold: threshold}
}

// Evaluate returns whether the turn requires a handoff.
func (p TransferPolicy) Evaluate(intent, sentiment string, score float64) TransferDecision {
	if intent == IntentTransfer {
		return TransferDecision{Required: true, Reason: "caller asked for a human"}
	}
	if sentiment == SentimentNegative && score < p.NegativeScoreThreshold {
		return TransferDecision{
			Required: true,
			Reason:   fmt.Sprintf("negative sentiment below threshold (%.2f < %.2f)", score, p.NegativeScoreThreshold),
		}
	}
	return TransferDecision{}
}
