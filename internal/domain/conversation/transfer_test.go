package conversation

import "testing"

func TestTransferPolicy_Evaluate(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		intent    string
		sentiment string
		score     float64
		want      bool
	}{
		{
			name:      "transfer intent always transfers",
			threshold: 0.2,
			intent:    IntentTransfer,
			sentiment: SentimentPositive,
			score:     0.9,
			want:      true,
		},
		{
			name:      "negative below threshold transfers",
			threshold: 0.2,
			intent:    "complaint",
			sentiment: SentimentNegative,
			score:     0.1,
			want:      true,
		},
		{
			name:      "negative at threshold does not transfer",
			threshold: 0.2,
			intent:    "complaint",
			sentiment: SentimentNegative,
			score:     0.2,
			want:      false,
		},
		{
			name:      "low score without negative label does not transfer",
			threshold: 0.2,
			intent:    IntentUnknown,
			sentiment: SentimentNeutral,
			score:     0.05,
			want:      false,
		},
		{
			name:      "neutral turn does not transfer",
			threshold: 0.2,
			intent:    "information",
			sentiment: SentimentNeutral,
			score:     0.5,
			want:      false,
		},
		{
			name:      "custom threshold widens the transfer band",
			threshold: 0.4,
			intent:    "complaint",
			sentiment: SentimentNegative,
			score:     0.3,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewTransferPolicy(tt.threshold)
			got := policy.Evaluate(tt.intent, tt.sentiment, tt.score)
			if got.Required != tt.want {
				t.Errorf("Evaluate(%q, %q, %v).Required = %v, want %v", tt.intent, tt.sentiment, tt.score, got.Required, tt.want)
			}
			if got.Required && got.Reason == "" {
				t.Error("required transfer decision carries no reason")
			}
		})
	}
}

func TestNewTransferPolicy_DefaultThreshold(t *testing.T) {
	policy := NewTransferPolicy(0)
	if policy.NegativeScoreThreshold != DefaultNegativeScoreThreshold {
		t.Errorf("NegativeScoreThreshold = %v, want %v", policy.NegativeScoreThreshold, DefaultNegativeScoreThreshold)
	}
}
