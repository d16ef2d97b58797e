package idgen

import (
	"strings"
	"testing"
)

func TestGenerateSecureID(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		length     int
		wantPrefix string
	}{
		{name: "call ID", prefix: "call", length: 24, wantPrefix: "call_"},
		{name: "conversation ID", prefix: "conv", length: 24, wantPrefix: "conv_"},
		{name: "webhook ID", prefix: "wh", length: 16, wantPrefix: "wh_"},
		{name: "short ID", prefix: "x", length: 4, wantPrefix: "x_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSecureID(tt.prefix, tt.length)
			if err != nil {
				t.Fatalf("GenerateSecureID() error = %v", err)
			}
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("GenerateSecureID() = %q, want prefix %q", got, tt.wantPrefix)
			}
			random := strings.TrimPrefix(got, tt.wantPrefix)
			if len(random) != tt.length {
				t.Errorf("random part length = %d, want %d", len(random), tt.length)
			}
			for _, r := range random {
				if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'z')) {
					t.Errorf("random part %q contains non-alphanumeric character %q", random, r)
				}
			}
		})
	}
}

func TestGenerateSecureID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := GenerateSecureID("call", 24)
		if err != nil {
			t.Fatalf("GenerateSecureID() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
