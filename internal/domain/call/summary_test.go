package call

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"call-center-server/internal/domain/conversation"
)

func TestBuildSummary(t *testing.T) {
	sess := &Session{
		CallID: "call_summary",
		Transcript: []TranscriptEntry{
			{Speaker: conversation.SpeakerSystem, Text: "Hello! How can I help?", Timestamp: time.Now()},
			{Speaker: conversation.SpeakerUser, Text: "I want to book a viewing", Timestamp: time.Now()},
			{Speaker: conversation.SpeakerSystem, Text: "When works for you?", Timestamp: time.Now()},
			{Speaker: conversation.SpeakerUser, Text: "Tomorrow, thanks, goodbye", Timestamp: time.Now()},
			{Speaker: conversation.SpeakerSystem, Text: "Goodbye!", Timestamp: time.Now()},
		},
	}

	summary := buildSummary(sess, 125)

	if !strings.Contains(summary, "2 minutes and 5 seconds") {
		t.Errorf("summary %q missing duration breakdown", summary)
	}
	if !strings.Contains(summary, "Caller spoke 2 times") {
		t.Errorf("summary %q missing user turn count", summary)
	}
	if !strings.Contains(summary, "system responded 3 times") {
		t.Errorf("summary %q missing system turn count", summary)
	}
	if !strings.Contains(summary, `Call started with: "Hello! How can I help?"`) {
		t.Errorf("summary %q does not quote the first transcript entry", summary)
	}
	if !strings.Contains(summary, `Call ended with: "Goodbye!"`) {
		t.Errorf("summary %q does not quote the last transcript entry", summary)
	}
}

func TestBuildSummary_PreviewsFirstAndLastEntriesRegardlessOfSpeaker(t *testing.T) {
	sess := &Session{
		Transcript: []TranscriptEntry{
			{Speaker: conversation.SpeakerSystem, Text: "Welcome to support.", Timestamp: time.Now()},
			{Speaker: conversation.SpeakerUser, Text: "my printer is broken", Timestamp: time.Now()},
			{Speaker: conversation.SpeakerSystem, Text: "Thank you for calling. Goodbye!", Timestamp: time.Now()},
		},
	}

	summary := buildSummary(sess, 30)

	if !strings.Contains(summary, `Call started with: "Welcome to support."`) {
		t.Errorf("summary %q should open with the greeting, not a user entry", summary)
	}
	if !strings.Contains(summary, `Call ended with: "Thank you for calling. Goodbye!"`) {
		t.Errorf("summary %q should close with the farewell, not a user entry", summary)
	}
	if strings.Contains(summary, `with: "my printer is broken"`) {
		t.Errorf("summary %q previews a middle entry", summary)
	}
}

func TestBuildSummary_TruncatesLongUtterances(t *testing.T) {
	long := strings.Repeat("a", 80)
	sess := &Session{
		Transcript: []TranscriptEntry{
			{Speaker: conversation.SpeakerUser, Text: long, Timestamp: time.Now()},
		},
	}

	summary := buildSummary(sess, 10)

	want := strings.Repeat("a", 50) + "..."
	if !strings.Contains(summary, want) {
		t.Errorf("summary %q does not truncate to 50 chars with ellipsis", summary)
	}
	if strings.Contains(summary, strings.Repeat("a", 51)) {
		t.Errorf("summary %q contains more than 50 chars of the utterance", summary)
	}
}

func TestBuildSummary_TruncatesOnRuneBoundaries(t *testing.T) {
	long := strings.Repeat("日本語テキスト", 12)
	sess := &Session{
		Transcript: []TranscriptEntry{
			{Speaker: conversation.SpeakerUser, Text: long, Timestamp: time.Now()},
		},
	}

	summary := buildSummary(sess, 10)

	if !utf8.ValidString(summary) {
		t.Fatalf("summary contains invalid UTF-8: %q", summary)
	}
	want := string([]rune(long)[:50]) + "..."
	if !strings.Contains(summary, want) {
		t.Errorf("summary %q does not truncate to 50 runes with ellipsis", summary)
	}
}

func TestBuildSummary_EmptyTranscript(t *testing.T) {
	summary := buildSummary(&Session{}, 3)

	if !strings.Contains(summary, "Caller spoke 0 times") {
		t.Errorf("summary %q missing zero user turns", summary)
	}
	if strings.Contains(summary, "Call started with") || strings.Contains(summary, "Call ended with") {
		t.Errorf("summary %q previews entries that never happened", summary)
	}
}
