package call

import (
	"fmt"

	"call-center-server/internal/domain/conversation"
)

const previewLength = 50

// buildSummary renders a human-readable recap of a finished call. It is
// computed exactly once, at the moment the session reaches a terminal status,
// so the stored summary never drifts from the transcript it describes.
func buildSummary(sess *Session, duration int64) string {
	userTurns := 0
	systemTurns := 0
	for _, entry := range sess.Transcript {
		switch entry.Speaker {
		case conversation.SpeakerUser:
			userTurns++
		case conversation.SpeakerSystem:
			systemTurns++
		}
	}

	summary := fmt.Sprintf(
		"Call lasted %d minutes and %d seconds. Caller spoke %d times, system responded %d times.",
		duration/60, duration%60, userTurns, systemTurns,
	)

	// The previews quote the first and last transcript entries regardless of
	// speaker, so the opening preview is normally the greeting.
	if len(sess.Transcript) > 0 {
		first := sess.Transcript[0].Text
		last := sess.Transcript[len(sess.Transcript)-1].Text
		summary += fmt.Sprintf(" Call started with: %q.", preview(first))
		summary += fmt.Sprintf(" Call ended with: %q.", preview(last))
	}
	return summary
}

// preview truncates on a rune boundary so multi-byte text never gets split
// mid-character.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
}
