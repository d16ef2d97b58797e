// Package idgen generates the prefixed identifiers used across the service,
// such as call_, conv_ and wh_ IDs.
package idgen

import (
	"crypto/rand"
	"fmt"
)

const idCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID returns "<prefix>_<random>" where the random part is
// length characters drawn from 0-9a-z via crypto/rand. The charset keeps IDs
// safe for URLs and log fields without escaping.
func GenerateSecureID(prefix string, length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	encoded := make([]byte, length)
	for i, b := range raw {
		encoded[i] = idCharset[int(b)%len(idCharset)]
	}

	return fmt.Sprintf("%s_%s", prefix, encoded), nil
}
