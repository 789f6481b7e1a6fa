package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateResetToken returns a 32-byte cryptographically random token,
// hex-encoded (64 characters).
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
