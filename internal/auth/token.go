package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewVerificationToken returns a 64-character hex string backed by 32 bytes of
// cryptographic randomness, used for e-mail verification and password resets.
func NewVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
