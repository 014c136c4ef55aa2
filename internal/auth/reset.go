package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DefaultResetTTL bounds how long a password reset link can be redeemed.
const DefaultResetTTL = time.Hour

const resetTokenBytes = 32

// NewResetToken returns a random raw token for the reset link and the hash to
// persist in its place.
func NewResetToken() (raw, hash string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

// HashResetToken is deterministic so the stored hash can be looked up from the
// raw value presented at redemption.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
