package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const resetTokenBytes = 32

// ResetToken carries a freshly generated password-reset secret. Plain goes
// out-of-band to the user; only Hash and Expires are ever persisted.
type ResetToken struct {
	Plain   string
	Hash    string
	Expires time.Time
}

// GenerateResetToken creates a single-use reset secret with ttl lifetime.
func GenerateResetToken(ttl time.Duration) (*ResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate reset token: %w", err)
	}
	plain := hex.EncodeToString(buf)
	return &ResetToken{
		Plain:   plain,
		Hash:    HashResetToken(plain),
		Expires: time.Now().Add(ttl),
	}, nil
}

// HashResetToken derives the at-rest lookup hash for a presented plaintext
// token. Reset secrets are already high-entropy, so a fast hash is enough.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
