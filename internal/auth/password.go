package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher computes and checks salted one-way password digests.
type Hasher struct {
	cost int
}

// NewHasher creates a password hasher with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext. Each call salts freshly, so
// equal inputs produce distinct digests.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest, using bcrypt's
// own constant-time comparison.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
