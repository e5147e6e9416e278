package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt. The salt is embedded in the produced hash,
// so nothing besides the hash itself needs to be stored.
//
// The plaintext is fed to bcrypt directly. Pre-digesting it with a fast
// hash first adds nothing: the fast digest does not slow an attacker down,
// bcrypt already salts and stretches.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces an opaque bcrypt hash of the plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether plaintext matches the stored hash. Any mismatch,
// including a malformed stored hash, yields false rather than an error.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
