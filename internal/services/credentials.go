package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// resetSecretBytes is the entropy of a password-reset secret.
const resetSecretBytes = 32

// Credentials implements the one-way credential operations: password
// hashing and verification, and reset-secret generation. Hashing is
// salted bcrypt, so two calls over the same input never produce the
// same output.
type Credentials struct {
	hashCost int
}

// NewCredentials creates a Credentials instance with the given bcrypt
// cost. Costs below bcrypt.DefaultCost are raised to it.
func NewCredentials(hashCost int) *Credentials {
	if hashCost < bcrypt.DefaultCost {
		hashCost = bcrypt.DefaultCost
	}
	return &Credentials{hashCost: hashCost}
}

// prehash reduces the plaintext to a fixed-width digest. bcrypt only
// reads the first 72 bytes of its input, so longer passwords must be
// compressed first or they would be rejected.
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.RawStdEncoding.EncodeToString(sum[:]))
}

// HashPassword returns the salted one-way hash of a plaintext password.
func (c *Credentials) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(plain), c.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored hash. The
// comparison is constant-time inside bcrypt; the plaintext is never
// reconstructed.
func (c *Credentials) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(plain)) == nil
}

// NewResetSecret generates a cryptographically random reset secret and
// the hash under which it is stored. The plaintext secret is returned
// exactly once and must never be persisted.
func (c *Credentials) NewResetSecret() (secret, hash string, err error) {
	buf := make([]byte, resetSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate reset secret: %w", err)
	}
	secret = base64.RawURLEncoding.EncodeToString(buf)

	hash, err = c.HashPassword(secret)
	if err != nil {
		return "", "", err
	}
	return secret, hash, nil
}
