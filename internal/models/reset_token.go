package models

import "time"

// ResetTokenRecord is the stored form of a password-reset token.
// Only the bcrypt hash of the secret is ever persisted; the plaintext
// secret exists solely inside the reset link mailed to the user.
type ResetTokenRecord struct {
	TokenHash string    `json:"token_hash"` // bcrypt hash of the reset secret
	CreatedAt time.Time `json:"created_at"` // Timestamp when the token was issued
}
