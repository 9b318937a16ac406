package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserDB represents a user row in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`            // Unique user identifier
	Username     string    `json:"username" db:"username"`     // Display name, case-normalized
	Email        string    `json:"email" db:"email"`           // Unique email, case-normalized
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never serialized
	Role         string    `json:"role" db:"role"`             // Either "user" or "admin"
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Timestamp when the user was created
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Timestamp of the last update
}

// OwnerRef carries the public fields of the user that created an entity.
// Pointer fields stay nil when the owning user has since been deleted.
type OwnerRef struct {
	UserID   uuid.UUID `json:"id"`
	Username *string   `json:"username"`
	Email    *string   `json:"email"`
	Role     *string   `json:"role"`
}
