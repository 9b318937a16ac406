package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthorDB represents an author row in the database
type AuthorDB struct {
	AuthorID    uuid.UUID `json:"id" db:"author_id"`            // Unique author identifier
	Name        string    `json:"name" db:"name"`               // Author name, 1-255 characters
	Description string    `json:"description" db:"description"` // Biography, 10-1000 characters
	UserID      uuid.UUID `json:"user_id" db:"user_id"`         // Identifier of the creating user
	CreatedAt   time.Time `json:"created_at" db:"created_at"`   // Timestamp when the author was created
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`   // Timestamp of the last update
}

// AuthorDetail is an author row plus the creating user's public fields
// joined on the read side. Owner fields are nil for orphaned rows.
type AuthorDetail struct {
	AuthorDB
	OwnerUsername *string `db:"owner_username"`
	OwnerEmail    *string `db:"owner_email"`
	OwnerRole     *string `db:"owner_role"`
}

// AuthorRef carries the display fields of a referenced author.
type AuthorRef struct {
	AuthorID uuid.UUID `json:"id"`
	Name     string    `json:"name"`
}
