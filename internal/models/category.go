package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryDB represents a category row in the database
type CategoryDB struct {
	CategoryID uuid.UUID `json:"id" db:"category_id"`        // Unique category identifier
	Name       string    `json:"name" db:"name"`             // Unique category name, 1-20 characters
	UserID     uuid.UUID `json:"user_id" db:"user_id"`       // Identifier of the creating user
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // Timestamp when the category was created
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"` // Timestamp of the last update
}

// CategoryRef carries the display fields of a referenced category.
type CategoryRef struct {
	CategoryID uuid.UUID `json:"id"`
	Name       string    `json:"name"`
}
