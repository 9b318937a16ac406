package models

import (
	"time"

	"github.com/google/uuid"
)

// BookDB represents a book row in the database
type BookDB struct {
	BookID      uuid.UUID `json:"id" db:"book_id"`              // Unique book identifier
	Title       string    `json:"title" db:"title"`             // Unique title, 1-500 characters
	Description string    `json:"description" db:"description"` // Summary, 10-1000 characters
	AuthorID    uuid.UUID `json:"author_id" db:"author_id"`     // Identifier of the referenced author
	ISBN        string    `json:"isbn" db:"isbn"`               // Unique 13-character ISBN
	CategoryID  uuid.UUID `json:"category_id" db:"category_id"` // Identifier of the referenced category
	UserID      uuid.UUID `json:"user_id" db:"user_id"`         // Identifier of the creating user
	CreatedAt   time.Time `json:"created_at" db:"created_at"`   // Timestamp when the book was created
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`   // Timestamp of the last update
}

// BookDetail is a book row plus display fields of its referenced author,
// category and creating user, joined on the read side. Joined fields are
// nil when the referenced row has since been deleted.
type BookDetail struct {
	BookDB
	AuthorName    *string `db:"author_name"`
	CategoryName  *string `db:"category_name"`
	OwnerUsername *string `db:"owner_username"`
	OwnerEmail    *string `db:"owner_email"`
	OwnerRole     *string `db:"owner_role"`
}
