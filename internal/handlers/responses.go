package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/services"
)

// pathID parses the {id} URL parameter. A missing or malformed value is
// rejected as a bad request before any store lookup.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return uuid.Nil, services.ErrMissingID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, services.ErrMissingID
	}
	return id, nil
}

// UserResponse is the public shape of a user account
// swagger:model UserResponse
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(u *models.UserDB) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthorResponse is the public shape of an author with its owner joined
// swagger:model AuthorResponse
type AuthorResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	User        *models.OwnerRef `json:"user"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func newAuthorResponse(a *models.AuthorDetail) AuthorResponse {
	resp := AuthorResponse{
		ID:          a.AuthorID,
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	// A nil username means the owning user has been deleted; the
	// author is still served, with a null user.
	if a.OwnerUsername != nil {
		resp.User = &models.OwnerRef{
			UserID:   a.UserID,
			Username: a.OwnerUsername,
			Email:    a.OwnerEmail,
			Role:     a.OwnerRole,
		}
	}
	return resp
}

// CategoryResponse is the public shape of a category
// swagger:model CategoryResponse
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newCategoryResponse(c *models.CategoryDB) CategoryResponse {
	return CategoryResponse{
		ID:        c.CategoryID,
		Name:      c.Name,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// BookResponse is the public shape of a book with its references joined
// swagger:model BookResponse
type BookResponse struct {
	ID          uuid.UUID           `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ISBN        string              `json:"isbn"`
	Author      *models.AuthorRef   `json:"author"`
	Category    *models.CategoryRef `json:"category"`
	User        *models.OwnerRef    `json:"user"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func newBookResponse(b *models.BookDetail) BookResponse {
	resp := BookResponse{
		ID:          b.BookID,
		Title:       b.Title,
		Description: b.Description,
		ISBN:        b.ISBN,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.AuthorName != nil {
		resp.Author = &models.AuthorRef{AuthorID: b.AuthorID, Name: *b.AuthorName}
	}
	if b.CategoryName != nil {
		resp.Category = &models.CategoryRef{CategoryID: b.CategoryID, Name: *b.CategoryName}
	}
	if b.OwnerUsername != nil {
		resp.User = &models.OwnerRef{
			UserID:   b.UserID,
			Username: b.OwnerUsername,
			Email:    b.OwnerEmail,
			Role:     b.OwnerRole,
		}
	}
	return resp
}
