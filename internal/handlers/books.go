package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// BookGetter defines the interface that the service must implement.
type BookGetter interface {
	List(ctx context.Context, search string) ([]models.BookDetail, error)
	Get(ctx context.Context, bookID uuid.UUID) (*models.BookDetail, error)
}

// BookWriterSvc defines the interface that the service must implement.
type BookWriterSvc interface {
	Create(ctx context.Context, in validation.BookInput) (*models.BookDetail, error)
	Update(ctx context.Context, bookID uuid.UUID, in validation.BookInput) (*models.BookDetail, error)
	Delete(ctx context.Context, bookID uuid.UUID) error
}

// BookDownloader defines the interface that the service must implement.
type BookDownloader interface {
	DownloadURL(ctx context.Context, bookID uuid.UUID) (string, error)
}

// BookRequest represents the JSON body for creating or updating a book
// swagger:model BookRequest
type BookRequest struct {
	// Unique title, 1-500 characters
	// required: true
	Title string `json:"title"`

	// Summary, 10-1000 characters
	// required: true
	Description string `json:"description"`

	// Identifier of the referenced author
	// required: true
	AuthorID string `json:"authorId"`

	// Unique 13-character ISBN
	// required: true
	ISBN string `json:"isbn"`

	// Identifier of the referenced category
	// required: true
	CategoryID string `json:"categoryId"`

	// Identifier of the creating user
	// required: true
	UserID string `json:"userId"`
}

// NewListBooksHandler returns an HTTP handler that lists books.
// @Summary List books
// @Description Returns books with joined author, category and owner fields. The optional search parameter filters case-insensitively over title and description.
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param search query string false "Title/description substring filter"
// @Success 200 {object} response.Envelope "Matching books"
// @Failure 401 {object} response.Envelope "Not authorized"
// @Router /books [get]
func NewListBooksHandler(svc BookGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := svc.List(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			response.Error(w, err)
			return
		}

		resp := make([]BookResponse, 0, len(books))
		for i := range books {
			resp = append(resp, newBookResponse(&books[i]))
		}
		response.JSON(w, http.StatusOK, resp, "Books retrieved successfully")
	}
}

// NewGetBookHandler returns an HTTP handler for fetching one book.
// @Summary Get a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} response.Envelope "Book"
// @Failure 404 {object} response.Envelope "Book not found"
// @Router /books/{id} [get]
func NewGetBookHandler(svc BookGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		book, err := svc.Get(r.Context(), bookID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, newBookResponse(book), "Book retrieved successfully")
	}
}

// NewCreateBookHandler returns an HTTP handler for creating a book.
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookRequest body handlers.BookRequest true "Book payload"
// @Success 201 {object} response.Envelope "Created book"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Failure 409 {object} response.Envelope "Title or ISBN already exists"
// @Router /books [post]
func NewCreateBookHandler(svc BookWriterSvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		book, err := svc.Create(r.Context(), validation.BookInput{
			Title:       req.Title,
			Description: req.Description,
			AuthorID:    req.AuthorID,
			ISBN:        req.ISBN,
			CategoryID:  req.CategoryID,
			UserID:      req.UserID,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusCreated, newBookResponse(book), "Book created successfully")
	}
}

// NewUpdateBookHandler returns an HTTP handler for updating a book.
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param bookRequest body handlers.BookRequest true "Book payload"
// @Success 200 {object} response.Envelope "Updated book"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Failure 404 {object} response.Envelope "Book not found"
// @Failure 409 {object} response.Envelope "Title or ISBN already exists"
// @Router /books/{id} [put]
func NewUpdateBookHandler(svc BookWriterSvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req BookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		book, err := svc.Update(r.Context(), bookID, validation.BookInput{
			Title:       req.Title,
			Description: req.Description,
			AuthorID:    req.AuthorID,
			ISBN:        req.ISBN,
			CategoryID:  req.CategoryID,
			UserID:      req.UserID,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, newBookResponse(book), "Book updated successfully")
	}
}

// NewDeleteBookHandler returns an HTTP handler for deleting a book.
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} response.Envelope "Book deleted"
// @Failure 404 {object} response.Envelope "Book not found"
// @Router /books/{id} [delete]
func NewDeleteBookHandler(svc BookWriterSvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := svc.Delete(r.Context(), bookID); err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, nil, "Book deleted successfully")
	}
}

// NewDownloadBookHandler returns an HTTP handler that redirects to a
// short-lived presigned URL for the book's stored file. The URL lives
// only in the redirect response; it is never persisted or logged.
// @Summary Download a book file
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 307 "Redirect to a short-lived download URL"
// @Failure 404 {object} response.Envelope "Book not found"
// @Router /books/{id}/download [get]
func NewDownloadBookHandler(svc BookDownloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		url, err := svc.DownloadURL(r.Context(), bookID)
		if err != nil {
			response.Error(w, err)
			return
		}

		http.Redirect(w, r, url, http.StatusTemporaryRedirect)
	}
}
