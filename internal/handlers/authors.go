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

// AuthorGetter defines the interface that the service must implement.
type AuthorGetter interface {
	List(ctx context.Context) ([]models.AuthorDetail, error)
	Get(ctx context.Context, authorID uuid.UUID) (*models.AuthorDetail, error)
}

// AuthorWriterSvc defines the interface that the service must implement.
type AuthorWriterSvc interface {
	Create(ctx context.Context, in validation.AuthorInput) (*models.AuthorDetail, error)
	Update(ctx context.Context, authorID uuid.UUID, in validation.AuthorInput) (*models.AuthorDetail, error)
	Delete(ctx context.Context, authorID uuid.UUID) error
}

// AuthorRequest represents the JSON body for creating or updating an author
// swagger:model AuthorRequest
type AuthorRequest struct {
	// Author name
	// required: true
	Name string `json:"name"`

	// Biography, 10-1000 characters
	// required: true
	Description string `json:"description"`

	// Identifier of the creating user
	// required: true
	UserID string `json:"userId"`
}

// NewListAuthorsHandler returns an HTTP handler that lists all authors.
// @Summary List authors
// @Description Returns every author with its owner's public fields joined. Admin only.
// @Tags authors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "All authors"
// @Failure 401 {object} response.Envelope "Not authorized"
// @Failure 403 {object} response.Envelope "Insufficient permissions"
// @Router /authors [get]
func NewListAuthorsHandler(svc AuthorGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authors, err := svc.List(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		resp := make([]AuthorResponse, 0, len(authors))
		for i := range authors {
			resp = append(resp, newAuthorResponse(&authors[i]))
		}
		response.JSON(w, http.StatusOK, resp, "Authors retrieved successfully")
	}
}

// NewGetAuthorHandler returns an HTTP handler for fetching one author.
// @Summary Get an author
// @Tags authors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Author ID"
// @Success 200 {object} response.Envelope "Author"
// @Failure 404 {object} response.Envelope "Author not found"
// @Router /authors/{id} [get]
func NewGetAuthorHandler(svc AuthorGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		author, err := svc.Get(r.Context(), authorID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, newAuthorResponse(author), "Author retrieved successfully")
	}
}

// NewCreateAuthorHandler returns an HTTP handler for creating an author.
// @Summary Create an author
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param authorRequest body handlers.AuthorRequest true "Author payload"
// @Success 201 {object} response.Envelope "Created author"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Router /authors [post]
func NewCreateAuthorHandler(svc AuthorWriterSvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AuthorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		author, err := svc.Create(r.Context(), validation.AuthorInput{
			Name:        req.Name,
			Description: req.Description,
			UserID:      req.UserID,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusCreated, newAuthorResponse(author), "Author created successfully")
	}
}

// NewUpdateAuthorHandler returns an HTTP handler for updating an author.
// @Summary Update an author
// @Tags authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Author ID"
// @Param authorRequest body handlers.AuthorRequest true "Author payload"
// @Success 200 {object} response.Envelope "Updated author"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Failure 404 {object} response.Envelope "Author not found"
// @Router /authors/{id} [put]
func NewUpdateAuthorHandler(svc AuthorWriterSvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req AuthorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		author, err := svc.Update(r.Context(), authorID, validation.AuthorInput{
			Name:        req.Name,
			Description: req.Description,
			UserID:      req.UserID,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, newAuthorResponse(author), "Author updated successfully")
	}
}

// NewDeleteAuthorHandler returns an HTTP handler for deleting an author.
// @Summary Delete an author
// @Description Removes an author. Books referencing it stay behind with a null author.
// @Tags authors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Author ID"
// @Success 200 {object} response.Envelope "Author deleted"
// @Failure 404 {object} response.Envelope "Author not found"
// @Router /authors/{id} [delete]
func NewDeleteAuthorHandler(svc AuthorWriterSvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := svc.Delete(r.Context(), authorID); err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, nil, "Author deleted successfully")
	}
}
