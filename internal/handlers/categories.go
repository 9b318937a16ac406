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

// CategoryGetter defines the interface that the service must implement.
type CategoryGetter interface {
	List(ctx context.Context) ([]models.CategoryDB, error)
	Get(ctx context.Context, categoryID uuid.UUID) (*models.CategoryDB, error)
}

// CategoryWriterSvc defines the interface that the service must implement.
type CategoryWriterSvc interface {
	Create(ctx context.Context, in validation.CategoryInput) (*models.CategoryDB, error)
	Update(ctx context.Context, categoryID uuid.UUID, in validation.CategoryInput) (*models.CategoryDB, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

// CategoryRequest represents the JSON body for creating or updating a category
// swagger:model CategoryRequest
type CategoryRequest struct {
	// Unique category name, 1-20 characters
	// required: true
	Name string `json:"name"`

	// Identifier of the creating user
	// required: true
	UserID string `json:"userId"`
}

// NewListCategoriesHandler returns an HTTP handler that lists all categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "All categories"
// @Failure 401 {object} response.Envelope "Not authorized"
// @Failure 403 {object} response.Envelope "Insufficient permissions"
// @Router /categories [get]
func NewListCategoriesHandler(svc CategoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.List(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		resp := make([]CategoryResponse, 0, len(categories))
		for i := range categories {
			resp = append(resp, newCategoryResponse(&categories[i]))
		}
		response.JSON(w, http.StatusOK, resp, "Categories retrieved successfully")
	}
}

// NewGetCategoryHandler returns an HTTP handler for fetching one category.
// @Summary Get a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} response.Envelope "Category"
// @Failure 404 {object} response.Envelope "Category not found"
// @Router /categories/{id} [get]
func NewGetCategoryHandler(svc CategoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		category, err := svc.Get(r.Context(), categoryID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, newCategoryResponse(category), "Category retrieved successfully")
	}
}

// NewCreateCategoryHandler returns an HTTP handler for creating a category.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryRequest body handlers.CategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope "Created category"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Failure 409 {object} response.Envelope "Category name already exists"
// @Router /categories [post]
func NewCreateCategoryHandler(svc CategoryWriterSvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		category, err := svc.Create(r.Context(), validation.CategoryInput{
			Name:   req.Name,
			UserID: req.UserID,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusCreated, newCategoryResponse(category), "Category created successfully")
	}
}

// NewUpdateCategoryHandler returns an HTTP handler for updating a category.
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param categoryRequest body handlers.CategoryRequest true "Category payload"
// @Success 200 {object} response.Envelope "Updated category"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Failure 404 {object} response.Envelope "Category not found"
// @Failure 409 {object} response.Envelope "Category name already exists"
// @Router /categories/{id} [put]
func NewUpdateCategoryHandler(svc CategoryWriterSvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		category, err := svc.Update(r.Context(), categoryID, validation.CategoryInput{
			Name:   req.Name,
			UserID: req.UserID,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, newCategoryResponse(category), "Category updated successfully")
	}
}

// NewDeleteCategoryHandler returns an HTTP handler for deleting a category.
// @Summary Delete a category
// @Description Removes a category. Books referencing it stay behind with a null category.
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} response.Envelope "Category deleted"
// @Failure 404 {object} response.Envelope "Category not found"
// @Router /categories/{id} [delete]
func NewDeleteCategoryHandler(svc CategoryWriterSvc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := svc.Delete(r.Context(), categoryID); err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, nil, "Category deleted successfully")
	}
}
