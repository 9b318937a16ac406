package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/bookcase-labs/library-catalog/internal/middlewares"
	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// UserGetter defines the interface that the service must implement.
type UserGetter interface {
	List(ctx context.Context) ([]models.UserDB, error)
	Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserUpdater defines the interface that the service must implement.
type UserUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, in validation.UserUpdateInput) (*models.UserDB, error)
}

// UserDeleter defines the interface that the service must implement.
type UserDeleter interface {
	Delete(ctx context.Context, userID uuid.UUID) error
}

// NewListUsersHandler returns an HTTP handler that lists all accounts.
// @Summary List users
// @Description Returns every account without password material. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "All accounts"
// @Failure 401 {object} response.Envelope "Not authorized"
// @Failure 403 {object} response.Envelope "Insufficient permissions"
// @Router /user [get]
func NewListUsersHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		resp := make([]UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, newUserResponse(&users[i]))
		}
		response.JSON(w, http.StatusOK, resp, "Users retrieved successfully")
	}
}

// NewGetUserHandler returns an HTTP handler for fetching one account.
// A non-admin caller may only fetch their own account.
// @Summary Get a user
// @Description Returns a single account. Admins can fetch anyone; other callers only themselves.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope "Account"
// @Failure 401 {object} response.Envelope "Not authorized"
// @Failure 403 {object} response.Envelope "Insufficient permissions"
// @Failure 404 {object} response.Envelope "User not found"
// @Router /user/{id} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		identity, ok := middlewares.GetIdentityFromContext(r.Context())
		if !ok {
			response.JSON(w, http.StatusUnauthorized, nil, "Not authorized to access this route")
			return
		}
		if identity.Role != models.RoleAdmin && identity.UserID != userID {
			response.JSON(w, http.StatusForbidden, nil, "Insufficient permissions")
			return
		}

		user, err := svc.Get(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, newUserResponse(user), "User retrieved successfully")
	}
}

// UserUpdateRequest represents the JSON body for updating an account
// swagger:model UserUpdateRequest
type UserUpdateRequest struct {
	// Username
	// required: true
	Username string `json:"username"`

	// Email
	// required: true
	Email string `json:"email"`

	// Role, either "user" or "admin"
	// required: true
	Role string `json:"role"`
}

// NewUpdateUserHandler returns an HTTP handler for updating an account.
// @Summary Update a user
// @Description Changes username, email and role. Passwords are only changed through the reset flow. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param userUpdateRequest body handlers.UserUpdateRequest true "Account update request"
// @Success 200 {object} response.Envelope "Updated account"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Failure 404 {object} response.Envelope "User not found"
// @Failure 409 {object} response.Envelope "Email already registered"
// @Router /user/{id} [put]
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		var req UserUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		user, err := svc.Update(r.Context(), userID, validation.UserUpdateInput{
			Username: req.Username,
			Email:    req.Email,
			Role:     req.Role,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, newUserResponse(user), "User updated successfully")
	}
}

// NewDeleteUserHandler returns an HTTP handler for deleting an account.
// @Summary Delete a user
// @Description Removes an account. Catalog records it created stay behind. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope "Account deleted"
// @Failure 404 {object} response.Envelope "User not found"
// @Router /user/{id} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID); err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, nil, "User deleted successfully")
	}
}
