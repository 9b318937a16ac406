package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// Signuper defines the interface that the service must implement.
type Signuper interface {
	Signup(ctx context.Context, in validation.SignupInput) (*models.UserDB, error)
}

// SignupRequest represents the JSON body for account registration
// swagger:model SignupRequest
type SignupRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// NewSignupHandler returns an HTTP handler for account registration.
// @Summary Register a new account
// @Description Creates a user account with the default role. Username and email are normalized to lower case; the email must be unique. The password is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body handlers.SignupRequest true "Account registration request"
// @Success 201 {object} response.Envelope "Account created"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Failure 409 {object} response.Envelope "Email already registered"
// @Router /auth/signup [post]
func NewSignupHandler(svc Signuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		user, err := svc.Signup(r.Context(), validation.SignupInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusCreated, newUserResponse(user), "User created successfully")
	}
}
