package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// Loginer defines the interface that the service must implement.
type Loginer interface {
	Login(ctx context.Context, in validation.LoginInput) (string, error)
}

// LoginRequest represents the JSON body for login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginResponse represents a successful login payload
// swagger:model LoginResponse
type LoginResponse struct {
	// Session token
	Token string `json:"token"`
}

// NewLoginHandler returns an HTTP handler for login.
// @Summary Authenticate a user
// @Description Verifies the email and password and returns a signed session token. Unknown emails and wrong passwords produce the same error.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} response.Envelope "Session token issued"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Failure 401 {object} response.Envelope "Invalid credentials"
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		token, err := svc.Login(r.Context(), validation.LoginInput{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, LoginResponse{Token: token}, "Login successful")
	}
}
