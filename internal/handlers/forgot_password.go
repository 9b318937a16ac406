package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// PasswordForgetter defines the interface that the service must implement.
type PasswordForgetter interface {
	ForgotPassword(ctx context.Context, in validation.ForgotPasswordInput) error
}

// ForgotPasswordRequest represents the JSON body for a reset request
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// NewForgotPasswordHandler returns an HTTP handler for requesting a
// password reset link.
// @Summary Request a password reset
// @Description Issues a fresh reset token and emails the reset link. The response is identical whether or not the account exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body handlers.ForgotPasswordRequest true "Password reset request"
// @Success 200 {object} response.Envelope "Reset email queued"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Router /auth/forgot-password [post]
func NewForgotPasswordHandler(svc PasswordForgetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ForgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		err := svc.ForgotPassword(r.Context(), validation.ForgotPasswordInput{Email: req.Email})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, nil, "If the email is registered, a reset link has been sent")
	}
}
