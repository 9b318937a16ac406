package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// PasswordResetter defines the interface that the service must implement.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, in validation.ResetPasswordInput) error
}

// ResetPasswordRequest represents the JSON body for redeeming a reset token
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// User identifier from the reset link
	// required: true
	UserID string `json:"userId"`

	// Reset secret from the reset link
	// required: true
	Token string `json:"token"`

	// New password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// NewResetPasswordHandler returns an HTTP handler for redeeming a
// password reset token.
// @Summary Reset a password
// @Description Redeems a reset token and sets the new password. The token is consumed and cannot be redeemed twice.
// @Tags auth
// @Accept json
// @Produce json
// @Param resetPasswordRequest body handlers.ResetPasswordRequest true "Password reset redemption"
// @Success 200 {object} response.Envelope "Password updated"
// @Failure 400 {object} response.Envelope "Validation failure"
// @Failure 401 {object} response.Envelope "Token does not match"
// @Failure 404 {object} response.Envelope "No active reset token"
// @Router /auth/reset-password [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.JSON(w, http.StatusBadRequest, nil, "Invalid request body")
			return
		}

		err := svc.ResetPassword(r.Context(), validation.ResetPasswordInput{
			UserID:   req.UserID,
			Token:    req.Token,
			Password: req.Password,
		})
		if err != nil {
			response.Error(w, err)
			return
		}

		response.JSON(w, http.StatusOK, nil, "Password has been reset")
	}
}
