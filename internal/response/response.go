// Package response implements the uniform {status, data, message} envelope
// shared by every endpoint, and the single place where service errors are
// mapped onto HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bookcase-labs/library-catalog/internal/jwt"
	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/services"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// Envelope is the three-part response contract: status code, payload
// (null on error) and a human-readable message.
type Envelope struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// JSON writes a success envelope.
func JSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{
		Status:  status,
		Data:    data,
		Message: message,
	}); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

// Error writes an error envelope with the status code that belongs to the
// error's kind. Unknown errors are reported as 500 without internal detail.
func Error(w http.ResponseWriter, err error) {
	var vErrs validation.Errs
	if errors.As(err, &vErrs) {
		JSON(w, http.StatusBadRequest, vErrs, "Error validating request data")
		return
	}

	switch {
	case errors.Is(err, services.ErrMissingID):
		JSON(w, http.StatusBadRequest, nil, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrResetTokenMismatch),
		errors.Is(err, jwt.ErrInvalidToken):
		JSON(w, http.StatusUnauthorized, nil, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAuthorNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrBookNotFound),
		errors.Is(err, services.ErrResetTokenNotFound):
		JSON(w, http.StatusNotFound, nil, err.Error())
	case errors.Is(err, services.ErrEmailAlreadyExists),
		errors.Is(err, services.ErrCategoryAlreadyExists),
		errors.Is(err, services.ErrBookAlreadyExists):
		JSON(w, http.StatusConflict, nil, err.Error())
	default:
		logger.Log.Errorw("internal server error", "err", err)
		JSON(w, http.StatusInternalServerError, nil, "Internal server error")
	}
}
