package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookcase-labs/library-catalog/internal/jwt"
	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/services"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.JSON(rec, http.StatusCreated, map[string]string{"id": "42"}, "Created")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env response.Envelope
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, http.StatusCreated, env.Status)
	assert.Equal(t, "Created", env.Message)
}

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "invalid credentials", err: services.ErrInvalidCredentials, expectedCode: http.StatusUnauthorized},
		{name: "invalid token", err: jwt.ErrInvalidToken, expectedCode: http.StatusUnauthorized},
		{name: "reset token mismatch", err: services.ErrResetTokenMismatch, expectedCode: http.StatusUnauthorized},
		{name: "user not found", err: services.ErrUserNotFound, expectedCode: http.StatusNotFound},
		{name: "book not found", err: services.ErrBookNotFound, expectedCode: http.StatusNotFound},
		{name: "reset token not found", err: services.ErrResetTokenNotFound, expectedCode: http.StatusNotFound},
		{name: "email conflict", err: services.ErrEmailAlreadyExists, expectedCode: http.StatusConflict},
		{name: "book conflict", err: services.ErrBookAlreadyExists, expectedCode: http.StatusConflict},
		{name: "missing id", err: services.ErrMissingID, expectedCode: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("db exploded"), expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.Error(rec, tt.err)

			assert.Equal(t, tt.expectedCode, rec.Code)

			var env response.Envelope
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
			assert.Equal(t, tt.expectedCode, env.Status)
			assert.Nil(t, env.Data)
		})
	}
}

func TestError_ValidationViolationsAreData(t *testing.T) {
	rec := httptest.NewRecorder()

	response.Error(rec, validation.Errs{
		{Field: "email", Msg: "invalid email format"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env response.Envelope
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "Error validating request data", env.Message)

	data, _ := env.Data.([]interface{})
	assert.Len(t, data, 1)
	first, _ := data[0].(map[string]interface{})
	assert.Equal(t, "email", first["field"])
}

func TestError_InternalDetailIsNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()

	response.Error(rec, errors.New("pq: connection refused on 10.0.0.3"))

	var env response.Envelope
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "Internal server error", env.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}
