package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bookcase-labs/library-catalog/internal/models"
)

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name             string
		allowed          []string
		identity         *Identity
		expectedStatus   int
		expectNextCalled bool
	}{
		{
			name:             "NoIdentity",
			allowed:          []string{models.RoleAdmin},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:             "RoleNotAllowed",
			allowed:          []string{models.RoleAdmin},
			identity:         &Identity{UserID: uuid.New(), Role: models.RoleUser},
			expectedStatus:   http.StatusForbidden,
			expectNextCalled: false,
		},
		{
			name:             "RoleAllowed",
			allowed:          []string{models.RoleUser, models.RoleAdmin},
			identity:         &Identity{UserID: uuid.New(), Role: models.RoleUser},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := RoleMiddleware(tt.allowed...)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), *tt.identity))
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
		})
	}
}
