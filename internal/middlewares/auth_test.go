package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bookcase-labs/library-catalog/internal/jwt"
	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/services"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name             string
		mockSetup        func(m *MockTokener, u *MockUserResolver)
		expectedStatus   int
		expectNextCalled bool
		expectedRole     string
	}{
		{
			name: "NoToken",
			mockSetup: func(m *MockTokener, u *MockUserResolver) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("no token"))
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "InvalidToken",
			mockSetup: func(m *MockTokener, u *MockUserResolver) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("sometoken", nil)
				m.EXPECT().GetClaims(gomock.Any(), "sometoken").
					Return(nil, jwt.ErrInvalidToken)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "DeletedUser",
			mockSetup: func(m *MockTokener, u *MockUserResolver) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				m.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(&jwt.Claims{UserID: userID, Role: models.RoleUser}, nil)
				u.EXPECT().Resolve(gomock.Any(), userID).
					Return("", services.ErrUserNotFound)
			},
			expectedStatus:   http.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name: "StoreFailure",
			mockSetup: func(m *MockTokener, u *MockUserResolver) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				m.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(&jwt.Claims{UserID: userID, Role: models.RoleUser}, nil)
				// A store outage is not a credential problem.
				u.EXPECT().Resolve(gomock.Any(), userID).
					Return("", errors.New("connection refused"))
			},
			expectedStatus:   http.StatusInternalServerError,
			expectNextCalled: false,
		},
		{
			name: "ValidToken",
			mockSetup: func(m *MockTokener, u *MockUserResolver) {
				m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("validtoken", nil)
				m.EXPECT().GetClaims(gomock.Any(), "validtoken").
					Return(&jwt.Claims{UserID: userID, Role: models.RoleUser}, nil)
				// The resolved role wins over the token claim.
				u.EXPECT().Resolve(gomock.Any(), userID).
					Return(models.RoleAdmin, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
			expectedRole:     models.RoleAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokener := NewMockTokener(ctrl)
			mockUsers := NewMockUserResolver(ctrl)
			tt.mockSetup(mockTokener, mockUsers)

			// Wrap a next handler to check if it was called
			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				id, ok := GetIdentityFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, userID, id.UserID)
				assert.Equal(t, tt.expectedRole, id.Role)
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(mockTokener, mockUsers)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
		})
	}
}
