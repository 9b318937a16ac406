package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bookcase-labs/library-catalog/internal/response"
	"github.com/bookcase-labs/library-catalog/internal/services"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	tests := []struct {
		name            string
		inputBody       interface{}
		mockSetup       func()
		expectedCode    int
		expectedMessage string
	}{
		{
			name: "success",
			inputBody: LoginRequest{
				Email:    "john@example.com",
				Password: "secret123",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), validation.LoginInput{Email: "john@example.com", Password: "secret123"}).
					Return("JWT_TOKEN", nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "Login successful",
		},
		{
			name:            "invalid JSON",
			inputBody:       "{invalid json}",
			mockSetup:       func() {},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Invalid request body",
		},
		{
			name: "wrong credentials",
			inputBody: LoginRequest{
				Email:    "john@example.com",
				Password: "wrongpass1",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return("", services.ErrInvalidCredentials)
			},
			expectedCode:    http.StatusUnauthorized,
			expectedMessage: services.ErrInvalidCredentials.Error(),
		},
		{
			name: "internal error",
			inputBody: LoginRequest{
				Email:    "john@example.com",
				Password: "secret123",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return("", errors.New("db down"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var body bytes.Buffer
			switch v := tt.inputBody.(type) {
			case string:
				body.WriteString(v)
			default:
				assert.NoError(t, json.NewEncoder(&body).Encode(v))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", &body)
			rec := httptest.NewRecorder()

			NewLoginHandler(mockSvc)(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)

			var env response.Envelope
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
			assert.Equal(t, tt.expectedCode, env.Status)
			assert.Equal(t, tt.expectedMessage, env.Message)

			if tt.expectedCode == http.StatusOK {
				data, _ := env.Data.(map[string]interface{})
				assert.Equal(t, "JWT_TOKEN", data["token"])
			}
		})
	}
}
