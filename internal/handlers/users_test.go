package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bookcase-labs/library-catalog/internal/middlewares"
	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/response"
)

func TestGetUserHandler_SelfAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockUserGetter(ctrl)

	selfID := uuid.New()
	otherID := uuid.New()

	r := chi.NewRouter()
	r.Get("/user/{id}", NewGetUserHandler(mockSvc))

	serve := func(target uuid.UUID, identity middlewares.Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/user/"+target.String(), nil)
		req = req.WithContext(middlewares.WithIdentity(req.Context(), identity))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("a user can fetch their own account", func(t *testing.T) {
		mockSvc.EXPECT().
			Get(gomock.Any(), selfID).
			Return(&models.UserDB{UserID: selfID, Username: "alice", Role: models.RoleUser}, nil)

		rec := serve(selfID, middlewares.Identity{UserID: selfID, Role: models.RoleUser})
		assert.Equal(t, http.StatusOK, rec.Code)

		var env response.Envelope
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
		data, _ := env.Data.(map[string]interface{})
		assert.Equal(t, "alice", data["username"])
	})

	t.Run("a user cannot fetch another account", func(t *testing.T) {
		// No service expectation: the check happens before the store.
		rec := serve(otherID, middlewares.Identity{UserID: selfID, Role: models.RoleUser})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("an admin can fetch any account", func(t *testing.T) {
		mockSvc.EXPECT().
			Get(gomock.Any(), otherID).
			Return(&models.UserDB{UserID: otherID, Username: "bob", Role: models.RoleUser}, nil)

		rec := serve(otherID, middlewares.Identity{UserID: selfID, Role: models.RoleAdmin})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/"+selfID.String(), nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestListUsersHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockUserGetter(ctrl)

	mockSvc.EXPECT().
		List(gomock.Any()).
		Return([]models.UserDB{
			{UserID: uuid.New(), Username: "alice", Role: models.RoleAdmin},
			{UserID: uuid.New(), Username: "bob", Role: models.RoleUser},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	rec := httptest.NewRecorder()

	NewListUsersHandler(mockSvc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var env response.Envelope
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	data, _ := env.Data.([]interface{})
	assert.Len(t, data, 2)
}
