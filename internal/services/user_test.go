package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/repositories"
	"github.com/bookcase-labs/library-catalog/internal/services"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

func TestUserService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("live user resolves to its stored role", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewUserService(mockReader, services.NewMockUserLister(ctrl), services.NewMockUserAccountWriter(ctrl))

		mockReader.EXPECT().
			GetByID(gomock.Any(), userID).
			Return(&models.UserDB{UserID: userID, Role: models.RoleAdmin}, nil)

		role, err := svc.Resolve(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, role)
	})

	t.Run("deleted user fails to resolve", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewUserService(mockReader, services.NewMockUserLister(ctrl), services.NewMockUserAccountWriter(ctrl))

		mockReader.EXPECT().
			GetByID(gomock.Any(), userID).
			Return(nil, repositories.ErrNotFound)

		_, err := svc.Resolve(context.Background(), userID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})

	t.Run("store failure passes through unchanged", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewUserService(mockReader, services.NewMockUserLister(ctrl), services.NewMockUserAccountWriter(ctrl))

		storeErr := errors.New("connection refused")
		mockReader.EXPECT().
			GetByID(gomock.Any(), userID).
			Return(nil, storeErr)

		_, err := svc.Resolve(context.Background(), userID)
		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	t.Run("successful update rereads the row", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserAccountWriter(ctrl)
		svc := services.NewUserService(mockReader, services.NewMockUserLister(ctrl), mockWriter)

		mockWriter.EXPECT().
			Update(gomock.Any(), userID, "alice", "alice@example.com", models.RoleAdmin).
			Return(nil)
		mockReader.EXPECT().
			GetByID(gomock.Any(), userID).
			Return(&models.UserDB{UserID: userID, Username: "alice", Role: models.RoleAdmin}, nil)

		user, err := svc.Update(context.Background(), userID, validation.UserUpdateInput{
			Username: "Alice",
			Email:    "ALICE@example.com",
			Role:     models.RoleAdmin,
		})
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("unknown role is rejected before any write", func(t *testing.T) {
		svc := services.NewUserService(services.NewMockUserReader(ctrl), services.NewMockUserLister(ctrl), services.NewMockUserAccountWriter(ctrl))

		_, err := svc.Update(context.Background(), userID, validation.UserUpdateInput{
			Username: "alice",
			Email:    "alice@example.com",
			Role:     "superuser",
		})

		var vErrs validation.Errs
		assert.ErrorAs(t, err, &vErrs)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		mockWriter := services.NewMockUserAccountWriter(ctrl)
		svc := services.NewUserService(services.NewMockUserReader(ctrl), services.NewMockUserLister(ctrl), mockWriter)

		mockWriter.EXPECT().
			Update(gomock.Any(), userID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(repositories.ErrNotFound)

		_, err := svc.Update(context.Background(), userID, validation.UserUpdateInput{
			Username: "alice",
			Email:    "alice@example.com",
			Role:     models.RoleUser,
		})
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	mockWriter := services.NewMockUserAccountWriter(ctrl)
	svc := services.NewUserService(services.NewMockUserReader(ctrl), services.NewMockUserLister(ctrl), mockWriter)

	mockWriter.EXPECT().Delete(gomock.Any(), userID).Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), userID))

	mockWriter.EXPECT().Delete(gomock.Any(), userID).Return(repositories.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), userID), services.ErrUserNotFound)
}
