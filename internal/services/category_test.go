package services_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/repositories"
	"github.com/bookcase-labs/library-catalog/internal/services"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

func TestCategoryService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		mockWriter := services.NewMockCategoryWriter(ctrl)
		svc := services.NewCategoryService(services.NewMockCategoryReader(ctrl), mockWriter)

		mockWriter.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(repositories.ErrUniqueViolation)

		_, err := svc.Create(context.Background(), validation.CategoryInput{
			Name:   "fiction",
			UserID: uuid.NewString(),
		})
		assert.ErrorIs(t, err, services.ErrCategoryAlreadyExists)
	})

	t.Run("name over twenty characters is rejected", func(t *testing.T) {
		svc := services.NewCategoryService(services.NewMockCategoryReader(ctrl), services.NewMockCategoryWriter(ctrl))

		_, err := svc.Create(context.Background(), validation.CategoryInput{
			Name:   "a far too long category name",
			UserID: uuid.NewString(),
		})

		var vErrs validation.Errs
		assert.ErrorAs(t, err, &vErrs)
		assert.Equal(t, "name", vErrs[0].Field)
	})

	t.Run("successful create rereads the row", func(t *testing.T) {
		mockReader := services.NewMockCategoryReader(ctrl)
		mockWriter := services.NewMockCategoryWriter(ctrl)
		svc := services.NewCategoryService(mockReader, mockWriter)

		mockWriter.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		mockReader.EXPECT().
			GetByID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, categoryID uuid.UUID) (*models.CategoryDB, error) {
				return &models.CategoryDB{CategoryID: categoryID, Name: "fiction"}, nil
			})

		category, err := svc.Create(context.Background(), validation.CategoryInput{
			Name:   "fiction",
			UserID: uuid.NewString(),
		})
		assert.NoError(t, err)
		assert.Equal(t, "fiction", category.Name)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	categoryID := uuid.New()

	mockWriter := services.NewMockCategoryWriter(ctrl)
	svc := services.NewCategoryService(services.NewMockCategoryReader(ctrl), mockWriter)

	mockWriter.EXPECT().Delete(gomock.Any(), categoryID).Return(repositories.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), categoryID), services.ErrCategoryNotFound)
}
