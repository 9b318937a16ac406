package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/repositories"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// CategoryReader defines read-only operations for categories.
type CategoryReader interface {
	GetByID(ctx context.Context, categoryID uuid.UUID) (*models.CategoryDB, error)
	List(ctx context.Context) ([]models.CategoryDB, error)
}

// CategoryWriter defines write operations for categories.
type CategoryWriter interface {
	Create(ctx context.Context, category *models.CategoryDB) error
	Update(ctx context.Context, categoryID uuid.UUID, name string, userID uuid.UUID) error
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

// CategoryService handles category catalog operations.
type CategoryService struct {
	reader CategoryReader
	writer CategoryWriter
}

// NewCategoryService creates a new CategoryService instance.
func NewCategoryService(reader CategoryReader, writer CategoryWriter) *CategoryService {
	return &CategoryService{reader: reader, writer: writer}
}

// List returns every category.
func (svc *CategoryService) List(ctx context.Context) ([]models.CategoryDB, error) {
	categories, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list categories", "err", err)
		return nil, err
	}
	return categories, nil
}

// Get returns a single category by id.
func (svc *CategoryService) Get(ctx context.Context, categoryID uuid.UUID) (*models.CategoryDB, error) {
	category, err := svc.reader.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Log.Errorw("failed to get category", "err", err)
		return nil, err
	}
	return category, nil
}

// Create validates and stores a new category. The name is unique
// across the catalog.
func (svc *CategoryService) Create(ctx context.Context, in validation.CategoryInput) (*models.CategoryDB, error) {
	in, vErrs := validation.ValidateCategory(in)
	if vErrs != nil {
		return nil, vErrs
	}

	category := &models.CategoryDB{
		CategoryID: uuid.New(),
		Name:       in.Name,
		UserID:     uuid.MustParse(in.UserID),
	}

	if err := svc.writer.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrCategoryAlreadyExists
		}
		logger.Log.Errorw("failed to save category", "err", err)
		return nil, err
	}

	return svc.Get(ctx, category.CategoryID)
}

// Update validates and applies changes to an existing category.
func (svc *CategoryService) Update(ctx context.Context, categoryID uuid.UUID, in validation.CategoryInput) (*models.CategoryDB, error) {
	in, vErrs := validation.ValidateCategory(in)
	if vErrs != nil {
		return nil, vErrs
	}

	err := svc.writer.Update(ctx, categoryID, in.Name, uuid.MustParse(in.UserID))
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrCategoryAlreadyExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		logger.Log.Errorw("failed to update category", "err", err)
		return nil, err
	}

	return svc.Get(ctx, categoryID)
}

// Delete removes a category. Books referencing it stay behind and
// resolve to a nil category on the read side.
func (svc *CategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	if err := svc.writer.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCategoryNotFound
		}
		logger.Log.Errorw("failed to delete category", "err", err)
		return err
	}
	return nil
}
