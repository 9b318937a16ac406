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

// AuthorReader defines read-only operations for authors.
type AuthorReader interface {
	GetByID(ctx context.Context, authorID uuid.UUID) (*models.AuthorDetail, error)
	List(ctx context.Context) ([]models.AuthorDetail, error)
}

// AuthorWriter defines write operations for authors.
type AuthorWriter interface {
	Create(ctx context.Context, author *models.AuthorDB) error
	Update(ctx context.Context, authorID uuid.UUID, name, description string, userID uuid.UUID) error
	Delete(ctx context.Context, authorID uuid.UUID) error
}

// AuthorService handles author catalog operations.
type AuthorService struct {
	reader AuthorReader
	writer AuthorWriter
}

// NewAuthorService creates a new AuthorService instance.
func NewAuthorService(reader AuthorReader, writer AuthorWriter) *AuthorService {
	return &AuthorService{reader: reader, writer: writer}
}

// List returns every author with its owner fields joined.
func (svc *AuthorService) List(ctx context.Context) ([]models.AuthorDetail, error) {
	authors, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list authors", "err", err)
		return nil, err
	}
	return authors, nil
}

// Get returns a single author by id.
func (svc *AuthorService) Get(ctx context.Context, authorID uuid.UUID) (*models.AuthorDetail, error) {
	author, err := svc.reader.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}
		logger.Log.Errorw("failed to get author", "err", err)
		return nil, err
	}
	return author, nil
}

// Create validates and stores a new author.
func (svc *AuthorService) Create(ctx context.Context, in validation.AuthorInput) (*models.AuthorDetail, error) {
	in, vErrs := validation.ValidateAuthor(in)
	if vErrs != nil {
		return nil, vErrs
	}

	author := &models.AuthorDB{
		AuthorID:    uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		UserID:      uuid.MustParse(in.UserID),
	}

	if err := svc.writer.Create(ctx, author); err != nil {
		logger.Log.Errorw("failed to save author", "err", err)
		return nil, err
	}

	return svc.Get(ctx, author.AuthorID)
}

// Update validates and applies changes to an existing author.
func (svc *AuthorService) Update(ctx context.Context, authorID uuid.UUID, in validation.AuthorInput) (*models.AuthorDetail, error) {
	in, vErrs := validation.ValidateAuthor(in)
	if vErrs != nil {
		return nil, vErrs
	}

	err := svc.writer.Update(ctx, authorID, in.Name, in.Description, uuid.MustParse(in.UserID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAuthorNotFound
		}
		logger.Log.Errorw("failed to update author", "err", err)
		return nil, err
	}

	return svc.Get(ctx, authorID)
}

// Delete removes an author. Books referencing it stay behind and
// resolve to a nil author on the read side.
func (svc *AuthorService) Delete(ctx context.Context, authorID uuid.UUID) error {
	if err := svc.writer.Delete(ctx, authorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAuthorNotFound
		}
		logger.Log.Errorw("failed to delete author", "err", err)
		return err
	}
	return nil
}
