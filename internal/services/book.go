package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookcase-labs/library-catalog/internal/facades"
	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/repositories"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// BookReader defines read-only operations for books.
type BookReader interface {
	GetByID(ctx context.Context, bookID uuid.UUID) (*models.BookDetail, error)
	List(ctx context.Context, search string) ([]models.BookDetail, error)
}

// BookWriter defines write operations for books.
type BookWriter interface {
	Create(ctx context.Context, book *models.BookDB) error
	Update(ctx context.Context, book *models.BookDB) error
	Delete(ctx context.Context, bookID uuid.UUID) error
}

// BookStorage produces short-lived download URLs for stored book files.
type BookStorage interface {
	PresignBookDownload(ctx context.Context, bookID uuid.UUID) (string, error)
}

// BookService handles book catalog operations.
type BookService struct {
	reader  BookReader
	writer  BookWriter
	storage BookStorage
	audit   AuditPublisher
}

// NewBookService creates a new BookService instance.
func NewBookService(reader BookReader, writer BookWriter, storage BookStorage, audit AuditPublisher) *BookService {
	return &BookService{reader: reader, writer: writer, storage: storage, audit: audit}
}

// List returns books with their referenced display fields joined,
// optionally filtered by a case-insensitive title/description search.
func (svc *BookService) List(ctx context.Context, search string) ([]models.BookDetail, error) {
	books, err := svc.reader.List(ctx, search)
	if err != nil {
		logger.Log.Errorw("failed to list books", "err", err)
		return nil, err
	}
	return books, nil
}

// Get returns a single book by id.
func (svc *BookService) Get(ctx context.Context, bookID uuid.UUID) (*models.BookDetail, error) {
	book, err := svc.reader.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		logger.Log.Errorw("failed to get book", "err", err)
		return nil, err
	}
	return book, nil
}

// Create validates and stores a new book. Title and ISBN are unique
// across the catalog.
func (svc *BookService) Create(ctx context.Context, in validation.BookInput) (*models.BookDetail, error) {
	in, vErrs := validation.ValidateBook(in)
	if vErrs != nil {
		return nil, vErrs
	}

	book := &models.BookDB{
		BookID:      uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		AuthorID:    uuid.MustParse(in.AuthorID),
		ISBN:        in.ISBN,
		CategoryID:  uuid.MustParse(in.CategoryID),
		UserID:      uuid.MustParse(in.UserID),
	}

	if err := svc.writer.Create(ctx, book); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrBookAlreadyExists
		}
		logger.Log.Errorw("failed to save book", "err", err)
		return nil, err
	}

	svc.publishAudit(facades.EventBookCreated, book.BookID.String())

	return svc.Get(ctx, book.BookID)
}

// Update validates and applies changes to an existing book.
func (svc *BookService) Update(ctx context.Context, bookID uuid.UUID, in validation.BookInput) (*models.BookDetail, error) {
	in, vErrs := validation.ValidateBook(in)
	if vErrs != nil {
		return nil, vErrs
	}

	book := &models.BookDB{
		BookID:      bookID,
		Title:       in.Title,
		Description: in.Description,
		AuthorID:    uuid.MustParse(in.AuthorID),
		ISBN:        in.ISBN,
		CategoryID:  uuid.MustParse(in.CategoryID),
		UserID:      uuid.MustParse(in.UserID),
	}

	if err := svc.writer.Update(ctx, book); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrBookAlreadyExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		logger.Log.Errorw("failed to update book", "err", err)
		return nil, err
	}

	return svc.Get(ctx, bookID)
}

// Delete removes a book.
func (svc *BookService) Delete(ctx context.Context, bookID uuid.UUID) error {
	if err := svc.writer.Delete(ctx, bookID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		logger.Log.Errorw("failed to delete book", "err", err)
		return err
	}

	svc.publishAudit(facades.EventBookDeleted, bookID.String())

	return nil
}

// DownloadURL returns a short-lived presigned URL for the book's file.
// The URL is handed straight to the caller, never persisted or logged.
func (svc *BookService) DownloadURL(ctx context.Context, bookID uuid.UUID) (string, error) {
	if _, err := svc.Get(ctx, bookID); err != nil {
		return "", err
	}

	url, err := svc.storage.PresignBookDownload(ctx, bookID)
	if err != nil {
		logger.Log.Errorw("failed to presign book download", "book_id", bookID, "err", err)
		return "", err
	}
	return url, nil
}

func (svc *BookService) publishAudit(eventType, entityID string) {
	if svc.audit == nil {
		return
	}
	go func() {
		if err := svc.audit.Publish(context.Background(), eventType, entityID); err != nil {
			logger.Log.Errorw("failed to publish audit event", "type", eventType, "err", err)
		}
	}()
}
