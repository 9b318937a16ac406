package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/bookcase-labs/library-catalog/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func bookDetailRows(book *models.BookDB, authorName, categoryName, ownerUsername *string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"book_id", "title", "description", "author_id", "isbn", "category_id",
		"user_id", "created_at", "updated_at",
		"author_name", "category_name",
		"owner_username", "owner_email", "owner_role",
	}).AddRow(
		book.BookID, book.Title, book.Description, book.AuthorID, book.ISBN, book.CategoryID,
		book.UserID, now, now,
		authorName, categoryName,
		ownerUsername, nil, nil,
	)
}

func TestBookReadRepository_GetByID(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewBookReadRepository(sqlxDB)

	book := &models.BookDB{
		BookID: uuid.New(), Title: "The Go Programming Language",
		Description: "A thorough introduction to Go.",
		AuthorID:    uuid.New(), ISBN: "9780134190440",
		CategoryID: uuid.New(), UserID: uuid.New(),
	}
	authorName := "Alan Donovan"

	t.Run("joined row with orphaned owner", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM books b LEFT JOIN authors a .* WHERE b\.book_id = \$1`).
			WithArgs(book.BookID).
			WillReturnRows(bookDetailRows(book, &authorName, nil, nil))

		got, err := repo.GetByID(context.Background(), book.BookID)
		assert.NoError(t, err)
		assert.Equal(t, book.Title, got.Title)
		assert.Equal(t, "Alan Donovan", *got.AuthorName)
		assert.Nil(t, got.CategoryName)
		assert.Nil(t, got.OwnerUsername)
	})

	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM books b`).
			WithArgs(book.BookID).
			WillReturnRows(sqlmock.NewRows([]string{"book_id"}))

		_, err := repo.GetByID(context.Background(), book.BookID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookReadRepository_List_Search(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewBookReadRepository(sqlxDB)

	book := &models.BookDB{
		BookID: uuid.New(), Title: "The Go Programming Language",
		Description: "A thorough introduction to Go.",
		AuthorID:    uuid.New(), ISBN: "9780134190440",
		CategoryID: uuid.New(), UserID: uuid.New(),
	}

	t.Run("search term is bound once for both columns", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM books b .* WHERE b\.title ILIKE .* OR b\.description ILIKE .* ORDER BY b\.created_at`).
			WithArgs("go").
			WillReturnRows(bookDetailRows(book, nil, nil, nil))

		books, err := repo.List(context.Background(), "go")
		assert.NoError(t, err)
		assert.Len(t, books, 1)
	})

	t.Run("pattern metacharacters are matched literally", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM books b .* WHERE b\.title ILIKE .* OR b\.description ILIKE .* ORDER BY b\.created_at`).
			WithArgs(`100\% legal\\fair\_use`).
			WillReturnRows(bookDetailRows(book, nil, nil, nil))

		books, err := repo.List(context.Background(), `100% legal\fair_use`)
		assert.NoError(t, err)
		assert.Len(t, books, 1)
	})

	t.Run("empty search lists everything without a filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM books b .* ORDER BY b\.created_at`).
			WillReturnRows(bookDetailRows(book, nil, nil, nil))

		books, err := repo.List(context.Background(), "")
		assert.NoError(t, err)
		assert.Len(t, books, 1)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_Update(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewBookWriteRepository(sqlxDB)

	book := &models.BookDB{
		BookID: uuid.New(), Title: "Renamed",
		Description: "A renamed description.",
		AuthorID:    uuid.New(), ISBN: "9780134190440",
		CategoryID: uuid.New(), UserID: uuid.New(),
	}

	t.Run("affected row succeeds", func(t *testing.T) {
		mock.ExpectExec(`UPDATE books SET`).
			WithArgs(book.BookID, book.Title, book.Description, book.AuthorID, book.ISBN, book.CategoryID, book.UserID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(context.Background(), book))
	})

	t.Run("zero affected rows maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE books SET`).
			WithArgs(book.BookID, book.Title, book.Description, book.AuthorID, book.ISBN, book.CategoryID, book.UserID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), book), ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
