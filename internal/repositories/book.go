package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/models"
)

// likeEscaper neutralizes LIKE metacharacters so a search term always
// matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type BookReadRepository struct {
	db *sqlx.DB
}

func NewBookReadRepository(db *sqlx.DB) *BookReadRepository {
	return &BookReadRepository{db: db}
}

const bookDetailColumns = `
	b.book_id, b.title, b.description, b.author_id, b.isbn, b.category_id,
	b.user_id, b.created_at, b.updated_at,
	a.name AS author_name,
	c.name AS category_name,
	u.username AS owner_username, u.email AS owner_email, u.role AS owner_role
`

const bookDetailJoins = `
	FROM books b
	LEFT JOIN authors a ON a.author_id = b.author_id
	LEFT JOIN categories c ON c.category_id = b.category_id
	LEFT JOIN users u ON u.user_id = b.user_id
`

func (r *BookReadRepository) GetByID(ctx context.Context, bookID uuid.UUID) (*models.BookDetail, error) {
	query := `SELECT ` + bookDetailColumns + bookDetailJoins + ` WHERE b.book_id = $1`

	var book models.BookDetail
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &book, query, bookID)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{bookID},
		"error", err,
	)

	if err != nil {
		return nil, translate(err)
	}
	return &book, nil
}

// List returns all books, or only those whose title or description contains
// the search term (case-insensitive) when it is non-empty.
func (r *BookReadRepository) List(ctx context.Context, search string) ([]models.BookDetail, error) {
	query := `SELECT ` + bookDetailColumns + bookDetailJoins
	var args []any
	if search != "" {
		query += ` WHERE b.title ILIKE '%' || $1 || '%' ESCAPE '\' OR b.description ILIKE '%' || $1 || '%' ESCAPE '\'`
		args = append(args, likeEscaper.Replace(search))
	}
	query += ` ORDER BY b.created_at`

	var books []models.BookDetail
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &books, query, args...)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", args,
		"rows", len(books),
		"error", err,
	)

	if err != nil {
		return nil, translate(err)
	}
	return books, nil
}

type BookWriteRepository struct {
	db *sqlx.DB
}

func NewBookWriteRepository(db *sqlx.DB) *BookWriteRepository {
	return &BookWriteRepository{db: db}
}

func (r *BookWriteRepository) Create(ctx context.Context, book *models.BookDB) error {
	const query = `
		INSERT INTO books (book_id, title, description, author_id, isbn, category_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	args := []any{book.BookID, book.Title, book.Description, book.AuthorID, book.ISBN, book.CategoryID, book.UserID}

	_, err := ext(ctx, r.db).ExecContext(ctx, query, args...)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", args,
		"error", err,
	)

	return translate(err)
}

func (r *BookWriteRepository) Update(ctx context.Context, book *models.BookDB) error {
	const query = `
		UPDATE books
		SET title = $2, description = $3, author_id = $4, isbn = $5, category_id = $6, user_id = $7, updated_at = NOW()
		WHERE book_id = $1
	`
	args := []any{book.BookID, book.Title, book.Description, book.AuthorID, book.ISBN, book.CategoryID, book.UserID}

	res, err := ext(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", args,
		"rows_affected", rowsAffected,
		"error", err,
	)

	if err != nil {
		return translate(err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookWriteRepository) Delete(ctx context.Context, bookID uuid.UUID) error {
	const query = `DELETE FROM books WHERE book_id = $1`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, bookID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{bookID},
		"rows_affected", rowsAffected,
		"error", err,
	)

	if err != nil {
		return translate(err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
