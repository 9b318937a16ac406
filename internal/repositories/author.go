package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/models"
)

type AuthorReadRepository struct {
	db *sqlx.DB
}

func NewAuthorReadRepository(db *sqlx.DB) *AuthorReadRepository {
	return &AuthorReadRepository{db: db}
}

// Joined owner columns are nullable on purpose: deleting a user leaves
// its authors in place and the read side tolerates the orphan.
const authorDetailColumns = `
	a.author_id, a.name, a.description, a.user_id, a.created_at, a.updated_at,
	u.username AS owner_username, u.email AS owner_email, u.role AS owner_role
`

func (r *AuthorReadRepository) GetByID(ctx context.Context, authorID uuid.UUID) (*models.AuthorDetail, error) {
	query := `
		SELECT ` + authorDetailColumns + `
		FROM authors a
		LEFT JOIN users u ON u.user_id = a.user_id
		WHERE a.author_id = $1
	`

	var author models.AuthorDetail
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &author, query, authorID)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{authorID},
		"error", err,
	)

	if err != nil {
		return nil, translate(err)
	}
	return &author, nil
}

func (r *AuthorReadRepository) List(ctx context.Context) ([]models.AuthorDetail, error) {
	query := `
		SELECT ` + authorDetailColumns + `
		FROM authors a
		LEFT JOIN users u ON u.user_id = a.user_id
		ORDER BY a.created_at
	`

	var authors []models.AuthorDetail
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &authors, query)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"rows", len(authors),
		"error", err,
	)

	if err != nil {
		return nil, translate(err)
	}
	return authors, nil
}

type AuthorWriteRepository struct {
	db *sqlx.DB
}

func NewAuthorWriteRepository(db *sqlx.DB) *AuthorWriteRepository {
	return &AuthorWriteRepository{db: db}
}

func (r *AuthorWriteRepository) Create(ctx context.Context, author *models.AuthorDB) error {
	const query = `
		INSERT INTO authors (author_id, name, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	args := []any{author.AuthorID, author.Name, author.Description, author.UserID}

	_, err := ext(ctx, r.db).ExecContext(ctx, query, args...)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", args,
		"error", err,
	)

	return translate(err)
}

func (r *AuthorWriteRepository) Update(ctx context.Context, authorID uuid.UUID, name, description string, userID uuid.UUID) error {
	const query = `
		UPDATE authors
		SET name = $2, description = $3, user_id = $4, updated_at = NOW()
		WHERE author_id = $1
	`
	args := []any{authorID, name, description, userID}

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

func (r *AuthorWriteRepository) Delete(ctx context.Context, authorID uuid.UUID) error {
	const query = `DELETE FROM authors WHERE author_id = $1`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, authorID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{authorID},
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
