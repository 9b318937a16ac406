package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookcase-labs/library-catalog/internal/dbx"
	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/models"
)

// squish collapses a multi-line query for single-line logging.
func squish(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// ext returns the request transaction when one is bound to the context,
// otherwise the shared connection pool.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	return dbx.Ext(ctx, db)
}

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, email)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{email},
		"error", err,
	)

	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, userID)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT user_id, username, email, password_hash, role, created_at, updated_at
		FROM users
		ORDER BY created_at
	`

	var users []models.UserDB
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &users, query)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"rows", len(users),
		"error", err,
	)

	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

func (r *UserWriteRepository) Create(ctx context.Context, user *models.UserDB) error {
	const query = `
		INSERT INTO users (user_id, username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	args := []any{user.UserID, user.Username, user.Email, user.PasswordHash, user.Role}

	_, err := ext(ctx, r.db).ExecContext(ctx, query, args...)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{user.UserID, user.Username, user.Email, user.Role},
		"error", err,
	)

	return translate(err)
}

func (r *UserWriteRepository) Update(ctx context.Context, userID uuid.UUID, username, email, role string) error {
	const query = `
		UPDATE users
		SET username = $2, email = $3, role = $4, updated_at = NOW()
		WHERE user_id = $1
	`
	args := []any{userID, username, email, role}

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

func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, userID, passwordHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{userID},
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

func (r *UserWriteRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM users WHERE user_id = $1`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{userID},
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
