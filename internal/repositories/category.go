package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/models"
)

type CategoryReadRepository struct {
	db *sqlx.DB
}

func NewCategoryReadRepository(db *sqlx.DB) *CategoryReadRepository {
	return &CategoryReadRepository{db: db}
}

func (r *CategoryReadRepository) GetByID(ctx context.Context, categoryID uuid.UUID) (*models.CategoryDB, error) {
	const query = `
		SELECT category_id, name, user_id, created_at, updated_at
		FROM categories
		WHERE category_id = $1
	`

	var category models.CategoryDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &category, query, categoryID)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{categoryID},
		"error", err,
	)

	if err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *CategoryReadRepository) List(ctx context.Context) ([]models.CategoryDB, error) {
	const query = `
		SELECT category_id, name, user_id, created_at, updated_at
		FROM categories
		ORDER BY name
	`

	var categories []models.CategoryDB
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &categories, query)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"rows", len(categories),
		"error", err,
	)

	if err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

type CategoryWriteRepository struct {
	db *sqlx.DB
}

func NewCategoryWriteRepository(db *sqlx.DB) *CategoryWriteRepository {
	return &CategoryWriteRepository{db: db}
}

func (r *CategoryWriteRepository) Create(ctx context.Context, category *models.CategoryDB) error {
	const query = `
		INSERT INTO categories (category_id, name, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	args := []any{category.CategoryID, category.Name, category.UserID}

	_, err := ext(ctx, r.db).ExecContext(ctx, query, args...)

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", args,
		"error", err,
	)

	return translate(err)
}

func (r *CategoryWriteRepository) Update(ctx context.Context, categoryID uuid.UUID, name string, userID uuid.UUID) error {
	const query = `
		UPDATE categories
		SET name = $2, user_id = $3, updated_at = NOW()
		WHERE category_id = $1
	`
	args := []any{categoryID, name, userID}

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

func (r *CategoryWriteRepository) Delete(ctx context.Context, categoryID uuid.UUID) error {
	const query = `DELETE FROM categories WHERE category_id = $1`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, categoryID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("query",
		"sql", squish(query),
		"args", []any{categoryID},
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
