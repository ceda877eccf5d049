package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

const categoryColumns = `
	c.id, c.user_id, c.name, c.description, c.color,
	(SELECT count(*) FROM todos t WHERE t.category_id = c.id),
	c.created_at, c.updated_at`

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategory(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, category model.Category) (model.Category, error) {
	query := `
		INSERT INTO categories AS c (user_id, name, description, color)
		VALUES ($1, $2, $3, $4)
		RETURNING` + categoryColumns

	row := r.db.QueryRowContext(ctx, query,
		category.UserID, category.Name, nullString(category.Description), nullString(category.Color),
	)
	return scanCategory(row)
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, userID, categoryID string) (model.Category, error) {
	query := `SELECT` + categoryColumns + `
		FROM categories c
		WHERE c.id = $1 AND c.user_id = $2`

	row := r.db.QueryRowContext(ctx, query, categoryID, userID)
	return scanCategory(row)
}

func (r *PostgresCategoryRepository) List(ctx context.Context, userID string) ([]model.Category, error) {
	query := `SELECT` + categoryColumns + `
		FROM categories c
		WHERE c.user_id = $1
		ORDER BY c.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, category model.Category) (model.Category, error) {
	query := `
		UPDATE categories AS c
		SET name = $1, description = $2, color = $3, updated_at = now()
		WHERE c.id = $4 AND c.user_id = $5
		RETURNING` + categoryColumns

	row := r.db.QueryRowContext(ctx, query,
		category.Name, nullString(category.Description), nullString(category.Color),
		category.ID, category.UserID,
	)
	return scanCategory(row)
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, userID, categoryID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return rowsAffected(result)
}

func scanCategory(row scannable) (model.Category, error) {
	var (
		c                  model.Category
		description, color sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &description, &color,
		&c.TodoCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to scan category: %w", err)
	}
	c.Description = stringPtr(description)
	c.Color = stringPtr(color)
	return c, nil
}

var _ CategoryRepository = (*PostgresCategoryRepository)(nil)
