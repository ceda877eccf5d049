package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

type PostgresTagRepository struct {
	db *sql.DB
}

func NewPostgresTag(db *sql.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

func (r *PostgresTagRepository) Create(ctx context.Context, tag model.Tag) (model.Tag, error) {
	query := `
		INSERT INTO tags (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, color, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query, tag.UserID, tag.Name, nullString(tag.Color))
	return scanTag(row)
}

func (r *PostgresTagRepository) GetByID(ctx context.Context, userID, tagID string) (model.Tag, error) {
	query := `
		SELECT id, user_id, name, color, created_at, updated_at
		FROM tags
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, tagID, userID)
	return scanTag(row)
}

func (r *PostgresTagRepository) List(ctx context.Context, userID string) ([]model.Tag, error) {
	query := `
		SELECT id, user_id, name, color, created_at, updated_at
		FROM tags
		WHERE user_id = $1
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

func (r *PostgresTagRepository) Update(ctx context.Context, tag model.Tag) (model.Tag, error) {
	query := `
		UPDATE tags
		SET name = $1, color = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, name, color, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query, tag.Name, nullString(tag.Color), tag.ID, tag.UserID)
	return scanTag(row)
}

func (r *PostgresTagRepository) Delete(ctx context.Context, userID, tagID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1 AND user_id = $2`, tagID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return rowsAffected(result)
}

func scanTag(row scannable) (model.Tag, error) {
	var (
		t     model.Tag
		color sql.NullString
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &color, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return model.Tag{}, fmt.Errorf("failed to scan tag: %w", err)
	}
	t.Color = stringPtr(color)
	return t, nil
}

var _ TagRepository = (*PostgresTagRepository)(nil)
