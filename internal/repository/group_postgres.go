package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

const groupColumns = `
	g.id, g.user_id, g.name, g.description, g.color,
	(SELECT count(*) FROM todos t WHERE t.group_id = g.id),
	g.created_at, g.updated_at`

type PostgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroup(db *sql.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

func (r *PostgresGroupRepository) Create(ctx context.Context, group model.Group) (model.Group, error) {
	query := `
		INSERT INTO todo_groups AS g (user_id, name, description, color)
		VALUES ($1, $2, $3, $4)
		RETURNING` + groupColumns

	row := r.db.QueryRowContext(ctx, query,
		group.UserID, group.Name, nullString(group.Description), nullString(group.Color),
	)
	return scanGroup(row)
}

func (r *PostgresGroupRepository) GetByID(ctx context.Context, userID, groupID string) (model.Group, error) {
	query := `SELECT` + groupColumns + `
		FROM todo_groups g
		WHERE g.id = $1 AND g.user_id = $2`

	row := r.db.QueryRowContext(ctx, query, groupID, userID)
	return scanGroup(row)
}

func (r *PostgresGroupRepository) List(ctx context.Context, userID string) ([]model.Group, error) {
	query := `SELECT` + groupColumns + `
		FROM todo_groups g
		WHERE g.user_id = $1
		ORDER BY g.name ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := []model.Group{}
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

func (r *PostgresGroupRepository) Update(ctx context.Context, group model.Group) (model.Group, error) {
	query := `
		UPDATE todo_groups AS g
		SET name = $1, description = $2, color = $3, updated_at = now()
		WHERE g.id = $4 AND g.user_id = $5
		RETURNING` + groupColumns

	row := r.db.QueryRowContext(ctx, query,
		group.Name, nullString(group.Description), nullString(group.Color),
		group.ID, group.UserID,
	)
	return scanGroup(row)
}

func (r *PostgresGroupRepository) Delete(ctx context.Context, userID, groupID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todo_groups WHERE id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return rowsAffected(result)
}

func scanGroup(row scannable) (model.Group, error) {
	var (
		g                  model.Group
		description, color sql.NullString
	)
	err := row.Scan(
		&g.ID, &g.UserID, &g.Name, &description, &color,
		&g.TodoCount, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return model.Group{}, fmt.Errorf("failed to scan group: %w", err)
	}
	g.Description = stringPtr(description)
	g.Color = stringPtr(color)
	return g, nil
}

var _ GroupRepository = (*PostgresGroupRepository)(nil)
