package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

const selectTodo = `
	SELECT t.id, t.user_id, t.title, t.description, t.priority, t.completed, t.completed_at,
	       t.due_date, t.category_id, c.name, c.color, t.group_id, g.name,
	       ARRAY(SELECT tt.tag_id::text FROM todo_tags tt WHERE tt.todo_id = t.id ORDER BY tt.tag_id),
	       t.created_at, t.updated_at
	FROM todos t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN todo_groups g ON g.id = t.group_id`

type PostgresTodoRepository struct {
	db *sql.DB
}

func NewPostgresTodo(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{db: db}
}

func (r *PostgresTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO todos (user_id, title, description, priority, completed, completed_at, due_date, category_id, group_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id string
	err = tx.QueryRowContext(ctx, query,
		todo.UserID, todo.Title, nullString(todo.Description), todo.Priority, todo.Completed,
		todo.CompletedAt, todo.DueDate, nullString(todo.CategoryID), nullString(todo.GroupID),
	).Scan(&id)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to insert todo: %w", err)
	}

	if err := replaceTags(ctx, tx, todo.UserID, id, todo.TagIDs); err != nil {
		return model.Todo{}, err
	}

	created, err := getTodo(ctx, tx, todo.UserID, id)
	if err != nil {
		return model.Todo{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Todo{}, fmt.Errorf("failed to commit todo: %w", err)
	}
	return created, nil
}

func (r *PostgresTodoRepository) GetByID(ctx context.Context, userID, todoID string) (model.Todo, error) {
	return getTodo(ctx, r.db, userID, todoID)
}

func (r *PostgresTodoRepository) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE todos
		SET title = $1, description = $2, priority = $3, completed = $4, completed_at = $5,
		    due_date = $6, category_id = $7, group_id = $8, updated_at = now()
		WHERE id = $9 AND user_id = $10`

	result, err := tx.ExecContext(ctx, query,
		todo.Title, nullString(todo.Description), todo.Priority, todo.Completed, todo.CompletedAt,
		todo.DueDate, nullString(todo.CategoryID), nullString(todo.GroupID), todo.ID, todo.UserID,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}
	if err := rowsAffected(result); err != nil {
		return model.Todo{}, err
	}

	if err := replaceTags(ctx, tx, todo.UserID, todo.ID, todo.TagIDs); err != nil {
		return model.Todo{}, err
	}

	updated, err := getTodo(ctx, tx, todo.UserID, todo.ID)
	if err != nil {
		return model.Todo{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Todo{}, fmt.Errorf("failed to commit todo: %w", err)
	}
	return updated, nil
}

func (r *PostgresTodoRepository) Delete(ctx context.Context, userID, todoID string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return rowsAffected(result)
}

func (r *PostgresTodoRepository) ListAll(ctx context.Context, userID string) ([]model.Todo, error) {
	query := selectTodo + `
		WHERE t.user_id = $1
		ORDER BY t.created_at ASC, t.id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

func getTodo(ctx context.Context, q queryRower, userID, todoID string) (model.Todo, error) {
	row := q.QueryRowContext(ctx, selectTodo+` WHERE t.id = $1 AND t.user_id = $2`, todoID, userID)
	return scanTodo(row)
}

// replaceTags rewrites the tag set of a todo. Tags owned by other users are
// silently skipped.
func replaceTags(ctx context.Context, tx *sql.Tx, userID, todoID string, tagIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM todo_tags WHERE todo_id = $1`, todoID); err != nil {
		return fmt.Errorf("failed to clear todo tags: %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO todo_tags (todo_id, tag_id)
		SELECT $1::uuid, id FROM tags WHERE user_id = $2 AND id::text = ANY($3)
		ON CONFLICT DO NOTHING`

	if _, err := tx.ExecContext(ctx, query, todoID, userID, pq.Array(tagIDs)); err != nil {
		return fmt.Errorf("failed to set todo tags: %w", err)
	}
	return nil
}

func scanTodo(row scannable) (model.Todo, error) {
	var (
		t                               model.Todo
		description                     sql.NullString
		completedAt, dueDate            sql.NullTime
		categoryID, categoryName, color sql.NullString
		groupID, groupName              sql.NullString
		tagIDs                          pq.StringArray
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &description, &t.Priority, &t.Completed, &completedAt,
		&dueDate, &categoryID, &categoryName, &color, &groupID, &groupName,
		&tagIDs, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to scan todo: %w", err)
	}

	t.Description = stringPtr(description)
	t.CompletedAt = timePtr(completedAt)
	t.DueDate = timePtr(dueDate)
	t.CategoryID = stringPtr(categoryID)
	if categoryID.Valid {
		t.Category = &model.CategoryRef{ID: categoryID.String, Name: categoryName.String, Color: stringPtr(color)}
	}
	t.GroupID = stringPtr(groupID)
	if groupID.Valid {
		t.Group = &model.GroupRef{ID: groupID.String, Name: groupName.String}
	}
	t.TagIDs = []string(tagIDs)
	if t.TagIDs == nil {
		t.TagIDs = []string{}
	}
	return t, nil
}

// ensure compile-time interface compliance
var _ TodoRepository = (*PostgresTodoRepository)(nil)
