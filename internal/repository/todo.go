package repository

import (
	"context"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

// TodoRepository is the todo collection provider. ListAll returns every todo
// of a user ordered by creation time ascending.
type TodoRepository interface {
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)
	GetByID(ctx context.Context, userID, todoID string) (model.Todo, error)
	Update(ctx context.Context, todo model.Todo) (model.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
	ListAll(ctx context.Context, userID string) ([]model.Todo, error)
}
