package repository

import (
	"context"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category model.Category) (model.Category, error)
	GetByID(ctx context.Context, userID, categoryID string) (model.Category, error)
	List(ctx context.Context, userID string) ([]model.Category, error)
	Update(ctx context.Context, category model.Category) (model.Category, error)
	Delete(ctx context.Context, userID, categoryID string) error
}

// GroupRepository lists groups ordered by name.
type GroupRepository interface {
	Create(ctx context.Context, group model.Group) (model.Group, error)
	GetByID(ctx context.Context, userID, groupID string) (model.Group, error)
	List(ctx context.Context, userID string) ([]model.Group, error)
	Update(ctx context.Context, group model.Group) (model.Group, error)
	Delete(ctx context.Context, userID, groupID string) error
}

type TagRepository interface {
	Create(ctx context.Context, tag model.Tag) (model.Tag, error)
	GetByID(ctx context.Context, userID, tagID string) (model.Tag, error)
	List(ctx context.Context, userID string) ([]model.Tag, error)
	Update(ctx context.Context, tag model.Tag) (model.Tag, error)
	Delete(ctx context.Context, userID, tagID string) error
}
