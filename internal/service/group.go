package service

import (
	"context"
	"fmt"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/repository"
)

type GroupService struct {
	repo repository.GroupRepository
}

func NewGroupService(repo repository.GroupRepository) *GroupService {
	return &GroupService{repo: repo}
}

func (s *GroupService) Create(ctx context.Context, userID string, input LabelInput) (model.Group, error) {
	if err := validateName(input.Name); err != nil {
		return model.Group{}, err
	}

	created, err := s.repo.Create(ctx, model.Group{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
	})
	if err != nil {
		return model.Group{}, fmt.Errorf("failed to create group: %w", err)
	}
	return created, nil
}

func (s *GroupService) GetByID(ctx context.Context, userID, groupID string) (model.Group, error) {
	group, err := s.repo.GetByID(ctx, userID, groupID)
	if err != nil {
		return model.Group{}, notFoundOr(err, "get group")
	}
	return group, nil
}

// List returns the user's groups ordered by name.
func (s *GroupService) List(ctx context.Context, userID string) ([]model.Group, error) {
	groups, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) Update(ctx context.Context, userID, groupID string, input UpdateLabelInput) (model.Group, error) {
	existing, err := s.repo.GetByID(ctx, userID, groupID)
	if err != nil {
		return model.Group{}, notFoundOr(err, "get group for update")
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return model.Group{}, err
		}
		existing.Name = *input.Name
	}
	input.Description.apply(&existing.Description)
	input.Color.apply(&existing.Color)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Group{}, notFoundOr(err, "update group")
	}
	return updated, nil
}

func (s *GroupService) Delete(ctx context.Context, userID, groupID string) error {
	if err := s.repo.Delete(ctx, userID, groupID); err != nil {
		return notFoundOr(err, "delete group")
	}
	return nil
}
