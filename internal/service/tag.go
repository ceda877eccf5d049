package service

import (
	"context"
	"fmt"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/repository"
)

type TagInput struct {
	Name  string
	Color *string
}

type UpdateTagInput struct {
	Name  *string
	Color Optional[string]
}

type TagService struct {
	repo repository.TagRepository
}

func NewTagService(repo repository.TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) Create(ctx context.Context, userID string, input TagInput) (model.Tag, error) {
	if err := validateName(input.Name); err != nil {
		return model.Tag{}, err
	}

	created, err := s.repo.Create(ctx, model.Tag{UserID: userID, Name: input.Name, Color: input.Color})
	if err != nil {
		return model.Tag{}, fmt.Errorf("failed to create tag: %w", err)
	}
	return created, nil
}

func (s *TagService) GetByID(ctx context.Context, userID, tagID string) (model.Tag, error) {
	tag, err := s.repo.GetByID(ctx, userID, tagID)
	if err != nil {
		return model.Tag{}, notFoundOr(err, "get tag")
	}
	return tag, nil
}

func (s *TagService) List(ctx context.Context, userID string) ([]model.Tag, error) {
	tags, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (s *TagService) Update(ctx context.Context, userID, tagID string, input UpdateTagInput) (model.Tag, error) {
	existing, err := s.repo.GetByID(ctx, userID, tagID)
	if err != nil {
		return model.Tag{}, notFoundOr(err, "get tag for update")
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return model.Tag{}, err
		}
		existing.Name = *input.Name
	}
	input.Color.apply(&existing.Color)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Tag{}, notFoundOr(err, "update tag")
	}
	return updated, nil
}

func (s *TagService) Delete(ctx context.Context, userID, tagID string) error {
	if err := s.repo.Delete(ctx, userID, tagID); err != nil {
		return notFoundOr(err, "delete tag")
	}
	return nil
}
