package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/repository"
)

// LabelInput creates a category or a group.
type LabelInput struct {
	Name        string
	Description *string
	Color       *string
}

// UpdateLabelInput edits a category or a group.
type UpdateLabelInput struct {
	Name        *string
	Description Optional[string]
	Color       Optional[string]
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}

func notFoundOr(err error, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, userID string, input LabelInput) (model.Category, error) {
	if err := validateName(input.Name); err != nil {
		return model.Category{}, err
	}

	created, err := s.repo.Create(ctx, model.Category{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

func (s *CategoryService) GetByID(ctx context.Context, userID, categoryID string) (model.Category, error) {
	category, err := s.repo.GetByID(ctx, userID, categoryID)
	if err != nil {
		return model.Category{}, notFoundOr(err, "get category")
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	categories, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID string, input UpdateLabelInput) (model.Category, error) {
	existing, err := s.repo.GetByID(ctx, userID, categoryID)
	if err != nil {
		return model.Category{}, notFoundOr(err, "get category for update")
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return model.Category{}, err
		}
		existing.Name = *input.Name
	}
	input.Description.apply(&existing.Description)
	input.Color.apply(&existing.Color)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Category{}, notFoundOr(err, "update category")
	}
	return updated, nil
}

// Delete removes a category. Its todos stay, with the category cleared.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID string) error {
	if err := s.repo.Delete(ctx, userID, categoryID); err != nil {
		return notFoundOr(err, "delete category")
	}
	return nil
}
