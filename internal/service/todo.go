package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/query"
	"github.com/jaekwang-park/todo-dashboard/internal/repository"
)

// parseDueDate parses an RFC3339 string and rejects dates before today.
// Returns nil if input is nil.
func parseDueDate(s *string, now time.Time) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due_date format, expected RFC3339", ErrInvalidInput)
	}
	if calendarDay(t).Before(calendarDay(now)) {
		return nil, fmt.Errorf("%w: due_date must be today or later", ErrInvalidInput)
	}
	return &t, nil
}

func calendarDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func validatePriority(p int) error {
	if !model.ValidPriority(p) {
		return fmt.Errorf("%w: priority must be between %d and %d", ErrInvalidInput, model.MinPriority, model.MaxPriority)
	}
	return nil
}

// setCompleted keeps completed_at in step with the completed flag: it is
// stamped when a todo becomes completed (or is completed without a stamp)
// and cleared when it is reopened.
func setCompleted(todo *model.Todo, completed bool, now time.Time) {
	switch {
	case completed && !todo.Completed:
		todo.CompletedAt = &now
	case completed && todo.CompletedAt == nil:
		todo.CompletedAt = &now
	case !completed:
		todo.CompletedAt = nil
	}
	todo.Completed = completed
}

type CreateTodoInput struct {
	Title       string
	Description *string
	Priority    *int
	DueDate     *string // RFC3339
	CategoryID  *string
	GroupID     *string
	TagIDs      []string
}

type UpdateTodoInput struct {
	Title       *string
	Description Optional[string]
	Priority    *int
	Completed   *bool
	DueDate     Optional[string]
	CategoryID  Optional[string]
	GroupID     Optional[string]
	TagIDs      Optional[[]string]
}

// ListTodoParams is the filter and ordering requested by the caller. An
// empty SortBy means ascending creation time.
type ListTodoParams struct {
	Filter    query.Filter
	SortBy    query.SortBy
	SortOrder query.SortOrder
}

type TodoOption func(*TodoService)

func WithClock(now func() time.Time) TodoOption {
	return func(s *TodoService) { s.now = now }
}

func WithDateFormatter(f query.DateFormatter) TodoOption {
	return func(s *TodoService) { s.formatDate = f }
}

type TodoService struct {
	repo       repository.TodoRepository
	categories repository.CategoryRepository
	groups     repository.GroupRepository
	now        func() time.Time
	formatDate query.DateFormatter
}

func NewTodoService(
	repo repository.TodoRepository,
	categories repository.CategoryRepository,
	groups repository.GroupRepository,
	opts ...TodoOption,
) *TodoService {
	s := &TodoService{
		repo:       repo,
		categories: categories,
		groups:     groups,
		now:        time.Now,
		formatDate: query.LayoutFormatter(query.DefaultDateLayout),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TodoService) Create(ctx context.Context, userID string, input CreateTodoInput) (model.Todo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return model.Todo{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	priority := model.DefaultPriority
	if input.Priority != nil {
		priority = *input.Priority
	}
	if err := validatePriority(priority); err != nil {
		return model.Todo{}, err
	}

	dueDate, err := parseDueDate(input.DueDate, s.now())
	if err != nil {
		return model.Todo{}, err
	}

	if err := s.checkRefs(ctx, userID, input.CategoryID, input.GroupID); err != nil {
		return model.Todo{}, err
	}

	todo := model.Todo{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     dueDate,
		CategoryID:  input.CategoryID,
		GroupID:     input.GroupID,
		TagIDs:      input.TagIDs,
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return created, nil
}

func (s *TodoService) GetByID(ctx context.Context, userID, todoID string) (model.Todo, error) {
	todo, err := s.repo.GetByID(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, todoID string, input UpdateTodoInput) (model.Todo, error) {
	existing, err := s.repo.GetByID(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo for update: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return model.Todo{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		existing.Title = *input.Title
	}
	input.Description.apply(&existing.Description)
	if input.Priority != nil {
		if err := validatePriority(*input.Priority); err != nil {
			return model.Todo{}, err
		}
		existing.Priority = *input.Priority
	}
	if input.DueDate.Set {
		dueDate, err := parseDueDate(input.DueDate.Value, s.now())
		if err != nil {
			return model.Todo{}, err
		}
		existing.DueDate = dueDate
	}

	var categoryID, groupID *string
	if input.CategoryID.Set {
		categoryID = input.CategoryID.Value
	}
	if input.GroupID.Set {
		groupID = input.GroupID.Value
	}
	if err := s.checkRefs(ctx, userID, categoryID, groupID); err != nil {
		return model.Todo{}, err
	}
	input.CategoryID.apply(&existing.CategoryID)
	input.GroupID.apply(&existing.GroupID)

	if input.TagIDs.Set {
		existing.TagIDs = nil
		if input.TagIDs.Value != nil {
			existing.TagIDs = *input.TagIDs.Value
		}
	}
	if input.Completed != nil {
		setCompleted(&existing, *input.Completed, s.now())
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	err := s.repo.Delete(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) UpdateStatus(ctx context.Context, userID, todoID string, completed bool) (model.Todo, error) {
	existing, err := s.repo.GetByID(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo for status update: %w", err)
	}

	setCompleted(&existing, completed, s.now())

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to update todo status: %w", err)
	}

	return updated, nil
}

func (s *TodoService) List(ctx context.Context, userID string, params ListTodoParams) ([]model.Todo, error) {
	todos, err := s.all(ctx, userID)
	if err != nil {
		return nil, err
	}
	filtered := query.ApplyFilter(todos, params.Filter)
	return query.ApplySort(filtered, params.SortBy, params.SortOrder), nil
}

// Urgent returns the open todos ordered by due date, then priority.
func (s *TodoService) Urgent(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := s.all(ctx, userID)
	if err != nil {
		return nil, err
	}
	return query.RankByUrgency(todos), nil
}

// Metrics returns the daily creation/completion series with display dates.
func (s *TodoService) Metrics(ctx context.Context, userID string) ([]query.ChartPoint, error) {
	todos, err := s.all(ctx, userID)
	if err != nil {
		return nil, err
	}
	return query.FormatSeries(query.ComputeMetrics(todos), s.formatDate), nil
}

func (s *TodoService) all(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := s.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// checkRefs verifies that referenced categories and groups belong to the user.
func (s *TodoService) checkRefs(ctx context.Context, userID string, categoryID, groupID *string) error {
	if categoryID != nil {
		if _, err := s.categories.GetByID(ctx, userID, *categoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: unknown category_id", ErrInvalidInput)
			}
			return fmt.Errorf("failed to check category: %w", err)
		}
	}
	if groupID != nil {
		if _, err := s.groups.GetByID(ctx, userID, *groupID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: unknown group_id", ErrInvalidInput)
			}
			return fmt.Errorf("failed to check group: %w", err)
		}
	}
	return nil
}
