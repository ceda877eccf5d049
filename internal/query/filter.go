package query

import (
	"database/sql"
	"time"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

// Filter narrows a todo collection. A nil field imposes no constraint.
//
// CategoryID and GroupID are nullable on purpose: a non-Valid value selects
// todos that have no category (or group) at all.
type Filter struct {
	Priority   *int
	CategoryID *sql.NullString
	GroupID    *sql.NullString
	Completed  *bool
	// DueDate is an upper bound: a todo is kept only if it has a due date
	// that is not after this instant. Undated todos never match.
	DueDate *time.Time
}

type fieldMatcher struct {
	name   string
	active func(f Filter) bool
	match  func(f Filter, t model.Todo) bool
}

var fieldMatchers = []fieldMatcher{
	{
		name:   "priority",
		active: func(f Filter) bool { return f.Priority != nil },
		match:  func(f Filter, t model.Todo) bool { return t.Priority == *f.Priority },
	},
	{
		name:   "category_id",
		active: func(f Filter) bool { return f.CategoryID != nil },
		match:  func(f Filter, t model.Todo) bool { return matchRef(*f.CategoryID, t.CategoryID) },
	},
	{
		name:   "group_id",
		active: func(f Filter) bool { return f.GroupID != nil },
		match:  func(f Filter, t model.Todo) bool { return matchRef(*f.GroupID, t.GroupID) },
	},
	{
		name:   "completed",
		active: func(f Filter) bool { return f.Completed != nil },
		match:  func(f Filter, t model.Todo) bool { return t.Completed == *f.Completed },
	},
	{
		name:   "due_date",
		active: func(f Filter) bool { return f.DueDate != nil },
		match: func(f Filter, t model.Todo) bool {
			return t.DueDate != nil && !f.DueDate.Before(*t.DueDate)
		},
	},
}

func matchRef(want sql.NullString, got *string) bool {
	if !want.Valid {
		return got == nil
	}
	return got != nil && *got == want.String
}

// Fields returns the names of the constrained fields, in evaluation order.
func (f Filter) Fields() []string {
	var names []string
	for _, m := range fieldMatchers {
		if m.active(f) {
			names = append(names, m.name)
		}
	}
	return names
}

func (f Filter) IsEmpty() bool {
	return len(f.Fields()) == 0
}

// ApplyFilter returns the todos satisfying every constrained field of f, in
// input order. With an empty filter the input slice itself is returned.
func ApplyFilter(todos []model.Todo, f Filter) []model.Todo {
	var active []fieldMatcher
	for _, m := range fieldMatchers {
		if m.active(f) {
			active = append(active, m)
		}
	}
	if len(active) == 0 {
		return todos
	}

	result := make([]model.Todo, 0, len(todos))
todos:
	for _, t := range todos {
		for _, m := range active {
			if !m.match(f, t) {
				continue todos
			}
		}
		result = append(result, t)
	}
	return result
}
