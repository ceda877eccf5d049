package query_test

import (
	"database/sql"
	"time"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func ref(id string) *sql.NullString {
	return &sql.NullString{String: id, Valid: true}
}

func noRef() *sql.NullString {
	return &sql.NullString{}
}

func ids(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

// scenarioTodos returns the three todos used in the ranking and metrics
// examples: A undated, B due 01-10, C completed.
func scenarioTodos() (a, b, c model.Todo) {
	a = model.Todo{ID: "A", Title: "A", CreatedAt: day("2024-01-01"), Priority: 1}
	b = model.Todo{ID: "B", Title: "B", CreatedAt: day("2024-01-01"), DueDate: dayPtr("2024-01-10"), Priority: 3}
	c = model.Todo{
		ID: "C", Title: "C", CreatedAt: day("2024-01-02"), DueDate: dayPtr("2024-01-05"),
		Priority: 4, Completed: true, CompletedAt: dayPtr("2024-01-03"),
	}
	return a, b, c
}
