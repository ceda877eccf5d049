package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/query"
)

func mixedTodos() []model.Todo {
	return []model.Todo{
		{ID: "1", Priority: 2, Completed: false, CategoryID: strPtr("work"), DueDate: dayPtr("2024-03-01")},
		{ID: "2", Priority: 2, Completed: true, GroupID: strPtr("home")},
		{ID: "3", Priority: 1, Completed: false, CategoryID: strPtr("home"), DueDate: dayPtr("2024-03-10")},
		{ID: "4", Priority: 2, Completed: false, GroupID: strPtr("home")},
		{ID: "5", Priority: 4, Completed: false},
	}
}

func TestApplyFilter_CompletedAndPriority(t *testing.T) {
	got := query.ApplyFilter(mixedTodos(), query.Filter{
		Completed: boolPtr(false),
		Priority:  intPtr(2),
	})

	assert.Equal(t, []string{"1", "4"}, ids(got))
}

func TestApplyFilter_EmptyFilterIsIdentity(t *testing.T) {
	todos := mixedTodos()

	got := query.ApplyFilter(todos, query.Filter{})

	require.Len(t, got, len(todos))
	assert.Equal(t, ids(todos), ids(got))
	assert.True(t, query.Filter{}.IsEmpty())
}

func TestApplyFilter_Idempotent(t *testing.T) {
	filters := []query.Filter{
		{Priority: intPtr(2)},
		{Completed: boolPtr(false), CategoryID: noRef()},
		{DueDate: dayPtr("2024-03-05")},
		{GroupID: ref("home"), Completed: boolPtr(true)},
	}

	for _, f := range filters {
		once := query.ApplyFilter(mixedTodos(), f)
		twice := query.ApplyFilter(once, f)
		assert.Equal(t, ids(once), ids(twice), "fields %v", f.Fields())
	}
}

func TestApplyFilter_DoesNotMutateInput(t *testing.T) {
	todos := mixedTodos()
	before := ids(todos)

	_ = query.ApplyFilter(todos, query.Filter{Priority: intPtr(1)})

	assert.Equal(t, before, ids(todos))
}

func TestApplyFilter_References(t *testing.T) {
	tests := []struct {
		name   string
		filter query.Filter
		want   []string
	}{
		{"category by id", query.Filter{CategoryID: ref("work")}, []string{"1"}},
		{"category unassigned", query.Filter{CategoryID: noRef()}, []string{"2", "4", "5"}},
		{"group by id", query.Filter{GroupID: ref("home")}, []string{"2", "4"}},
		{"group unassigned", query.Filter{GroupID: noRef()}, []string{"1", "3", "5"}},
		{"unknown category", query.Filter{CategoryID: ref("nope")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ApplyFilter(mixedTodos(), tt.filter)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

// The due date filter acts as an upper bound: it keeps todos due on or
// before the given date and drops undated todos.
func TestApplyFilter_DueDateIsUpperBound(t *testing.T) {
	tests := []struct {
		name string
		due  string
		want []string
	}{
		{"before every deadline", "2024-02-28", []string{}},
		{"exactly the first deadline", "2024-03-01", []string{"1"}},
		{"between deadlines", "2024-03-05", []string{"1"}},
		{"after every deadline", "2024-12-31", []string{"1", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ApplyFilter(mixedTodos(), query.Filter{DueDate: dayPtr(tt.due)})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_Fields(t *testing.T) {
	f := query.Filter{DueDate: dayPtr("2024-01-01"), Priority: intPtr(3), GroupID: noRef()}

	assert.Equal(t, []string{"priority", "group_id", "due_date"}, f.Fields())
	assert.False(t, f.IsEmpty())
}
