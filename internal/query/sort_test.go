package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/query"
)

func sortable() []model.Todo {
	return []model.Todo{
		{ID: "a", Priority: 3, CreatedAt: day("2024-01-03"), DueDate: dayPtr("2024-02-10")},
		{ID: "b", Priority: 1, CreatedAt: day("2024-01-01")},
		{ID: "c", Priority: 4, CreatedAt: day("2024-01-02"), DueDate: dayPtr("2024-02-01")},
		{ID: "d", Priority: 2, CreatedAt: day("2024-01-04")},
	}
}

func TestApplySort(t *testing.T) {
	tests := []struct {
		name  string
		by    query.SortBy
		order query.SortOrder
		want  []string
	}{
		{"created asc", query.SortByCreatedAt, query.SortAsc, []string{"b", "c", "a", "d"}},
		{"created desc", query.SortByCreatedAt, query.SortDesc, []string{"d", "a", "c", "b"}},
		{"priority asc", query.SortByPriority, query.SortAsc, []string{"b", "d", "a", "c"}},
		{"priority desc", query.SortByPriority, query.SortDesc, []string{"c", "a", "d", "b"}},
		{"due asc keeps undated last", query.SortByDueDate, query.SortAsc, []string{"c", "a", "b", "d"}},
		{"due desc keeps undated last", query.SortByDueDate, query.SortDesc, []string{"a", "c", "b", "d"}},
		{"unknown key falls back to created asc", query.SortBy("title"), query.SortDesc, []string{"b", "c", "a", "d"}},
		{"empty key falls back to created asc", "", "", []string{"b", "c", "a", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ApplySort(sortable(), tt.by, tt.order)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplySort_StableOnEqualKeys(t *testing.T) {
	todos := []model.Todo{
		{ID: "1", Priority: 2},
		{ID: "2", Priority: 2},
		{ID: "3", Priority: 2},
		{ID: "4", Priority: 2},
	}

	for _, order := range []query.SortOrder{query.SortAsc, query.SortDesc} {
		got := query.ApplySort(todos, query.SortByPriority, order)
		assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got), "order %s", order)
	}
}

func TestApplySort_NullsNeverPrecedeValues(t *testing.T) {
	for _, by := range []query.SortBy{query.SortByCreatedAt, query.SortByDueDate, query.SortByPriority} {
		for _, order := range []query.SortOrder{query.SortAsc, query.SortDesc} {
			got := query.ApplySort(sortable(), by, order)

			seenUndated := false
			for _, todo := range got {
				if by == query.SortByDueDate && todo.DueDate == nil {
					seenUndated = true
					continue
				}
				assert.False(t, seenUndated, "%s %s: dated todo %s after an undated one", by, order, todo.ID)
			}
		}
	}
}

func TestApplySort_DoesNotReorderInput(t *testing.T) {
	todos := sortable()
	before := ids(todos)

	_ = query.ApplySort(todos, query.SortByPriority, query.SortDesc)

	assert.Equal(t, before, ids(todos))
}

func TestSortBy_IsValid(t *testing.T) {
	assert.True(t, query.SortByCreatedAt.IsValid())
	assert.True(t, query.SortByDueDate.IsValid())
	assert.True(t, query.SortByPriority.IsValid())
	assert.False(t, query.SortBy("title").IsValid())
	assert.True(t, query.SortDesc.IsValid())
	assert.False(t, query.SortOrder("up").IsValid())
}
