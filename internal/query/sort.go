package query

import (
	"cmp"
	"slices"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

type SortBy string

const (
	SortByCreatedAt SortBy = "createdAt"
	SortByDueDate   SortBy = "dueDate"
	SortByPriority  SortBy = "priority"
)

func (s SortBy) IsValid() bool {
	_, ok := comparators[s]
	return ok
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// fieldComparator compares a and b on one field. aHas and bHas report
// whether each side carries a value; c is meaningful only when both do.
type fieldComparator func(a, b model.Todo) (c int, aHas, bHas bool)

var comparators = map[SortBy]fieldComparator{
	SortByCreatedAt: func(a, b model.Todo) (int, bool, bool) {
		return a.CreatedAt.Compare(b.CreatedAt), !a.CreatedAt.IsZero(), !b.CreatedAt.IsZero()
	},
	SortByDueDate: func(a, b model.Todo) (int, bool, bool) {
		if a.DueDate == nil || b.DueDate == nil {
			return 0, a.DueDate != nil, b.DueDate != nil
		}
		return a.DueDate.Compare(*b.DueDate), true, true
	},
	SortByPriority: func(a, b model.Todo) (int, bool, bool) {
		return cmp.Compare(a.Priority, b.Priority), true, true
	},
}

// ApplySort returns a stably sorted copy of todos. Todos without a value for
// the sort field always come last, whatever the order. An unknown sort field
// falls back to ascending creation time.
func ApplySort(todos []model.Todo, by SortBy, order SortOrder) []model.Todo {
	compare, ok := comparators[by]
	if !ok {
		compare = comparators[SortByCreatedAt]
		order = SortAsc
	}

	sorted := slices.Clone(todos)
	slices.SortStableFunc(sorted, func(a, b model.Todo) int {
		c, aHas, bHas := compare(a, b)
		switch {
		case aHas && bHas:
			if order == SortDesc {
				return -c
			}
			return c
		case aHas:
			return -1
		case bHas:
			return 1
		default:
			return 0
		}
	})
	return sorted
}
