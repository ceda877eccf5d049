package query

import "github.com/jaekwang-park/todo-dashboard/internal/model"

// RankByUrgency returns the incomplete todos, soonest due date first and
// undated last. Todos sharing a due date keep a highest-priority-first order
// because the due-date sort is stable over the priority sort.
func RankByUrgency(todos []model.Todo) []model.Todo {
	completed := false
	open := ApplyFilter(todos, Filter{Completed: &completed})
	byPriority := ApplySort(open, SortByPriority, SortDesc)
	return ApplySort(byPriority, SortByDueDate, SortAsc)
}
