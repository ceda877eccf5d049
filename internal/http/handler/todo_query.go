package handler

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/query"
	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

// parseListParams reads the dashboard's filter and sort state from the
// query string. Absent parameters impose no constraint. An unknown sort_by
// falls through to the default ordering; an unknown sort_order is an error.
func parseListParams(q url.Values) (service.ListTodoParams, error) {
	var params service.ListTodoParams

	if v := q.Get("priority"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || !model.ValidPriority(p) {
			return params, fmt.Errorf("priority must be an integer between %d and %d", model.MinPriority, model.MaxPriority)
		}
		params.Filter.Priority = &p
	}

	var err error
	if params.Filter.CategoryID, err = parseRefParam(q, "category_id"); err != nil {
		return params, err
	}
	if params.Filter.GroupID, err = parseRefParam(q, "group_id"); err != nil {
		return params, err
	}

	if v := q.Get("completed"); v != "" {
		c, err := strconv.ParseBool(v)
		if err != nil {
			return params, fmt.Errorf("completed must be true or false")
		}
		params.Filter.Completed = &c
	}

	if v := q.Get("due_date"); v != "" {
		d, err := parseDueDateParam(v)
		if err != nil {
			return params, err
		}
		params.Filter.DueDate = &d
	}

	params.SortBy = query.SortBy(q.Get("sort_by"))
	params.SortOrder = query.SortOrder(q.Get("sort_order"))
	if params.SortOrder != "" && !params.SortOrder.IsValid() {
		return params, fmt.Errorf("sort_order must be asc or desc")
	}

	return params, nil
}

// parseRefParam accepts a UUID, or the literal "null" for todos without a
// reference.
func parseRefParam(q url.Values, name string) (*sql.NullString, error) {
	v := q.Get(name)
	switch v {
	case "":
		return nil, nil
	case "null":
		return &sql.NullString{}, nil
	}
	id, ok := canonicalID(v)
	if !ok {
		return nil, fmt.Errorf("%s must be a UUID or null", name)
	}
	return &sql.NullString{String: id, Valid: true}, nil
}

// parseDueDateParam takes an RFC3339 instant or a bare date. A bare date
// covers the whole UTC day.
func parseDueDateParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	d, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("due_date must be RFC3339 or YYYY-MM-DD")
	}
	return d.Add(24*time.Hour - time.Nanosecond), nil
}
