package handler

import (
	"fmt"
	"net/http"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/query"
	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ServeHTTP routes /api/v1/todos, /api/v1/todos/{urgent,metrics} and
// /api/v1/todos/{id}[/status].
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	seg, sub := splitResourcePath(r.URL.Path, "/api/v1/todos")

	switch {
	case seg == "":
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			methodNotAllowed(w)
		}
		return
	case (seg == "urgent" || seg == "metrics") && sub == "":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		if seg == "urgent" {
			h.handleUrgent(w, r)
		} else {
			h.handleMetrics(w, r)
		}
		return
	}

	todoID, ok := canonicalID(seg)
	if !ok {
		notFound(w)
		return
	}

	switch sub {
	case "status":
		if r.Method != http.MethodPatch {
			methodNotAllowed(w)
			return
		}
		h.handleUpdateStatus(w, r, todoID)
	case "":
		switch r.Method {
		case http.MethodGet:
			h.handleGetByID(w, r, todoID)
		case http.MethodPut, http.MethodPatch:
			h.handleUpdate(w, r, todoID)
		case http.MethodDelete:
			h.handleDelete(w, r, todoID)
		default:
			methodNotAllowed(w)
		}
	default:
		notFound(w)
	}
}

type listTodosResponse struct {
	Todos []model.Todo `json:"todos"`
	Count int          `json:"count"`
}

func writeTodos(w http.ResponseWriter, todos []model.Todo) {
	if todos == nil {
		todos = []model.Todo{}
	}
	WriteJSON(w, http.StatusOK, listTodosResponse{Todos: todos, Count: len(todos)})
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r.URL.Query())
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	todos, err := h.svc.List(r.Context(), getUserID(r), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeTodos(w, todos)
}

func (h *TodoHandler) handleUrgent(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.Urgent(r.Context(), getUserID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeTodos(w, todos)
}

func (h *TodoHandler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.Metrics(r.Context(), getUserID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if points == nil {
		points = []query.ChartPoint{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{"metrics": points})
}

type createTodoRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Priority    *int     `json:"priority"`
	DueDate     *string  `json:"due_date"`
	CategoryID  *string  `json:"category_id"`
	GroupID     *string  `json:"group_id"`
	TagIDs      []string `json:"tag_ids"`
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := normalizeRefs(&req.CategoryID, &req.GroupID, req.TagIDs); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	todo, err := h.svc.Create(r.Context(), getUserID(r), service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
		GroupID:     req.GroupID,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) handleGetByID(w http.ResponseWriter, r *http.Request, todoID string) {
	todo, err := h.svc.GetByID(r.Context(), getUserID(r), todoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

// updateTodoRequest distinguishes omitted fields from explicit nulls for
// everything that can be cleared.
type updateTodoRequest struct {
	Title       *string                    `json:"title"`
	Description service.Optional[string]   `json:"description"`
	Priority    *int                       `json:"priority"`
	Completed   *bool                      `json:"completed"`
	DueDate     service.Optional[string]   `json:"due_date"`
	CategoryID  service.Optional[string]   `json:"category_id"`
	GroupID     service.Optional[string]   `json:"group_id"`
	TagIDs      service.Optional[[]string] `json:"tag_ids"`
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, todoID string) {
	var req updateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var tagIDs []string
	if req.TagIDs.Value != nil {
		tagIDs = *req.TagIDs.Value
	}
	if err := normalizeRefs(&req.CategoryID.Value, &req.GroupID.Value, tagIDs); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	todo, err := h.svc.Update(r.Context(), getUserID(r), todoID, service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
		GroupID:     req.GroupID,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request, todoID string) {
	if err := h.svc.Delete(r.Context(), getUserID(r), todoID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Completed *bool `json:"completed"`
}

func (h *TodoHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request, todoID string) {
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Completed == nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "completed is required")
		return
	}

	todo, err := h.svc.UpdateStatus(r.Context(), getUserID(r), todoID, *req.Completed)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

// normalizeRefs rewrites referenced ids to canonical UUID form in place and
// rejects anything that is not a UUID.
func normalizeRefs(categoryID, groupID **string, tagIDs []string) error {
	refs := []struct {
		name string
		ptr  **string
	}{{"category_id", categoryID}, {"group_id", groupID}}
	for _, ref := range refs {
		if *ref.ptr == nil {
			continue
		}
		id, ok := canonicalID(**ref.ptr)
		if !ok {
			return fmt.Errorf("%s must be a UUID", ref.name)
		}
		*ref.ptr = &id
	}
	for i, raw := range tagIDs {
		id, ok := canonicalID(raw)
		if !ok {
			return fmt.Errorf("tag_ids must contain UUIDs")
		}
		tagIDs[i] = id
	}
	return nil
}
