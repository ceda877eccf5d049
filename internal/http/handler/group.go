package handler

import (
	"net/http"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

type GroupHandler struct {
	svc *service.GroupService
}

func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

func (h *GroupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	seg, sub := splitResourcePath(r.URL.Path, "/api/v1/groups")

	if seg == "" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			methodNotAllowed(w)
		}
		return
	}

	id, ok := canonicalID(seg)
	if !ok || sub != "" {
		notFound(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (h *GroupHandler) handleList(w http.ResponseWriter, r *http.Request) {
	// Ordered by name.
	groups, err := h.svc.List(r.Context(), getUserID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if groups == nil {
		groups = []model.Group{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *GroupHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := h.svc.Create(r.Context(), getUserID(r), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	group, err := h.svc.GetByID(r.Context(), getUserID(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req updateLabelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	group, err := h.svc.Update(r.Context(), getUserID(r), id, req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.Delete(r.Context(), getUserID(r), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
