package handler

import (
	"net/http"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

type labelRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (req labelRequest) input() service.LabelInput {
	return service.LabelInput{Name: req.Name, Description: req.Description, Color: req.Color}
}

type updateLabelRequest struct {
	Name        *string                  `json:"name"`
	Description service.Optional[string] `json:"description"`
	Color       service.Optional[string] `json:"color"`
}

func (req updateLabelRequest) input() service.UpdateLabelInput {
	return service.UpdateLabelInput{Name: req.Name, Description: req.Description, Color: req.Color}
}

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// ServeHTTP routes /api/v1/categories and /api/v1/categories/{id}
func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	seg, sub := splitResourcePath(r.URL.Path, "/api/v1/categories")

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

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context(), getUserID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}

	WriteJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.svc.Create(r.Context(), getUserID(r), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	category, err := h.svc.GetByID(r.Context(), getUserID(r), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req updateLabelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.svc.Update(r.Context(), getUserID(r), id, req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.svc.Delete(r.Context(), getUserID(r), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
