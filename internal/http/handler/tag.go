package handler

import (
	"net/http"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

type TagHandler struct {
	svc *service.TagService
}

func NewTagHandler(svc *service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

type tagRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type updateTagRequest struct {
	Name  *string                  `json:"name"`
	Color service.Optional[string] `json:"color"`
}

// ServeHTTP routes /api/v1/tags and /api/v1/tags/{id}
func (h *TagHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	seg, sub := splitResourcePath(r.URL.Path, "/api/v1/tags")

	if seg == "" {
		switch r.Method {
		case http.MethodGet:
			tags, err := h.svc.List(r.Context(), getUserID(r))
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			if tags == nil {
				tags = []model.Tag{}
			}
			WriteJSON(w, http.StatusOK, map[string]any{"tags": tags})
		case http.MethodPost:
			var req tagRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			tag, err := h.svc.Create(r.Context(), getUserID(r), service.TagInput{Name: req.Name, Color: req.Color})
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			WriteJSON(w, http.StatusCreated, tag)
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
		tag, err := h.svc.GetByID(r.Context(), getUserID(r), id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, tag)
	case http.MethodPut, http.MethodPatch:
		var req updateTagRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		tag, err := h.svc.Update(r.Context(), getUserID(r), id, service.UpdateTagInput{Name: req.Name, Color: req.Color})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, tag)
	case http.MethodDelete:
		if err := h.svc.Delete(r.Context(), getUserID(r), id); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
