package handler

import (
	"net/http"

	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

// MeHandler serves GET /api/v1/me, the signed-in user's profile.
type MeHandler struct {
	svc *service.AuthService
}

func NewMeHandler(svc *service.AuthService) *MeHandler {
	return &MeHandler{svc: svc}
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), getUserID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, user)
}
