package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jaekwang-park/todo-dashboard/internal/cognito"
	"github.com/jaekwang-park/todo-dashboard/internal/middleware"
	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

const maxBodySize = 1 << 20 // 1 MB

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

func notFound(w http.ResponseWriter) {
	WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// decodeJSON reads a size-limited JSON body into dst. On failure it has
// already written the 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return false
	}
	return true
}

// splitResourcePath splits "/prefix/{id}/{sub}" into id and sub.
func splitResourcePath(p, prefix string) (id, sub string) {
	rest := strings.Trim(strings.TrimPrefix(p, prefix), "/")
	id, sub, _ = strings.Cut(rest, "/")
	return id, sub
}

// canonicalID returns the lowercase hyphenated form of a UUID path or body
// id. Anything else is reported as not ok.
func canonicalID(raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil || len(raw) != 36 {
		return "", false
	}
	return id.String(), true
}

func getUserID(r *http.Request) string {
	return middleware.GetUserID(r)
}

// writeServiceError maps service and identity provider errors to responses.
// Internal errors are logged and replaced with a fixed message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if info, ok := cognito.LookupError(err); ok {
		slog.WarnContext(r.Context(), "identity provider rejected request",
			"code", info.Code, "error", err, "request_id", middleware.RequestIDFrom(r.Context()))
		WriteError(w, info.Status, info.Code, info.Message)
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		notFound(w)
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "FORBIDDEN", "access denied")
	default:
		slog.ErrorContext(r.Context(), "request failed", "error", err, "request_id", middleware.RequestIDFrom(r.Context()))
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
