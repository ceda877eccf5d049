package handler

import (
	"net/http"
	"strings"

	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// ServeHTTP routes POST /api/v1/auth/{action}.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/auth"), "/")

	handlers := map[string]http.HandlerFunc{
		"signup":         h.handleSignUp,
		"confirm-signup": h.handleConfirmSignUp,
		"resend-code":    h.handleResendCode,
		"signin":         h.handleSignIn,
		"refresh":        h.handleRefresh,
		"signout":        h.handleSignOut,
	}
	handle, ok := handlers[action]
	if !ok {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "endpoint not found")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	handle(w, r)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type confirmSignUpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendCodeRequest struct {
	Email string `json:"email"`
}

type refreshRequest struct {
	Email        string `json:"email"`
	RefreshToken string `json:"refresh_token"`
}

type signOutRequest struct {
	AccessToken string `json:"access_token"`
}

func message(text string) map[string]string {
	return map[string]string{"message": text}
}

func (h *AuthHandler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.svc.SignUp(r.Context(), service.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, out)
}

func (h *AuthHandler) handleConfirmSignUp(w http.ResponseWriter, r *http.Request) {
	var req confirmSignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.ConfirmSignUp(r.Context(), service.ConfirmSignUpInput{Email: req.Email, Code: req.Code}); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, message("email confirmed"))
}

func (h *AuthHandler) handleResendCode(w http.ResponseWriter, r *http.Request) {
	var req resendCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.svc.ResendCode(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, message("confirmation code resent"))
}

func (h *AuthHandler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.svc.SignIn(r.Context(), service.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.svc.Refresh(r.Context(), service.RefreshInput{Email: req.Email, RefreshToken: req.RefreshToken})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, session)
}

// handleSignOut revokes every token of the session. The access token may
// come from the body or the Authorization header.
func (h *AuthHandler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	var req signOutRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	token := req.AccessToken
	if token == "" {
		if scheme, rest, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && strings.EqualFold(scheme, "Bearer") {
			token = strings.TrimSpace(rest)
		}
	}

	if err := h.svc.SignOut(r.Context(), token); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, message("signed out"))
}
