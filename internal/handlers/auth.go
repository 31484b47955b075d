package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"imovia/internal/middleware"
	"imovia/internal/session"
	"imovia/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		sessions:  sessions,
		userStore: userStore,
	}
}

// loginRequest is the login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionView is the session data exposed to the frontend.
type sessionView struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// Login handles POST /api/auth/login.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	user, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "erro interno")
		return
	}

	// Same response for unknown email and wrong password.
	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		writeMessage(w, http.StatusUnauthorized, "e-mail ou senha inválidos")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "erro interno")
		return
	}

	writeJSON(w, http.StatusOK, itemEnvelope{
		Data: sessionView{
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        string(user.Role),
		},
		Message: "autenticado",
	})
}

// Logout handles POST /api/auth/logout.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	writeMessage(w, http.StatusOK, "sessão encerrada")
}

// Me handles GET /api/auth/me. It reports the authenticated identity, or
// 401 when there is no session.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeMessage(w, http.StatusUnauthorized, "não autenticado")
		return
	}

	writeJSON(w, http.StatusOK, itemEnvelope{
		Data: sessionView{
			Email:       sess.Email,
			DisplayName: sess.DisplayName,
			Role:        sess.Role,
		},
	})
}
