package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mhasan/show-catalog/internal/apperror"
	"github.com/mhasan/show-catalog/internal/service"
)

// AuthHandler exposes login and logout.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// loginRequest is the JSON body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the successful login body.
type tokenResponse struct {
	Token string `json:"token"`
}

// HandleLogin verifies credentials and returns a session token.
//
// HTTP: POST /auth/login {"email":..., "password":...}
// 200 {"token":...} | 400 {"errors":[...]} | 401 {"error":...}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.Validation(apperror.FieldError{
			Field: "body", Message: "Invalid JSON body",
		}))
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// HandleLogout acknowledges a logout.
//
// HTTP: POST /auth/logout
//
// Sessions are stateless tokens, so there is nothing to revoke server-side;
// the client drops its copy and the token expires on its own. POST (not GET)
// because clients treat it as a state-changing action.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout()
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}
