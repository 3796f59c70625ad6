package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhasan/show-catalog/internal/auth"
	"github.com/mhasan/show-catalog/internal/handler"
	"github.com/mhasan/show-catalog/internal/service"
)

func newAuthHandler(t *testing.T) *handler.AuthHandler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	creds, err := auth.NewStaticCredentials("admin@example.com", "admin123", 1)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	require.NoError(t, err)

	return handler.NewAuthHandler(service.NewAuthService(creds, tokens, logger), logger)
}

func postLogin(t *testing.T, h *handler.AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.HandleLogin(rr, req)
	return rr
}

func TestHandleLogin(t *testing.T) {
	h := newAuthHandler(t)

	rr := postLogin(t, h, `{"email":"admin@example.com","password":"admin123"}`)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.NotEmpty(t, body.Token)
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	h := newAuthHandler(t)

	rr := postLogin(t, h, `{"email":"admin@example.com","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, rr.Body.String())
}

func TestHandleLogin_MalformedEmail(t *testing.T) {
	h := newAuthHandler(t)

	rr := postLogin(t, h, `{"email":"not-an-email","password":"admin123"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please enter a valid email")
}

func TestHandleLogin_MissingPassword(t *testing.T) {
	h := newAuthHandler(t)

	rr := postLogin(t, h, `{"email":"admin@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Password is required")
}

func TestHandleLogin_InvalidJSON(t *testing.T) {
	h := newAuthHandler(t)

	rr := postLogin(t, h, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid JSON body")
}

func TestHandleLogout(t *testing.T) {
	h := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rr := httptest.NewRecorder()
	h.HandleLogout(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, rr.Body.String())
}
