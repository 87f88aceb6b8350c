package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (chi.Router, *Service) {
	t.Helper()
	svc := newTestService(t, newMockRepo())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, svc)
	gate := NewMiddleware(logger, svc)

	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		handler.MountRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAuth)
			handler.MountProtectedRoutes(r)
		})
	})
	return r, svc
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestHandlerRegisterLoginMe(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := postJSON(t, router, "/api/auth/register", `{"email":"a@x.com","name":"Ann","password":"pw123"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var registered struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.Token)

	res = postJSON(t, router, "/api/auth/login", `{"email":"a@x.com","password":"pw123"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var logged struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &logged))
	require.NotEmpty(t, logged.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+logged.Token)
	meRes := httptest.NewRecorder()
	router.ServeHTTP(meRes, req)
	require.Equal(t, http.StatusOK, meRes.Code)
	var me struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(meRes.Body.Bytes(), &me))
	assert.Equal(t, "a@x.com", me.Email)
	assert.Equal(t, "Ann", me.Name)
	assert.NotZero(t, me.ID)
}

func TestHandlerRegisterValidation(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := postJSON(t, router, "/api/auth/register", `{"email":"a@x.com","name":"Ann"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = postJSON(t, router, "/api/auth/register", `{"email":"not-an-email","name":"Ann","password":"pw123"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = postJSON(t, router, "/api/auth/register", `not json`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestHandlerRegisterDuplicateEmail(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := postJSON(t, router, "/api/auth/register", `{"email":"a@x.com","name":"Ann","password":"pw123"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = postJSON(t, router, "/api/auth/register", `{"email":"a@x.com","name":"Ann","password":"pw123"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "email already in use")
}

func TestHandlerLoginFailureIsGeneric(t *testing.T) {
	router, _ := newAuthRouter(t)

	res := postJSON(t, router, "/api/auth/register", `{"email":"a@x.com","name":"Ann","password":"pw123"}`)
	require.Equal(t, http.StatusOK, res.Code)

	wrongPassword := postJSON(t, router, "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`)
	unknownEmail := postJSON(t, router, "/api/auth/login", `{"email":"nobody@x.com","password":"pw123"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestHandlerMeWithoutToken(t *testing.T) {
	router, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
