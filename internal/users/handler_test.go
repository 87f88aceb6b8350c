package users

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hestia-rentals/hestia/internal/auth"
	"github.com/hestia-rentals/hestia/internal/shared"
)

type stubAuthRepo struct {
	user *auth.User
}

func (s *stubAuthRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubAuthRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubAuthRepo) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	return user, nil
}

type stubRepo struct {
	users map[int64]*User
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func newUsersRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	principal := &auth.User{ID: 1, Email: "a@x.com", Name: "Ann"}
	codec, err := auth.NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	authService := auth.NewService(&stubAuthRepo{user: principal}, auth.NewHasher(), codec, time.Hour)
	token, err := authService.IssueToken(principal)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(&stubRepo{users: map[int64]*User{
		1: {ID: 1, Email: "a@x.com", Name: "Ann"},
	}}), auth.NewMiddleware(logger, authService))

	r := chi.NewRouter()
	r.Route("/api/users", handler.MountRoutes)
	return r, token
}

func getWithToken(router http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestHandlerGetUser(t *testing.T) {
	router, token := newUsersRouter(t)

	res := getWithToken(router, "/api/users/1", token)
	require.Equal(t, http.StatusOK, res.Code)

	var user User
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &user))
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestHandlerGetUserNotFound(t *testing.T) {
	router, token := newUsersRouter(t)

	assert.Equal(t, http.StatusNotFound, getWithToken(router, "/api/users/99", token).Code)
	assert.Equal(t, http.StatusNotFound, getWithToken(router, "/api/users/abc", token).Code)
}

func TestHandlerGetUserRequiresToken(t *testing.T) {
	router, _ := newUsersRouter(t)

	assert.Equal(t, http.StatusUnauthorized, getWithToken(router, "/api/users/1", "").Code)
}
