package middleware

import (
	"edunity_backend/internal/model"
	"edunity_backend/internal/util"
	"edunity_backend/pkg/i18n"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func tokenFor(t *testing.T, id uint, role model.UserRole) string {
	t.Helper()
	user := &model.User{Role: role, Email: "ada@example.com"}
	user.ID = id
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) util.Response {
	t.Helper()
	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(LocaleMiddleware(i18n.Default), AuthMiddleware(testSecret))
	r.GET("/me", func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).UserID)
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Unauthorized", decode(t, w).Message)
	})

	t.Run("bad signature", func(t *testing.T) {
		user := &model.User{Role: model.Student}
		token, err := util.GenerateJWT(user, "another-secret", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me?lang=vi", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Chưa đăng nhập", decode(t, w).Message)
	})

	t.Run("valid bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, 42, model.Student))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(42), decode(t, w).Data)
	})

	t.Run("token query parameter", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?token="+tokenFor(t, 7, model.Student), nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(AuthMiddleware(testSecret), RoleMiddleware(model.Instructor))
	r.GET("/teach", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	cases := map[model.UserRole]int{
		model.Student:    http.StatusForbidden,
		model.Instructor: http.StatusNoContent,
		model.Admin:      http.StatusNoContent,
	}
	for role, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/teach", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, 1, role))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, string(role))
	}
}

type activityRecorder struct {
	mu   sync.Mutex
	seen []uint
	done chan struct{}
}

func (a *activityRecorder) UpdateLastSeen(userID uint, _ time.Time) error {
	a.mu.Lock()
	a.seen = append(a.seen, userID)
	a.mu.Unlock()
	a.done <- struct{}{}
	return nil
}

func TestActivityMiddleware(t *testing.T) {
	repo := &activityRecorder{done: make(chan struct{}, 1)}
	r := gin.New()
	r.Use(AuthMiddleware(testSecret), ActivityMiddleware(repo))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, 9, model.Student))
	r.ServeHTTP(httptest.NewRecorder(), req)

	select {
	case <-repo.done:
	case <-time.After(time.Second):
		t.Fatal("last seen not updated")
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, []uint{9}, repo.seen)
}

func TestLocaleMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(LocaleMiddleware(i18n.Default))
	r.GET("/locale", func(c *gin.Context) {
		c.String(http.StatusOK, util.Locale(c)+","+i18n.LocaleFrom(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/locale", nil)
	req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "vi,vi", w.Body.String())
	assert.Equal(t, "vi", w.Header().Get("Content-Language"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/locale?lang=en", nil))
	assert.Equal(t, "en,en", w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(util.ContextRequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(util.HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(util.HeaderRequestID, "upstream-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Header().Get(util.HeaderRequestID))
}
