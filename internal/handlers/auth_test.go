package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"gear4music/internal/auth"
	"gear4music/internal/database"
	"gear4music/internal/models"
	"gear4music/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staleNames reports every name as free, as a pre-check that lost a race would.
type staleNames struct{}

func (staleNames) NameTaken(context.Context, string) (bool, error) { return false, nil }

func newTestHandler(t *testing.T) (*Handler, *database.Store) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "handlers.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := database.NewStore(db)
	return New(store, log), store
}

func newRegisterEngine(t *testing.T, h *Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	tmpl, err := web.Templates()
	require.NoError(t, err)
	r.SetHTMLTemplate(tmpl)
	r.Use(sessions.Sessions(auth.SessionName, cookie.NewStore([]byte("test-secret"))))
	r.POST("/register/", h.Register)
	return r
}

func postRegister(r *gin.Engine, name, password string) *httptest.ResponseRecorder {
	form := url.Values{"name": {name}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterUniqueIndexConflictIsFieldError(t *testing.T) {
	h, store := newTestHandler(t)
	require.NoError(t, store.CreateUser(context.Background(), &models.User{Name: "taken-name", Password: "hash"}))

	h.names = staleNames{}
	r := newRegisterEngine(t, h)

	rec := postRegister(r, "taken-name", "pass1234")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "That username already exists.")
	assert.Empty(t, rec.Header().Get("Set-Cookie"))

	user, err := store.FindUserByName(context.Background(), "taken-name")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.Password)
}

func TestRegisterSameNameTwice(t *testing.T) {
	h, _ := newTestHandler(t)
	h.names = staleNames{}
	r := newRegisterEngine(t, h)

	first := postRegister(r, "fresh-name", "pass1234")
	assert.Equal(t, http.StatusFound, first.Code)
	assert.Equal(t, "/index/", first.Header().Get("Location"))

	second := postRegister(r, "fresh-name", "pass5678")
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Contains(t, second.Body.String(), "That username already exists.")
}
