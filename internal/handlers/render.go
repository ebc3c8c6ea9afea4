package handlers

import (
	"net/http"

	"gear4music/internal/database"
	"gear4music/internal/forms"
	"gear4music/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler serves every page. It holds the store and the logger; request
// identity comes from middleware.CurrentUser.
type Handler struct {
	store *database.Store
	names forms.NameChecker
	log   *logrus.Logger
}

func New(store *database.Store, log *logrus.Logger) *Handler {
	return &Handler{store: store, names: store, log: log}
}

// render wraps c.HTML and passes the current user to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = forms.Errors{}
	}

	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = user
		data["IsAdmin"] = user.IsAdmin()
	}

	c.HTML(status, tmpl, data)
}

func renderNotFound(c *gin.Context, msg string) {
	render(c, http.StatusNotFound, "not_found.html", gin.H{"message": msg})
}

// serverError logs an unexpected store failure and answers with a generic page.
func (h *Handler) serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	h.log.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString("RequestID"),
		"path":       c.Request.URL.Path,
	}).Error("request failed")

	render(c, http.StatusInternalServerError, "error.html", gin.H{
		"message": "The request could not be completed. Please try again later.",
	})
}
