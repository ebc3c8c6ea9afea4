package server

import (
	"fmt"

	"gear4music/internal/auth"
	"gear4music/internal/config"
	"gear4music/internal/database"
	"gear4music/internal/handlers"
	"gear4music/internal/metrics"
	"gear4music/internal/middleware"
	"gear4music/internal/models"
	"gear4music/web"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRouter(cfg *config.Config, store *database.Store, log *logrus.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(auth.SessionName, sessionStore))

	r.Use(middleware.InjectUser(store, log))

	h := handlers.New(store, log)
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, log)

	// AUTH
	r.GET("/", h.ShowLogin)
	r.POST("/", loginLimiter.Handler(), h.Login)
	r.GET("/register/", h.ShowRegister)
	r.POST("/register/", loginLimiter.Handler(), h.Register)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth())

	authed.GET("/logout/", h.Logout)
	authed.GET("/profile/", h.ShowProfile)
	authed.POST("/profile/change-password/", h.ChangePassword)

	// PAGES
	authed.GET("/index/", h.IndexPage)
	authed.GET("/contact/", h.ContactPage)

	// CATALOG
	authed.GET("/instrumentos/", h.ListInstruments)
	authed.GET("/instrument/:id/details/", h.ShowInstrument)
	authed.GET("/search", h.Search)

	// catalog changes are admin only
	admin := middleware.RequireRole(models.RoleAdmin)

	authed.GET("/instrument/:id/delete/", admin, h.DeleteInstrument)
	authed.GET("/instrument/:id/update/", admin, h.ShowUpdateInstrument)
	authed.POST("/instrument/:id/update/", admin, h.UpdateInstrument)
	authed.GET("/instrument/create/", admin, h.ShowCreateInstrument)
	authed.POST("/instrument/create/", admin, h.CreateInstrument)

	// AUDIT
	authed.GET("/audit/", admin, h.ListAuditLogs)

	// HEALTHCHECK / METRICS
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r, nil
}
