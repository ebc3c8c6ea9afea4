package handlers

import (
	"errors"
	"net/http"

	"gear4music/internal/auth"
	"gear4music/internal/database"
	"gear4music/internal/forms"
	"gear4music/internal/metrics"
	"gear4music/internal/models"

	"github.com/gin-gonic/gin"
)

const msgBadCredentials = "Incorrect user or password"

func (h *Handler) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"form": forms.LoginForm{}})
}

func (h *Handler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{
			"form":   form,
			"errors": forms.Errors{"name": {"Invalid form data"}},
		})
		return
	}

	if errs := form.Validate(); !errs.Valid() {
		metrics.RecordLogin("invalid")
		render(c, http.StatusBadRequest, "login.html", gin.H{"form": form, "errors": errs})
		return
	}

	// unknown user and wrong password get the same answer
	user, err := h.store.FindUserByName(c.Request.Context(), form.Name)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		h.serverError(c, err)
		return
	}
	if user == nil || !auth.CheckPassword(form.Password, user.Password) {
		metrics.RecordLogin("failure")
		h.log.WithField("client_ip", c.ClientIP()).Info("failed login attempt")
		render(c, http.StatusBadRequest, "login.html", gin.H{
			"form":   form,
			"errors": forms.Errors{"name": {msgBadCredentials}},
		})
		return
	}

	if err := auth.SetLoginUser(c, user.ID); err != nil {
		h.serverError(c, err)
		return
	}
	metrics.RecordLogin("success")

	c.Redirect(http.StatusFound, "/index/")
}

func (h *Handler) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"form": forms.RegisterForm{}})
}

func (h *Handler) Register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{
			"form":   form,
			"errors": forms.Errors{"name": {"Invalid form data"}},
		})
		return
	}

	errs, err := form.Validate(c.Request.Context(), h.names)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if !errs.Valid() {
		render(c, http.StatusBadRequest, "register.html", gin.H{"form": form, "errors": errs})
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		h.serverError(c, err)
		return
	}

	// self-registration never grants more than client
	user := models.User{
		Name:     form.Name,
		Password: hash,
		Role:     models.RoleClient,
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, database.ErrNameTaken) {
			render(c, http.StatusBadRequest, "register.html", gin.H{
				"form":   form,
				"errors": forms.NameTakenErrors(),
			})
			return
		}
		h.serverError(c, err)
		return
	}

	h.log.WithField("user", user.Name).Info("registered new user")

	if err := auth.SetLoginUser(c, user.ID); err != nil {
		h.serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/index/")
}

func (h *Handler) Logout(c *gin.Context) {
	if err := auth.ClearSession(c); err != nil {
		h.log.WithError(err).Warn("failed to clear session")
	}
	c.Redirect(http.StatusFound, "/")
}
