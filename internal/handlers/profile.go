package handlers

import (
	"net/http"

	"gear4music/internal/auth"
	"gear4music/internal/forms"
	"gear4music/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowProfile(c *gin.Context) {
	render(c, http.StatusOK, "profile.html", gin.H{"success": false})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.HTML(http.StatusUnauthorized, "unauthorized.html", gin.H{})
		return
	}

	var form forms.ChangePasswordForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "profile.html", gin.H{
			"errors": forms.Errors{"current_password": {"Invalid form data"}},
		})
		return
	}

	errs := form.Validate()
	if errs.Valid() {
		errs = form.Check(func(plain string) bool {
			return auth.CheckPassword(plain, user.Password)
		})
	}
	if !errs.Valid() {
		render(c, http.StatusBadRequest, "profile.html", gin.H{"errors": errs, "success": false})
		return
	}

	hash, err := auth.HashPassword(form.NewPassword)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if err := h.store.UpdateUserPassword(c.Request.Context(), user.ID, hash); err != nil {
		h.serverError(c, err)
		return
	}
	user.Password = hash

	h.log.WithField("user_id", user.ID).Info("password changed")
	render(c, http.StatusOK, "profile.html", gin.H{"success": true})
}
