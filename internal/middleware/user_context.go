package middleware

import (
	"context"
	"errors"

	"gear4music/internal/auth"
	"gear4music/internal/database"
	"gear4music/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const currentUserKey = "CurrentUser"

// UserLoader resolves a session identity to a stored user.
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// InjectUser resolves the session identity to a user row and keeps it in the
// request context. A session pointing at a missing user is cleared.
func InjectUser(users UserLoader, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := auth.UserID(c); ok {
			user, err := users.GetUser(c.Request.Context(), uid)
			switch {
			case err == nil:
				c.Set(currentUserKey, user)
			case errors.Is(err, database.ErrNotFound):
				_ = auth.ClearSession(c)
			default:
				log.WithError(err).WithField("user_id", uid).Error("failed to resolve session user")
			}
		}

		c.Next()
	}
}

// CurrentUser returns the user resolved by InjectUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
