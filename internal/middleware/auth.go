package middleware

import (
	"net/http"

	"gear4music/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireAuth stops requests without a resolved user with the
// unauthenticated landing page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.HTML(http.StatusUnauthorized, "unauthorized.html", gin.H{})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.HTML(http.StatusUnauthorized, "unauthorized.html", gin.H{})
			c.Abort()
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			c.HTML(http.StatusForbidden, "forbidden.html", gin.H{
				"CurrentUser": user,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
