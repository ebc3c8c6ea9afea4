package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	SessionName   = "gear4music_session"
	sessionUserID = "user_id"
)

// SetLoginUser binds the session to userID.
func SetLoginUser(c *gin.Context, userID uint) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(sessionUserID, userID)
	return sess.Save()
}

// UserID returns the identity stored in the session, if any.
func UserID(c *gin.Context) (uint, bool) {
	sess := sessions.Default(c)
	uid, ok := sess.Get(sessionUserID).(uint)
	if !ok || uid == 0 {
		return 0, false
	}
	return uid, true
}

func ClearSession(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return sess.Save()
}
