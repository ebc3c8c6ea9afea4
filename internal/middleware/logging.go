package middleware

import (
	"time"

	"gear4music/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, logs one line when it is done
// and feeds the HTTP metrics.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestStarted()

		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("RequestID", reqID)
		c.Header(requestIDHeader, reqID)

		// runs even when a handler panics past this middleware
		defer func() {
			latency := time.Since(start)
			status := c.Writer.Status()
			metrics.RequestFinished(c.Request.Method, c.FullPath(), status, latency)

			entry := log.WithFields(logrus.Fields{
				"request_id": reqID,
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"status":     status,
				"latency":    latency.String(),
				"client_ip":  c.ClientIP(),
			})
			if user, ok := CurrentUser(c); ok {
				entry = entry.WithField("user_id", user.ID)
			}

			switch {
			case len(c.Errors) > 0:
				entry.Error(c.Errors.String())
			case status >= 500:
				entry.Error("request failed")
			case status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request")
			}
		}()

		c.Next()
	}
}
