package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/knowledge-share-api/internal/constants"
	"github.com/yukikurage/knowledge-share-api/internal/logging"
)

// AccessLog writes one zerolog event per request
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logging.Error()
		case status >= 400:
			event = logging.Warn()
		default:
			event = logging.Info()
		}

		event.
			Str("request_id", c.GetString(constants.ContextKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP())
		if userID, ok := GetUserID(c); ok {
			event.Uint64("user_id", userID)
		}
		if len(c.Errors) > 0 {
			event.Str("errors", c.Errors.String())
		}
		event.Msg("request")
	}
}
