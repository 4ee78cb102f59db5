package middleware

import (
	"context"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/knowledge-share-api/internal/constants"
)

type requestIDKey struct{}

// validRequestID limits caller-supplied ids before they reach logs and response headers
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// RequestID reuses the caller's X-Request-Id when it is well formed, otherwise
// generates one, and echoes it back
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if !validRequestID.MatchString(requestID) {
			requestID = strings.ReplaceAll(uuid.New().String(), "-", "")
		}

		c.Set(constants.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, requestID))
		c.Header(constants.HeaderRequestID, requestID)

		c.Next()
	}
}

// RequestIDFromContext returns the id set by RequestID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
