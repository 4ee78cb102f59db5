package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/knowledge-share-api/internal/errors"
	"github.com/yukikurage/knowledge-share-api/internal/models"
)

// RequireRole lets the request through only if the user loaded by RequireAuth
// has one of the given roles
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "")
	}
}
