package middleware

import (
	"context"
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/knowledge-share-api/internal/constants"
	apierrors "github.com/yukikurage/knowledge-share-api/internal/errors"
	"github.com/yukikurage/knowledge-share-api/internal/logging"
	"github.com/yukikurage/knowledge-share-api/internal/models"
	"github.com/yukikurage/knowledge-share-api/internal/services"
)

// UserLoader resolves the user bound to a session.
type UserLoader interface {
	GetUser(ctx context.Context, id uint64) (*models.User, error)
}

// RequireAuth checks the session and loads the user it points at.
// Sessions whose user no longer exists are cleared.
func RequireAuth(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := toUserID(session.Get(constants.ContextKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				session.Clear()
				if err := session.Save(); err != nil {
					logging.Warn().Err(err).Uint64("user_id", userID).Msg("failed to clear stale session")
				}
				apierrors.Unauthorized(c, "")
				return
			}
			logging.Error().Err(err).Uint64("user_id", userID).Msg("failed to load session user")
			apierrors.InternalError(c, "")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// SessionUserID returns the user id stored in the session, if any.
func SessionUserID(c *gin.Context) (uint64, bool) {
	return toUserID(sessions.Default(c).Get(constants.ContextKeyUserID))
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

// GetCurrentUser retrieves the user loaded by RequireAuth
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

func toUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
