package constants

import "time"

// Session and context keys
const (
	SessionCookieName   = "knowledge_session"
	ContextKeyUserID    = "user_id"
	ContextKeyUser      = "current_user"
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-Id"
)

// SessionMaxAge is the lifetime of the session cookie.
const SessionMaxAge = 7 * 24 * time.Hour

// Validation limits
const (
	MinPasswordLength = 1
	MaxUsernameLength = 50
)

// RecommendationFallbackLimit caps the unfiltered list returned when a user has no tags.
const RecommendationFallbackLimit = 5

// DefaultUploadDir is relative to the working directory.
const DefaultUploadDir = "static/uploads"
