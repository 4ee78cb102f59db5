package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"

	"github.com/yukikurage/knowledge-share-api/internal/config"
	"github.com/yukikurage/knowledge-share-api/internal/constants"
)

// NewSessionStore keeps sessions in Redis when configured, otherwise in a signed cookie.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.UseRedisSessions() {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,                // Redis pool size
			"tcp",             // network type
			redisAddr,         // Redis address from config
			"",                // username (empty for default user)
			cfg.RedisPassword, // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis session store: %w", err)
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(constants.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SessionSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
