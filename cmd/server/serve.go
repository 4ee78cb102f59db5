package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/yukikurage/knowledge-share-api/internal/config"
	"github.com/yukikurage/knowledge-share-api/internal/database"
	"github.com/yukikurage/knowledge-share-api/internal/logging"
	"github.com/yukikurage/knowledge-share-api/internal/server"
	"github.com/yukikurage/knowledge-share-api/internal/storage"
	"github.com/yukikurage/knowledge-share-api/internal/utils"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start the Knowledge Share HTTP API.

The database schema is migrated on startup. Configuration comes from
defaults, an optional YAML file, .env and the environment, in that order.

Examples:
  knowledge-share-api serve
  knowledge-share-api serve --config config.yaml
  PORT=8080 DB_DRIVER=postgres knowledge-share-api serve`,
	RunE: runServe,
}

// setup loads configuration, initializes logging and opens the migrated database
func setup() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Init(cfg)

	if err := database.Connect(cfg); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer database.Close()

	gin.SetMode(cfg.GinMode)

	if cfg.SessionSecret == config.DefaultSessionSecret {
		if cfg.IsRelease() {
			secret, err := utils.GenerateSecret(32)
			if err != nil {
				return fmt.Errorf("failed to generate session secret: %w", err)
			}
			cfg.SessionSecret = secret
			logging.Warn().Msg("SESSION_SECRET is not set; using a random secret, sessions will not survive restarts")
		} else {
			logging.Warn().Msg("using the default session secret; set SESSION_SECRET outside development")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	sessionStore, err := server.NewSessionStore(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewRouter(cfg, database.GetDB(), store, sessionStore),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Str("db_driver", cfg.DBDriver).
			Str("storage", cfg.StorageBackend).
			Bool("redis_sessions", cfg.UseRedisSessions()).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
