package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yukikurage/knowledge-share-api/internal/config"
	"github.com/yukikurage/knowledge-share-api/internal/constants"
	"github.com/yukikurage/knowledge-share-api/internal/handlers"
	"github.com/yukikurage/knowledge-share-api/internal/middleware"
	"github.com/yukikurage/knowledge-share-api/internal/models"
	"github.com/yukikurage/knowledge-share-api/internal/repository"
	"github.com/yukikurage/knowledge-share-api/internal/services"
	"github.com/yukikurage/knowledge-share-api/internal/storage"
)

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, store storage.Store, sessionStore sessions.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", constants.HeaderRequestID},
		AllowCredentials: true,
	}))
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	validationRepo := repository.NewValidationRepository(db)

	authService := services.NewAuthService(userRepo)
	itemService := services.NewItemService(itemRepo, store)
	validationService := services.NewValidationService(itemRepo, validationRepo)

	authHandler := handlers.NewAuthHandler(authService)
	itemHandler := handlers.NewItemHandler(itemService)
	validationHandler := handlers.NewValidationHandler(validationService)

	requireAuth := middleware.RequireAuth(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Knowledge Share API is running",
		})
	})

	r.GET("/static/uploads/:filename", itemHandler.ServeUpload)

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.GET("/check-auth", authHandler.CheckAuth)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)

		// Knowledge routes (protected)
		protected := api.Group("")
		protected.Use(requireAuth)
		{
			protected.POST("/upload", itemHandler.Upload)
			protected.GET("/search", itemHandler.Search)
			protected.GET("/recommendations", itemHandler.Recommendations)
			protected.GET("/validate", validationHandler.ListPending)
			protected.POST("/validate", middleware.RequireRole(models.RoleTeamLeader), validationHandler.Validate)
			protected.GET("/items/:id/validations", validationHandler.History)
		}
	}

	return r
}
