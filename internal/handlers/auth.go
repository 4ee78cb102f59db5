package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/knowledge-share-api/internal/constants"
	"github.com/yukikurage/knowledge-share-api/internal/dto"
	apierrors "github.com/yukikurage/knowledge-share-api/internal/errors"
	"github.com/yukikurage/knowledge-share-api/internal/logging"
	"github.com/yukikurage/knowledge-share-api/internal/middleware"
	"github.com/yukikurage/knowledge-share-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CheckAuth reports whether the session belongs to an existing user.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.CheckAuthResponse{Authenticated: false})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			logging.Error().Err(err).Uint64("user_id", userID).Msg("check-auth lookup failed")
		}
		c.JSON(http.StatusUnauthorized, dto.CheckAuthResponse{Authenticated: false})
		return
	}

	userDTO := dto.ToUserDTO(*user)
	c.JSON(http.StatusOK, dto.CheckAuthResponse{Authenticated: true, User: &userDTO})
}

// Register creates a user and logs them in.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := startSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	logging.Info().Uint64("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Registration successful",
		UserID:  user.ID,
	})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	// missing credentials fall through to the invalid credentials response
	type LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := startSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User:    dto.ToUserDTO(*user),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

func startSession(c *gin.Context, userID uint64) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameRequired):
		apierrors.MissingField(c, "username")
	case errors.Is(err, services.ErrPasswordRequired):
		apierrors.MissingField(c, "password")
	case errors.Is(err, services.ErrUsernameTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Username must be at most %d characters", constants.MaxUsernameLength))
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser):
		logging.Error().Err(err).Msg("registration failed")
		apierrors.BadRequest(c, services.ErrFailedToCreateUser.Error())
	default:
		logging.Error().Err(err).Msg("auth request failed")
		apierrors.InternalError(c, "")
	}
}
