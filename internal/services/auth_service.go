package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/knowledge-share-api/internal/constants"
	"github.com/yukikurage/knowledge-share-api/internal/models"
	"github.com/yukikurage/knowledge-share-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired     = errors.New("username is required")
	ErrUsernameTooLong      = errors.New("username too long")
	ErrPasswordRequired     = errors.New("password is required")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// Register creates a new user. Only an explicit "team_leader" role is honoured.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > constants.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordRequired
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         models.ParseRole(input.Role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
