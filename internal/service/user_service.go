package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// SessionStore is the session collaborator: it binds opaque tokens to user
// ids and is the only persisted authentication state.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// UserService defines the interface for identity and authentication
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (accessToken, sessionToken string, user *domain.User, err error)
	Logout(ctx context.Context, sessionToken string) error
	Refresh(ctx context.Context, sessionToken string) (newAccessToken string, err error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// Claims represents the JWT claims
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	IsAdmin bool      `json:"is_admin"`
	jwt.RegisteredClaims
}

type userService struct {
	userRepo     repository.UserRepository
	sessions     SessionStore
	jwtSecret    string
	accessExpiry time.Duration
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo repository.UserRepository,
	sessions SessionStore,
	jwtSecret string,
	accessExpiry time.Duration,
) UserService {
	return &userService{
		userRepo:     userRepo,
		sessions:     sessions,
		jwtSecret:    jwtSecret,
		accessExpiry: accessExpiry,
	}
}

// Register creates a new user account with a hashed password. There is no
// auto-login; the caller still has to authenticate.
func (s *userService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && err != repository.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, repository.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	}

	// The unique constraints back up the pre-check; a racing duplicate still
	// comes back as the sentinel, never as a raw driver error.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repository.ErrEmailTaken || err == repository.ErrUsernameTaken {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user, establishes a server-side session, and mints an
// access token. Unknown email and wrong password are indistinguishable.
func (s *userService) Login(ctx context.Context, email, password string) (accessToken, sessionToken string, user *domain.User, err error) {
	user, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	sessionToken, err = s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	return accessToken, sessionToken, user, nil
}

// Logout clears the session. Logging out an already-dead session succeeds.
func (s *userService) Logout(ctx context.Context, sessionToken string) error {
	if err := s.sessions.Delete(ctx, sessionToken); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Refresh mints a new access token while the session is still alive
func (s *userService) Refresh(ctx context.Context, sessionToken string) (string, error) {
	userID, err := s.sessions.Get(ctx, sessionToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	newAccessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return newAccessToken, nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// List retrieves all users (the member directory)
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) generateAccessToken(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.accessExpiry)
	claims := &Claims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
