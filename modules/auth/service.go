package auth

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/task-management/domain/user"
)

var (
	// ErrMissingFields is returned when a signup field is empty.
	ErrMissingFields = errors.New("name, email and password are required")
	// ErrMissingCredentials is returned when a login field is empty.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPasswordTooLong is returned when the password exceeds bcrypt's limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// AuthService handles credential business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates an account and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	if len(password) > MaxPasswordBytes {
		return nil, "", ErrPasswordTooLong
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailInUse) {
			return nil, "", ErrEmailInUse
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Authenticate checks credentials and returns the user with a fresh token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// VerifyToken validates a bearer token and returns its claims.
func (s *AuthService) VerifyToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &domain.Claims{UserID: claims.UserID}, nil
}

// IssueToken signs a fresh token for an already authenticated user.
func (s *AuthService) IssueToken(_ context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidToken
	}
	token, err := s.jwt.GenerateToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
