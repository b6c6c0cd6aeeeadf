package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/orderhub/internal/domain/identity"
	"github.com/erp/orderhub/internal/domain/shared"
	"github.com/erp/orderhub/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Login errors
var (
	ErrCredentialsRequired = shared.NewDomainError("VALIDATION_ERROR", "Email and password are required")
	ErrInvalidCredentials  = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	hasher     *PasswordHasher
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	hasher *PasswordHasher,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Login for unknown email", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive() || !s.hasher.Verify(user.PasswordHash, input.Password) {
		s.logger.Warn("Login rejected", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:    user.ID,
		UserName:  user.Name,
		Email:     user.Email,
		RoleID:    user.RoleID,
		FactoryID: user.FactoryID,
	})
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return &LoginResult{
		User:        ToUserResponse(user),
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	}, nil
}
