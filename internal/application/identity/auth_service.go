package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/crmsuite/backend/internal/domain/identity"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/infrastructure/auth"
)

// AuthServiceConfig tunes the authentication behavior
type AuthServiceConfig struct {
	// MaxLoginAttempts locks the account after this many consecutive failures
	MaxLoginAttempts int
}

// DefaultAuthServiceConfig returns the default auth settings
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{MaxLoginAttempts: 5}
}

// AuthService handles login, token refresh, and logout
type AuthService struct {
	userRepo  identity.UserRepository
	tokens    *auth.JWTService
	blacklist auth.TokenBlacklist
	config    AuthServiceConfig
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo identity.UserRepository,
	tokens *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		blacklist: blacklist,
		config:    config,
		logger:    logger,
	}
}

// Login verifies credentials and issues a token pair.
// Unknown email and wrong password return the same error so the endpoint
// does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account is disabled")
	}

	if s.config.MaxLoginAttempts > 0 && user.FailedAttempts >= s.config.MaxLoginAttempts {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked due to too many failed attempts")
	}

	if !user.VerifyPassword(req.Password) {
		user.RecordFailedLogin()
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Warn("failed to persist failed login attempt",
				zap.String("user_id", user.ID.String()), zap.Error(err))
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	pair, err := s.tokens.GenerateTokenPair(identityOf(user))
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "Failed to generate tokens")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("failed to persist login timestamp",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &LoginResponse{Tokens: pair, User: ToUserResponse(user)}, nil
}

// Refresh exchanges a refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist check failed", zap.Error(err))
		} else if revoked {
			return nil, shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
		}
	}

	pair, err := s.tokens.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}
	return pair, nil
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		// an invalid token needs no revocation
		return nil
	}
	if s.blacklist == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := findUserByStringID(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ChangePassword changes the authenticated user's password and invalidates
// every previously issued token
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	user, err := findUserByStringID(ctx, s.userRepo, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		return err
	}
	if s.blacklist != nil {
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), 168*time.Hour); err != nil {
			s.logger.Warn("failed to invalidate user tokens after password change",
				zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}
	return nil
}

func identityOf(user *identity.User) auth.Identity {
	return auth.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CompanyID: user.ActiveCompanyID,
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Session expired, please log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	}
}
