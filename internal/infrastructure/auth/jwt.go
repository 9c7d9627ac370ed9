package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when the token is malformed or has a bad signature
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidTokenType is returned when an access token is presented as a refresh token or vice versa
	ErrInvalidTokenType = errors.New("invalid token type")
	// ErrInvalidClaims is returned when the token claims are missing required fields
	ErrInvalidClaims = errors.New("invalid token claims")
	// ErrTokenNotYetValid is returned when the token's nbf claim is in the future
	ErrTokenNotYetValid = errors.New("token not yet valid")
	// ErrMaxRefreshExceeded is returned when a refresh token has been refreshed too many times
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	// ErrTokenBlacklisted is returned when the token has been revoked
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

const (
	// TokenTypeAccess marks short-lived API tokens
	TokenTypeAccess = "access"
	// TokenTypeRefresh marks long-lived refresh tokens
	TokenTypeRefresh = "refresh"
)

// Claims carries the authenticated identity inside a JWT.
// CompanyID is the user's active company and is empty for admins
// that have not selected one.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	CompanyID    string `json:"company_id,omitempty"`
	TokenType    string `json:"token_type"`
	RefreshCount int    `json:"refresh_count,omitempty"`
}

// TokenPair bundles an access token with its refresh token
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// Identity is what the application layer hands to the token service
type Identity struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	CompanyID *uuid.UUID
}

// JWTService issues and validates HS256 token pairs
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
	maxRefreshCount   int
}

// NewJWTService creates a JWTService. When refreshSecret is empty the
// access secret signs both token types.
func NewJWTService(secret, refreshSecret, issuer string, accessExp, refreshExp time.Duration, maxRefreshCount int) *JWTService {
	if refreshSecret == "" {
		refreshSecret = secret
	}
	return &JWTService{
		accessSecret:      []byte(secret),
		refreshSecret:     []byte(refreshSecret),
		accessExpiration:  accessExp,
		refreshExpiration: refreshExp,
		issuer:            issuer,
		maxRefreshCount:   maxRefreshCount,
	}
}

// GenerateTokenPair issues a new access/refresh token pair for the identity
func (s *JWTService) GenerateTokenPair(id Identity) (*TokenPair, error) {
	now := time.Now()
	accessExpiresAt := now.Add(s.accessExpiration)
	refreshExpiresAt := now.Add(s.refreshExpiration)

	accessToken, err := s.generateToken(id, TokenTypeAccess, 0, now, accessExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateToken(id, TokenTypeRefresh, 0, now, refreshExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshTokenExpiresAt: refreshExpiresAt,
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) generateToken(id Identity, tokenType string, refreshCount int, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:       id.UserID.String(),
		Email:        id.Email,
		Role:         id.Role,
		TokenType:    tokenType,
		RefreshCount: refreshCount,
	}
	if id.CompanyID != nil {
		claims.CompanyID = id.CompanyID.String()
	}

	secret := s.accessSecret
	if tokenType == TokenTypeRefresh {
		secret = s.refreshSecret
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken parses and validates an access token
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, TokenTypeAccess, s.accessSecret)
}

// ValidateRefreshToken parses and validates a refresh token
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, TokenTypeRefresh, s.refreshSecret)
}

func (s *JWTService) validateToken(tokenString, expectedType string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// RefreshTokenPair exchanges a valid refresh token for a new token pair.
// The refresh count travels with the refresh token so that a stolen token
// cannot be refreshed indefinitely.
func (s *JWTService) RefreshTokenPair(refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if s.maxRefreshCount > 0 && claims.RefreshCount >= s.maxRefreshCount {
		return nil, ErrMaxRefreshExceeded
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	id := Identity{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	if claims.CompanyID != "" {
		companyID, err := uuid.Parse(claims.CompanyID)
		if err != nil {
			return nil, ErrInvalidClaims
		}
		id.CompanyID = &companyID
	}

	now := time.Now()
	accessExpiresAt := now.Add(s.accessExpiration)
	refreshExpiresAt := now.Add(s.refreshExpiration)

	accessToken, err := s.generateToken(id, TokenTypeAccess, 0, now, accessExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefreshToken, err := s.generateToken(id, TokenTypeRefresh, claims.RefreshCount+1, now, refreshExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshTokenExpiresAt: refreshExpiresAt,
		TokenType:             "Bearer",
	}, nil
}
