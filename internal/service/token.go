package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Amorphous121/jobboard/internal/model"
	"github.com/Amorphous121/jobboard/pkg/jwt"
)

// TokenService issues and checks identity tokens
type TokenService struct {
	jwtService *jwt.Service
}

// TokenServiceConfig holds configuration for the token service
type TokenServiceConfig struct {
	JWTService *jwt.Service
}

// NewTokenService creates a new token service
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	return &TokenService{jwtService: cfg.JWTService}
}

// Issue signs a token identifying user
func (s *TokenService) Issue(user *model.User) (string, error) {
	token, err := s.jwtService.Sign(jwt.Claims{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Lifetime returns how long issued tokens stay valid
func (s *TokenService) Lifetime() time.Duration {
	return s.jwtService.GetExpiration()
}

// ValidateAccessToken verifies a token. Bad tokens yield ErrInvalidToken;
// a service that cannot verify at all yields ErrTokenUnverifiable.
func (s *TokenService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	claims, err := s.jwtService.Validate(token)
	if err == nil {
		return claims, nil
	}

	switch {
	case errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrInvalidSignature),
		errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenNotYetValid):
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	default:
		return nil, fmt.Errorf("%w: %v", ErrTokenUnverifiable, err)
	}
}
