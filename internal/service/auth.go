package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/Amorphous121/jobboard/internal/database"
	"github.com/Amorphous121/jobboard/internal/mailer"
	"github.com/Amorphous121/jobboard/internal/model"
)

const (
	// bcrypt cost factor
	bcryptCost = 10

	welcomeMailTimeout = 30 * time.Second
)

// UserRepository defines the interface for user storage.
// Lookups return nil, nil when the user does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService handles registration, login and token authentication
type AuthService struct {
	userRepo     UserRepository
	tokenService *TokenService
	mailer       mailer.Sender
	mailWG       sync.WaitGroup
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
	Mailer       mailer.Sender // optional; nil disables the welcome mail
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:     cfg.UserRepo,
		tokenService: cfg.TokenService,
		mailer:       cfg.Mailer,
	}
}

// RegisterResult represents a successful registration
type RegisterResult struct {
	User  *model.User
	Token string
}

// Register creates a user account and issues its first token
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*RegisterResult, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if !model.IsEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: hash,
		Role:     model.UserRoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicate):
			return nil, ErrDuplicateEmail
		case errors.Is(err, database.ErrValidation):
			return nil, ErrMissingFields
		}
		return nil, err
	}

	token, err := s.tokenService.Issue(user)
	if err != nil {
		return nil, err
	}

	s.sendWelcome(ctx, user)

	return &RegisterResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token.
// Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", ErrMissingCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if !checkPassword(user.Password, req.Password) {
		return "", ErrInvalidCredentials
	}

	return s.tokenService.Issue(user)
}

// Authenticate resolves the user a token was issued to.
//
// Errors:
//   - ErrInvalidToken: the token is malformed, forged, expired or not yet valid
//   - ErrUserNotFound: the token is valid but its user no longer exists
//   - anything else: the check itself failed
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokenService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve token user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Wait blocks until pending welcome mails have been handed to the mailer
func (s *AuthService) Wait() {
	s.mailWG.Wait()
}

// sendWelcome mails the new user in the background. Failures are logged only.
func (s *AuthService) sendWelcome(ctx context.Context, user *model.User) {
	if s.mailer == nil {
		return
	}

	msg, err := mailer.WelcomeMessage(user.Name, user.Email)
	if err != nil {
		slog.Error("failed to render welcome mail", "error", err, "user_id", user.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), welcomeMailTimeout)
	s.mailWG.Add(1)
	go func() {
		defer s.mailWG.Done()
		defer cancel()
		if _, err := s.mailer.Send(ctx, msg); err != nil {
			slog.Warn("failed to send welcome mail", "error", err, "user_id", user.ID)
		}
	}()
}

// validatePassword counts the minimum in characters and the maximum in bytes,
// since bcrypt rejects input past 72 bytes.
func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < model.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > model.MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// hashPassword creates a bcrypt hash of the password
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword compares a password with a hash
func checkPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
