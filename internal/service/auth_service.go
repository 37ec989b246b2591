package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"propertyhub/internal/apperr"
	"propertyhub/internal/auth"
	"propertyhub/internal/models"
	"propertyhub/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	msgRegisterFields     = "All fields are required (username, email, password)"
	msgEmailTaken         = "Email already registered"
	msgUsernameTaken      = "Username already taken"
	msgLoginFields        = "Email and password are required"
	msgInvalidCredentials = "Invalid email or password"
)

// Session is the result of a successful register or login
type Session struct {
	User      models.PublicUser
	Token     string
	ExpiresAt time.Time
}

// AuthService registers users and exchanges credentials for bearer tokens
type AuthService struct {
	users  store.UserStore
	tokens *auth.TokenManager
	logger *logrus.Logger
	now    func() time.Time
}

func NewAuthService(users store.UserStore, tokens *auth.TokenManager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, apperr.Validation(msgRegisterFields)
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("Error registering user", fmt.Errorf("failed to check existing email: %w", err))
	}
	if existing != nil {
		return nil, apperr.Conflict(msgEmailTaken)
	}

	existing, err = s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Internal("Error registering user", fmt.Errorf("failed to check existing username: %w", err))
	}
	if existing != nil {
		return nil, apperr.Conflict(msgUsernameTaken)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal("Error registering user", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// lost a race against a concurrent registration with the same email or username
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict(s.duplicateMessage(ctx, email, username))
		}
		return nil, apperr.Internal("Error registering user", fmt.Errorf("failed to create user: %w", err))
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("Registered new user")

	return s.issue(user, "Error registering user")
}

// duplicateMessage names the field a concurrent registration claimed first.
// Email wins when both collide.
func (s *AuthService) duplicateMessage(ctx context.Context, email, username string) string {
	if existing, err := s.users.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return msgEmailTaken
	}
	if existing, err := s.users.GetUserByUsername(ctx, username); err == nil && existing != nil {
		return msgUsernameTaken
	}
	return msgEmailTaken
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Validation(msgLoginFields)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("Error logging in", fmt.Errorf("failed to get user: %w", err))
	}
	if user == nil {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	return s.issue(user, "Error logging in")
}

// Authenticate verifies a bearer token and returns the identity it carries
func (s *AuthService) Authenticate(token string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(token, s.now())
	if apperr.Is(err, apperr.KindForbidden) {
		s.logger.WithError(err).Debug("Rejected bearer token")
	}
	return claims, err
}

func (s *AuthService) issue(user *models.User, failure string) (*Session, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Internal(failure, err)
	}

	return &Session{
		User:      user.Public(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
