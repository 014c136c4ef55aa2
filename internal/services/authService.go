package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arzan03/newsroom/internal/auth"
	"github.com/arzan03/newsroom/internal/metrics"
	"github.com/arzan03/newsroom/internal/models"
	"github.com/arzan03/newsroom/internal/utils"
	"go.uber.org/zap"
)

// Session is what a successful login or registration hands back to the client.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,role"`
}

// AuthService handles registration, login and password changes.
type AuthService struct {
	users      UserStore
	tokens     *auth.TokenIssuer
	bcryptCost int
	now        func() time.Time
	log        *zap.Logger
}

// NewAuthService creates an AuthService that signs sessions with tokens.
func NewAuthService(users UserStore, tokens *auth.TokenIssuer, bcryptCost int, log *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
		log:        log,
	}
}

// Register creates a Client (or the requested role) and signs them in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, models.ErrEmailExists
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := models.Role(in.Role)
	if role == "" {
		role = models.RoleClient
	}
	now := s.now()
	user := &models.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered", zap.String("userID", user.ID.Hex()), zap.String("role", string(role)))
	metrics.RegistrationsTotal.Inc()
	return s.session(user)
}

// Login authenticates a user. Unknown emails and wrong passwords fail with the
// same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, models.NewValidationError("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(password, user.Password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, models.ErrInvalidCredentials
	}
	if user.Suspended {
		metrics.LoginsTotal.WithLabelValues("suspended").Inc()
		return nil, models.ErrUserSuspended
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return s.session(user)
}

// Me returns the public profile for an authenticated identity.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.PublicUser, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// ChangePassword replaces the password after checking the current one. A
// pending reset link is invalidated too.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" || next == "" {
		return models.NewValidationError("currentPassword and newPassword are required")
	}
	id, err := parseID(userID)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(current, user.Password) {
		return models.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, id, hashedPassword, s.now()); err != nil {
		return err
	}
	s.log.Info("Password changed", zap.String("userID", userID))
	return nil
}

func (s *AuthService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(auth.Identity{ID: user.ID.Hex(), Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &Session{Token: token, User: user.Public()}, nil
}
