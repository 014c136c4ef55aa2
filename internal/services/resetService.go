package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arzan03/newsroom/internal/auth"
	"github.com/arzan03/newsroom/internal/mailer"
	"github.com/arzan03/newsroom/internal/metrics"
	"github.com/arzan03/newsroom/internal/models"
	"go.uber.org/zap"
)

// ResetConfig controls reset link lifetime and the URL it points to.
type ResetConfig struct {
	TTL         time.Duration
	FrontendURL string
	BcryptCost  int
}

// ResetService runs the forgot-password flow: issue a hashed, time-boxed token,
// mail the raw value, and redeem it once.
type ResetService struct {
	users    UserStore
	notifier Notifier
	cfg      ResetConfig
	now      func() time.Time
	log      *zap.Logger
}

// NewResetService creates a ResetService that mails links through notifier.
func NewResetService(users UserStore, notifier Notifier, cfg ResetConfig, log *zap.Logger) *ResetService {
	if cfg.TTL == 0 {
		cfg.TTL = auth.DefaultResetTTL
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &ResetService{
		users:    users,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
		log:      log,
	}
}

// RequestReset issues a reset for email. It returns nil for unknown emails so
// callers cannot tell whether an account exists.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.NewValidationError("email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.log.Debug("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	raw, hash, err := auth.NewResetToken()
	if err != nil {
		return err
	}
	now := s.now()
	reset := models.PasswordReset{Hash: hash, ExpiresAt: now.Add(s.cfg.TTL)}
	if err := s.users.SetPasswordReset(ctx, user.ID, reset, now); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: reset token for user %s was not stored", models.ErrPersistence, user.ID.Hex())
		}
		return err
	}
	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()

	if err := s.notifier.Notify(ctx, s.resetMessage(user, raw)); err != nil {
		s.log.Error("Failed to queue password reset email", zap.String("userID", user.ID.Hex()), zap.Error(err))
	}
	return nil
}

// RedeemReset sets a new password for the holder of an unexpired raw token and
// invalidates the token.
func (s *ResetService) RedeemReset(ctx context.Context, rawToken, newPassword string) error {
	if newPassword == "" {
		return models.NewValidationError("password is required")
	}
	if rawToken == "" {
		metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		return models.ErrInvalidResetToken
	}

	hashedPassword, err := auth.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.RedeemPasswordReset(ctx, auth.HashResetToken(rawToken), hashedPassword, s.now())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
			return models.ErrInvalidResetToken
		}
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("redeemed").Inc()
	s.log.Info("Password reset redeemed", zap.String("userID", user.ID.Hex()))
	return nil
}

// ResetURL is the link mailed to the user for raw.
func (s *ResetService) ResetURL(raw string) string {
	return s.cfg.FrontendURL + "/reset-password/" + raw
}

func (s *ResetService) resetMessage(user *models.User, raw string) mailer.Message {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"We received a request to reset your password. Open the link below to choose a new one:\n\n"+
			"%s\n\n"+
			"The link is valid for %d minutes. If you did not ask for this, you can ignore this email.\n",
		user.Name, s.ResetURL(raw), int(s.cfg.TTL.Minutes()),
	)
	return mailer.Message{
		To:      []string{user.Email},
		Subject: "Password reset",
		Body:    body,
	}
}
