package services

import (
	"context"
	"time"

	"github.com/arzan03/newsroom/internal/models"
	"go.uber.org/zap"
)

// UserService backs the user administration endpoints.
type UserService struct {
	users UserStore
	now   func() time.Time
	log   *zap.Logger
}

// NewUserService creates a UserService over the given store.
func NewUserService(users UserStore, log *zap.Logger) *UserService {
	return &UserService{users: users, now: time.Now, log: log}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// ToggleSuspended flips the suspended flag of id. Admins cannot suspend
// themselves.
func (s *UserService) ToggleSuspended(ctx context.Context, actorID, id string) (*models.User, error) {
	if actorID == id {
		return nil, models.NewValidationError("you cannot suspend your own account")
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	updated, err := s.users.SetSuspended(ctx, oid, !user.Suspended, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info("User suspension changed",
		zap.String("userID", id),
		zap.String("actorID", actorID),
		zap.Bool("suspended", updated.Suspended),
	)
	return updated, nil
}

// Delete removes the user with id. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return models.NewValidationError("you cannot delete your own account")
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, oid); err != nil {
		return err
	}
	s.log.Info("User deleted", zap.String("userID", id), zap.String("actorID", actorID))
	return nil
}
