package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/arzan03/newsroom/internal/models"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	DefaultRetries = 2
	DefaultBackoff = 2 * time.Second
)

// Retrying retries failed sends a fixed number of times with a constant delay.
type Retrying struct {
	next    Mailer
	retries uint64
	backoff time.Duration
	log     *zap.Logger
}

// NewRetrying wraps next with retries attempts after the first, backoff apart.
func NewRetrying(next Mailer, retries uint64, backoff time.Duration, log *zap.Logger) *Retrying {
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	return &Retrying{next: next, retries: retries, backoff: backoff, log: log}
}

// Send delivers msg, retrying transient failures.
func (r *Retrying) Send(ctx context.Context, msg Message) error {
	attempt := 0
	b := retry.WithMaxRetries(r.retries, retry.NewConstant(r.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if err := r.next.Send(ctx, msg); err != nil {
			r.log.Warn("Email send attempt failed",
				zap.Int("attempt", attempt),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w after %d attempts: %w", models.ErrNotificationFailed, attempt, err)
	}
	return nil
}
