package mailer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arzan03/newsroom/internal/metrics"
	"github.com/arzan03/newsroom/internal/utils"
	"go.uber.org/zap"
)

var (
	ErrDispatcherClosed = errors.New("mail dispatcher is closed")
	ErrQueueFull        = errors.New("mail queue is full")
)

// sendTimeout bounds one message including its retries.
const sendTimeout = time.Minute

// Dispatcher delivers messages in the background on a worker pool so request
// handlers never block on the mail transport.
type Dispatcher struct {
	mailer Mailer
	pool   *utils.WorkerPool
	log    *zap.Logger
}

// NewDispatcher delivers through m on workers goroutines.
func NewDispatcher(m Mailer, workers int, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		mailer: m,
		pool:   utils.NewWorkerPool(workers, workers*16),
		log:    log,
	}
}

// Notify queues msg for delivery and returns immediately. A full queue drops
// the message. Delivery failures are logged, not returned.
func (d *Dispatcher) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := d.pool.AddTask(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("Panic while sending email", zap.Any("panic", r))
			}
		}()

		if err := d.mailer.Send(ctx, msg); err != nil {
			metrics.NotificationsTotal.WithLabelValues("failure").Inc()
			d.log.Error("Email delivery failed",
				zap.String("to", strings.Join(msg.To, ",")),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
			return
		}
		metrics.NotificationsTotal.WithLabelValues("success").Inc()
	})
	switch {
	case errors.Is(err, utils.ErrPoolClosed):
		return ErrDispatcherClosed
	case errors.Is(err, utils.ErrPoolFull):
		metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
		d.log.Error("Email dropped, mail queue is full",
			zap.String("to", strings.Join(msg.To, ",")),
			zap.String("subject", msg.Subject),
		)
		return ErrQueueFull
	}
	return err
}

// Flush waits for queued messages to be handled.
func (d *Dispatcher) Flush() {
	d.pool.Wait()
}

// Close drains the queue and stops the workers.
func (d *Dispatcher) Close() {
	d.pool.Close()
}
