// Package mailer delivers outbound email. Delivery is best effort: callers
// queue messages on a Dispatcher and never wait for the transport.
package mailer

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Message is a plain-text email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Log writes messages to the logger instead of sending them. It is used when
// no SMTP host is configured.
type Log struct {
	log *zap.Logger
}

// NewLog creates a Log mailer writing to log.
func NewLog(log *zap.Logger) *Log {
	return &Log{log: log}
}

// Send logs msg instead of delivering it.
func (l *Log) Send(_ context.Context, msg Message) error {
	l.log.Info("Email not sent, SMTP is not configured",
		zap.String("to", strings.Join(msg.To, ",")),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
