package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arzan03/newsroom/internal/mailer"
	"github.com/arzan03/newsroom/internal/models"
	"github.com/arzan03/newsroom/internal/utils"
	"go.uber.org/zap"
)

const contactListLimit = 200

// ContactInput is the contact form payload.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactService stores contact form messages and forwards them to the inbox.
type ContactService struct {
	contacts ContactStore
	notifier Notifier
	inbox    string
	now      func() time.Time
	log      *zap.Logger
}

// NewContactService creates a ContactService that forwards messages to inbox.
func NewContactService(contacts ContactStore, notifier Notifier, inbox string, log *zap.Logger) *ContactService {
	return &ContactService{contacts: contacts, notifier: notifier, inbox: inbox, now: time.Now, log: log}
}

// Submit validates and stores a contact message, then notifies the inbox.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	if err := s.contacts.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.inbox != "" {
		subject := "New contact message"
		if msg.Subject != "" {
			subject += ": " + msg.Subject
		}
		err := s.notifier.Notify(ctx, mailer.Message{
			To:      []string{s.inbox},
			Subject: subject,
			Body:    fmt.Sprintf("From: %s <%s>\n\n%s\n", msg.Name, msg.Email, msg.Message),
		})
		if err != nil {
			s.log.Error("Failed to queue contact notification", zap.String("messageID", msg.ID.Hex()), zap.Error(err))
		}
	}
	return msg, nil
}

// List returns the most recent contact messages, newest first.
func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	return s.contacts.List(ctx, contactListLimit)
}
