package services

import (
	"context"
	"io"

	"github.com/arzan03/newsroom/internal/db"
	"github.com/arzan03/newsroom/internal/mailer"
	"github.com/arzan03/newsroom/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage contracts live next to their drivers in package db.
type (
	UserStore     = db.UserStore
	ArticleStore  = db.ArticleStore
	SettingsStore = db.SettingsStore
	ContactStore  = db.ContactStore
)

// Notifier hands a message to the out-of-band delivery channel.
type Notifier interface {
	Notify(ctx context.Context, msg mailer.Message) error
}

// ObjectStore keeps uploaded files.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// parseID converts a hex id; malformed ids are reported as not found.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, models.ErrNotFound
	}
	return oid, nil
}
