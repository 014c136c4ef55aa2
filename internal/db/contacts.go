package db

import (
	"context"
	"fmt"

	"github.com/arzan03/newsroom/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContactRepository stores contact form submissions.
type ContactRepository struct {
	coll *mongo.Collection
}

// NewContactRepository uses the contacts collection of database.
func NewContactRepository(database *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: database.Collection(contactsCollection)}
}

// Create inserts m and sets its id.
func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// List returns up to limit messages, newest first.
func (r *ContactRepository) List(ctx context.Context, limit int64) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := []models.ContactMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("error decoding contact messages: %w", err)
	}
	return messages, nil
}
