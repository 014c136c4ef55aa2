package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/arzan03/newsroom/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettingsRepository keeps the singleton settings document.
type SettingsRepository struct {
	coll *mongo.Collection
}

// NewSettingsRepository uses the settings collection of database.
func NewSettingsRepository(database *mongo.Database) *SettingsRepository {
	return &SettingsRepository{coll: database.Collection(settingsCollection)}
}

// Get returns the saved settings.
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	if err := r.coll.FindOne(ctx, bson.M{"_id": models.SettingsID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}
	return &s, nil
}

// Upsert replaces the settings document, creating it if needed.
func (r *SettingsRepository) Upsert(ctx context.Context, s *models.Settings) (*models.Settings, error) {
	s.ID = models.SettingsID
	opts := options.FindOneAndReplace().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.Settings
	if err := r.coll.FindOneAndReplace(ctx, bson.M{"_id": models.SettingsID}, s, opts).Decode(&saved); err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}
	return &saved, nil
}
