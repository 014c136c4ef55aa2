package db

import (
	"context"
	"fmt"
	"time"

	"github.com/arzan03/newsroom/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserStore persists users. Lookups that match nothing return models.ErrNotFound.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetPasswordReset(ctx context.Context, id primitive.ObjectID, reset models.PasswordReset, now time.Time) error
	RedeemPasswordReset(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string, now time.Time) error
	SetSuspended(ctx context.Context, id primitive.ObjectID, suspended bool, now time.Time) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ArticleStore persists articles. View increments must be atomic per call.
type ArticleStore interface {
	Create(ctx context.Context, a *models.Article) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error)
	SlugTaken(ctx context.Context, slug string, except primitive.ObjectID) (bool, error)
	List(ctx context.Context, f models.ArticleFilter, skip, limit int64) ([]models.Article, error)
	Count(ctx context.Context, f models.ArticleFilter) (int64, error)
	IncrementViewsByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error)
	IncrementViewsBySlug(ctx context.Context, slug string) (*models.Article, error)
	Update(ctx context.Context, a *models.Article) (*models.Article, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SettingsStore persists the settings singleton.
type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, s *models.Settings) (*models.Settings, error)
}

// ContactStore persists contact form messages.
type ContactStore interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	List(ctx context.Context, limit int64) ([]models.ContactMessage, error)
}

var (
	_ UserStore     = (*UserRepository)(nil)
	_ UserStore     = (*MemoryUserRepository)(nil)
	_ ArticleStore  = (*ArticleRepository)(nil)
	_ ArticleStore  = (*MemoryArticleRepository)(nil)
	_ SettingsStore = (*SettingsRepository)(nil)
	_ SettingsStore = (*MemorySettingsRepository)(nil)
	_ ContactStore  = (*ContactRepository)(nil)
	_ ContactStore  = (*MemoryContactRepository)(nil)
)

// errNegativeWindow rejects list windows that would index before the first row.
var errNegativeWindow = models.NewValidationError("skip and limit must not be negative")

// Store bundles the repositories of one storage driver.
type Store struct {
	Users    UserStore
	Articles ArticleStore
	Settings SettingsStore
	Contacts ContactStore

	client *mongo.Client
}

// NewMongoStore connects to uri, prepares indexes on dbName and returns the
// Mongo-backed repositories.
func NewMongoStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := ConnectMongoDB(ctx, uri)
	if err != nil {
		return nil, err
	}
	database := client.Database(dbName)

	ictx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := EnsureIndexes(ictx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("prepare %s: %w", dbName, err)
	}

	return &Store{
		Users:    NewUserRepository(database),
		Articles: NewArticleRepository(database),
		Settings: NewSettingsRepository(database),
		Contacts: NewContactRepository(database),
		client:   client,
	}, nil
}

// NewMemoryStore returns empty in-process repositories.
func NewMemoryStore() *Store {
	return &Store{
		Users:    NewMemoryUserRepository(),
		Articles: NewMemoryArticleRepository(),
		Settings: NewMemorySettingsRepository(),
		Contacts: NewMemoryContactRepository(),
	}
}

// Ping checks the backing database. The memory driver is always healthy.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, nil)
}

// Close disconnects from the database.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
