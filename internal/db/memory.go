package db

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arzan03/newsroom/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The memory repositories mirror the Mongo ones for tests and local runs.
// Each guards its records with a mutex so read-modify-write is atomic per call.

// MemoryUserRepository keeps users in a map.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

// NewMemoryUserRepository creates an empty user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]models.User)}
}

func copyUser(u models.User) *models.User {
	if u.PasswordReset != nil {
		reset := *u.PasswordReset
		u.PasswordReset = &reset
	}
	return &u
}

// Create stores u, assigning an id if it has none.
func (r *MemoryUserRepository) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return models.ErrEmailExists
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = *copyUser(*u)
	return nil
}

// FindByID returns the user with id.
func (r *MemoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyUser(u), nil
}

// FindByEmail returns the user with an exactly matching email.
func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, models.ErrNotFound
}

// List returns all users, newest first.
func (r *MemoryUserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// SetPasswordReset replaces any pending reset of user id.
func (r *MemoryUserRepository) SetPasswordReset(_ context.Context, id primitive.ObjectID, reset models.PasswordReset, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.PasswordReset = &reset
	u.UpdatedAt = now
	r.users[id] = u
	return nil
}

// RedeemPasswordReset sets passwordHash on the holder of an unexpired reset and clears it.
func (r *MemoryUserRepository) RedeemPasswordReset(_ context.Context, tokenHash, passwordHash string, now time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if u.PasswordReset == nil || u.PasswordReset.Hash != tokenHash || u.PasswordReset.Expired(now) {
			continue
		}
		u.Password = passwordHash
		u.PasswordReset = nil
		u.UpdatedAt = now
		r.users[id] = u
		return copyUser(u), nil
	}
	return nil, models.ErrNotFound
}

// UpdatePassword replaces the password and drops any pending reset.
func (r *MemoryUserRepository) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return models.ErrNotFound
	}
	u.Password = passwordHash
	u.PasswordReset = nil
	u.UpdatedAt = now
	r.users[id] = u
	return nil
}

// SetSuspended sets the suspended flag and returns the updated user.
func (r *MemoryUserRepository) SetSuspended(_ context.Context, id primitive.ObjectID, suspended bool, now time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	u.Suspended = suspended
	u.UpdatedAt = now
	r.users[id] = u
	return copyUser(u), nil
}

// Delete removes the user with id.
func (r *MemoryUserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// MemoryArticleRepository keeps articles in a map.
type MemoryArticleRepository struct {
	mu       sync.Mutex
	articles map[primitive.ObjectID]models.Article
}

// NewMemoryArticleRepository creates an empty article store.
func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{articles: make(map[primitive.ObjectID]models.Article)}
}

// Create stores a, rejecting a taken slug.
func (r *MemoryArticleRepository) Create(_ context.Context, a *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(a.Slug, primitive.NilObjectID) {
		return models.ErrSlugExists
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	r.articles[a.ID] = *a
	return nil
}

// FindByID returns the article with id.
func (r *MemoryArticleRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.articles[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

// SlugTaken reports whether an article other than except uses slug.
func (r *MemoryArticleRepository) SlugTaken(_ context.Context, slug string, except primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slugTaken(slug, except), nil
}

func (r *MemoryArticleRepository) slugTaken(slug string, except primitive.ObjectID) bool {
	for id, a := range r.articles {
		if a.Slug == slug && id != except {
			return true
		}
	}
	return false
}

// List returns matching articles, newest first, in the skip/limit window.
func (r *MemoryArticleRepository) List(_ context.Context, f models.ArticleFilter, skip, limit int64) ([]models.Article, error) {
	if skip < 0 || limit < 0 {
		return nil, errNegativeWindow
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := r.match(f)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PublishedAt.Equal(matched[j].PublishedAt) {
			return matched[i].PublishedAt.After(matched[j].PublishedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})

	if skip >= int64(len(matched)) {
		return []models.Article{}, nil
	}
	end := int64(len(matched))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return matched[skip:end], nil
}

// Count returns the number of matching articles.
func (r *MemoryArticleRepository) Count(_ context.Context, f models.ArticleFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.match(f))), nil
}

func (r *MemoryArticleRepository) match(f models.ArticleFilter) []models.Article {
	search := strings.ToLower(f.Search)
	matched := []models.Article{}
	for _, a := range r.articles {
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Content), search) {
			continue
		}
		matched = append(matched, a)
	}
	return matched
}

// IncrementViewsByID bumps the view counter of id and returns the article.
func (r *MemoryArticleRepository) IncrementViewsByID(_ context.Context, id primitive.ObjectID) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.articles[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	a.Views++
	r.articles[id] = a
	return &a, nil
}

// IncrementViewsBySlug bumps the view counter of slug and returns the article.
func (r *MemoryArticleRepository) IncrementViewsBySlug(_ context.Context, slug string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.articles {
		if a.Slug == slug {
			a.Views++
			r.articles[id] = a
			return &a, nil
		}
	}
	return nil, models.ErrNotFound
}

// Update writes the editable fields of a, keeping views.
func (r *MemoryArticleRepository) Update(_ context.Context, a *models.Article) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.articles[a.ID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if r.slugTaken(a.Slug, a.ID) {
		return nil, models.ErrSlugExists
	}
	stored.Title = a.Title
	stored.Content = a.Content
	stored.Author = a.Author
	stored.Category = a.Category
	stored.Featured = a.Featured
	stored.PublishedAt = a.PublishedAt
	stored.Slug = a.Slug
	stored.SourceURL = a.SourceURL
	stored.UpdatedAt = a.UpdatedAt
	r.articles[a.ID] = stored
	return &stored, nil
}

// Delete removes the article with id.
func (r *MemoryArticleRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

// MemorySettingsRepository holds the settings singleton.
type MemorySettingsRepository struct {
	mu       sync.Mutex
	settings *models.Settings
}

// NewMemorySettingsRepository creates a store with no saved settings.
func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{}
}

// Get returns the saved settings.
func (r *MemorySettingsRepository) Get(_ context.Context) (*models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.settings == nil {
		return nil, models.ErrNotFound
	}
	s := *r.settings
	return &s, nil
}

// Upsert replaces the saved settings.
func (r *MemorySettingsRepository) Upsert(_ context.Context, s *models.Settings) (*models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *s
	saved.ID = models.SettingsID
	r.settings = &saved
	out := saved
	return &out, nil
}

// MemoryContactRepository keeps contact messages in insertion order.
type MemoryContactRepository struct {
	mu       sync.Mutex
	messages []models.ContactMessage
}

// NewMemoryContactRepository creates an empty inbox.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{}
}

// Create appends m.
func (r *MemoryContactRepository) Create(_ context.Context, m *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	r.messages = append(r.messages, *m)
	return nil
}

// List returns up to limit messages, newest first.
func (r *MemoryContactRepository) List(_ context.Context, limit int64) ([]models.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.ContactMessage, 0, len(r.messages))
	for i := len(r.messages) - 1; i >= 0; i-- {
		if limit > 0 && int64(len(out)) == limit {
			break
		}
		out = append(out, r.messages[i])
	}
	return out, nil
}
