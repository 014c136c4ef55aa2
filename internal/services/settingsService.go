package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arzan03/newsroom/internal/models"
	"github.com/arzan03/newsroom/internal/utils"
	"go.uber.org/zap"
)

// SettingsInput holds the settings fields to change; nil fields are kept.
type SettingsInput struct {
	SiteTitle       *string `json:"siteTitle" validate:"omitempty,min=1,max=120"`
	DefaultCategory *string `json:"defaultCategory" validate:"omitempty,category"`
	Theme           *string `json:"theme" validate:"omitempty,oneof=light dark"`
}

// SettingsService reads and writes the site settings singleton.
type SettingsService struct {
	settings SettingsStore
	now      func() time.Time
	log      *zap.Logger
}

// NewSettingsService creates a SettingsService over the given store.
func NewSettingsService(settings SettingsStore, log *zap.Logger) *SettingsService {
	return &SettingsService{settings: settings, now: time.Now, log: log}
}

// Get returns the stored settings or the defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	current, err := s.settings.Get(ctx)
	if errors.Is(err, models.ErrNotFound) {
		defaults := models.DefaultSettings()
		return &defaults, nil
	}
	return current, err
}

// Update merges in over the current settings and upserts the result.
func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (*models.Settings, error) {
	if in.SiteTitle != nil {
		t := strings.TrimSpace(*in.SiteTitle)
		in.SiteTitle = &t
	}
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if in.SiteTitle != nil {
		current.SiteTitle = *in.SiteTitle
	}
	if in.DefaultCategory != nil {
		current.DefaultCategory = *in.DefaultCategory
	}
	if in.Theme != nil {
		current.Theme = *in.Theme
	}
	current.UpdatedAt = s.now()

	saved, err := s.settings.Upsert(ctx, current)
	if err != nil {
		return nil, err
	}
	s.log.Info("Settings updated", zap.String("theme", saved.Theme))
	return saved, nil
}
