package services

import (
	"context"
	"testing"

	"github.com/arzan03/newsroom/internal/db"
	"github.com/arzan03/newsroom/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSettings_DefaultsThenUpsert(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(db.NewMemorySettingsRepository(), zaptest.NewLogger(t))

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), *got)

	dark := models.ThemeDark
	saved, err := svc.Update(ctx, SettingsInput{Theme: &dark})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, saved.Theme)
	assert.Equal(t, models.DefaultSettings().SiteTitle, saved.SiteTitle)

	title := "Daily Planet"
	_, err = svc.Update(ctx, SettingsInput{SiteTitle: &title})
	require.NoError(t, err)

	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Daily Planet", got.SiteTitle)
	assert.Equal(t, models.ThemeDark, got.Theme)
}

func TestSettings_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(db.NewMemorySettingsRepository(), zaptest.NewLogger(t))

	blue := "blue"
	_, err := svc.Update(ctx, SettingsInput{Theme: &blue})
	assert.ErrorIs(t, err, models.ErrValidation)

	gossip := "Gossip"
	_, err = svc.Update(ctx, SettingsInput{DefaultCategory: &gossip})
	assert.ErrorIs(t, err, models.ErrValidation)

	empty := "  "
	_, err = svc.Update(ctx, SettingsInput{SiteTitle: &empty})
	assert.ErrorIs(t, err, models.ErrValidation)
}
