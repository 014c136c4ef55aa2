package models

import "time"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	// SettingsID is the fixed key of the singleton settings document.
	SettingsID = "site"
)

// Settings is the site-wide configuration document.
type Settings struct {
	ID              string    `bson:"_id" json:"-"`
	SiteTitle       string    `bson:"siteTitle" json:"siteTitle"`
	DefaultCategory string    `bson:"defaultCategory" json:"defaultCategory"`
	Theme           string    `bson:"theme" json:"theme"`
	UpdatedAt       time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DefaultSettings is what readers see before anyone has saved settings.
func DefaultSettings() Settings {
	return Settings{
		ID:              SettingsID,
		SiteTitle:       "Newsroom",
		DefaultCategory: "Technology",
		Theme:           ThemeLight,
	}
}
