package models

import (
	"time"

	"gorm.io/gorm"
)

// WatchlistEntry represents one tracked symbol on a user's watchlist.
// Uniqueness of (user_id, symbol) is checked by the watchlist service
// before insert, not enforced by the database; two concurrent adds for
// the same symbol can both land (accepted race, see DESIGN.md).
type WatchlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Symbol    string    `gorm:"index;not null" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSettings holds per-user preferences, one row per user.
// Defaults live in DefaultSettings, not in column defaults: the upsert
// always writes a fully specified row, so a stored false or zero is
// preserved as written. WatchlistLimit is stored but not enforced
// against watchlist size.
type UserSettings struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Currency        string    `json:"currency"`
	ChartDays       int       `json:"chart_days"`
	ShowPercentages bool      `json:"show_percentages"`
	WatchlistLimit  int       `json:"watchlist_limit"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultSettings returns the hard-coded defaults used when a user has
// no stored settings row. Defaults are never written back implicitly.
func DefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:          userID,
		Currency:        "USD",
		ChartDays:       30,
		ShowPercentages: true,
		WatchlistLimit:  10,
	}
}

// Settings field name constants
const (
	SettingCurrency        = "currency"
	SettingChartDays       = "chart_days"
	SettingShowPercentages = "show_percentages"
	SettingWatchlistLimit  = "watchlist_limit"
)

// ValidSettingFields returns the settable setting field names
func ValidSettingFields() []string {
	return []string{SettingCurrency, SettingChartDays, SettingShowPercentages, SettingWatchlistLimit}
}

// IsValidSettingField checks if the field name is settable
func IsValidSettingField(field string) bool {
	for _, valid := range ValidSettingFields() {
		if field == valid {
			return true
		}
	}
	return false
}

// SeenUser marks that a user has interacted with the service at least
// once, so the welcome message fires only on first contact. Append-only.
type SeenUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MigrateUserModels runs database migrations for user-scoped models
func MigrateUserModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&WatchlistEntry{},
		&UserSettings{},
		&SeenUser{},
	)
}

// MigrateAll runs all database migrations
func MigrateAll(db *gorm.DB) error {
	if err := MigrateAlertModels(db); err != nil {
		return err
	}
	return MigrateUserModels(db)
}
