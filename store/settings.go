package store

import (
	"errors"
	"fmt"

	"financepal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidSettingField is returned when the field name is not one of
// the settable columns. The whitelist also keeps arbitrary column names
// out of the upsert.
var ErrInvalidSettingField = errors.New("invalid setting field")

// GetSettings returns the stored settings row for a user, or ErrNotFound
// when no row exists. Defaults are never written back here.
func (s *Store) GetSettings(userID string) (models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserSettings{}, ErrNotFound
		}
		return models.UserSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// SetSettingField upserts a single typed setting field for a user.
// On first write the remaining columns take their defaults; on conflict
// only the named column is updated (last writer wins).
func (s *Store) SetSettingField(userID, field string, value interface{}) error {
	row := models.DefaultSettings(userID)

	switch field {
	case models.SettingCurrency:
		v, ok := value.(string)
		if !ok {
			return ErrInvalidSettingField
		}
		row.Currency = v
	case models.SettingChartDays:
		v, ok := value.(int)
		if !ok {
			return ErrInvalidSettingField
		}
		row.ChartDays = v
	case models.SettingShowPercentages:
		v, ok := value.(bool)
		if !ok {
			return ErrInvalidSettingField
		}
		row.ShowPercentages = v
	case models.SettingWatchlistLimit:
		v, ok := value.(int)
		if !ok {
			return ErrInvalidSettingField
		}
		row.WatchlistLimit = v
	default:
		return ErrInvalidSettingField
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{field}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", field, err)
	}
	return nil
}
