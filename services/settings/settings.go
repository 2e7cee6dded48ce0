package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"financepal/models"
	"financepal/store"
)

var (
	// ErrUnknownField is returned for a field name outside the whitelist
	ErrUnknownField = errors.New("unknown setting field")
	// ErrInvalidValue is returned when the raw value cannot be parsed
	// into the field's type
	ErrInvalidValue = errors.New("invalid value for setting")
)

// truthy values accepted for boolean settings, matched case-insensitively
var truthyValues = map[string]bool{"true": true, "1": true, "yes": true}

// Service provides typed get/set of per-user preferences
type Service struct {
	store *store.Store
}

// NewService creates a settings service
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Get returns the user's stored settings, or the hard-coded defaults
// when no row exists. Defaults are never persisted by reading.
func (s *Service) Get(userID string) (models.UserSettings, error) {
	stored, err := s.store.GetSettings(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.DefaultSettings(userID), nil
		}
		return models.UserSettings{}, err
	}
	return stored, nil
}

// Set parses raw according to the field's type and upserts that single
// field. Unknown fields and unparsable values are validation failures.
func (s *Service) Set(userID, field, raw string) error {
	if !models.IsValidSettingField(field) {
		return ErrUnknownField
	}

	var value interface{}
	switch field {
	case models.SettingCurrency:
		value = raw
	case models.SettingChartDays, models.SettingWatchlistLimit:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, raw)
		}
		value = n
	case models.SettingShowPercentages:
		value = truthyValues[strings.ToLower(strings.TrimSpace(raw))]
	}

	return s.store.SetSettingField(userID, field, value)
}
