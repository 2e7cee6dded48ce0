package store

import (
	"fmt"

	"financepal/models"

	"github.com/shopspring/decimal"
)

// AddAlert inserts a new alert row. Append-only: no dedup is applied,
// the alert service is responsible for any pre-checks.
func (s *Store) AddAlert(alert *models.Alert) error {
	if err := s.db.Create(alert).Error; err != nil {
		return fmt.Errorf("failed to add alert: %w", err)
	}
	return nil
}

// ListAlertsForUser returns all alerts belonging to one user
func (s *Store) ListAlertsForUser(userID string) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := s.db.Where("user_id = ?", userID).Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// ListAllAlerts returns every alert in the store, across all users.
// Used by the scheduler at the start of each evaluation cycle.
func (s *Store) ListAllAlerts() ([]models.Alert, error) {
	var alerts []models.Alert
	if err := s.db.Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// RemoveAlert deletes alerts matching (user_id, symbol, target) and
// reports whether anything was deleted. Condition is intentionally not
// part of the key; alerts differing only by condition are removed
// together.
func (s *Store) RemoveAlert(userID, symbol string, target decimal.Decimal) (bool, error) {
	res := s.db.Where("user_id = ? AND symbol = ? AND target = ?", userID, symbol, target).
		Delete(&models.Alert{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove alert: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ClearAlerts deletes all alerts for a user and returns how many were removed
func (s *Store) ClearAlerts(userID string) (int64, error) {
	res := s.db.Where("user_id = ?", userID).Delete(&models.Alert{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear alerts: %w", res.Error)
	}
	return res.RowsAffected, nil
}
