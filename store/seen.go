package store

import (
	"fmt"

	"financepal/models"

	"gorm.io/gorm/clause"
)

// HasSeenUser reports whether the first-contact marker exists for a user
func (s *Store) HasSeenUser(userID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.SeenUser{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check seen user: %w", err)
	}
	return count > 0, nil
}

// MarkSeenUser records the first-contact marker. Idempotent under retry:
// a second mark for the same user is a no-op.
func (s *Store) MarkSeenUser(userID string) error {
	seen := models.SeenUser{UserID: userID}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&seen).Error
	if err != nil {
		return fmt.Errorf("failed to mark seen user: %w", err)
	}
	return nil
}
