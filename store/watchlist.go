package store

import (
	"fmt"

	"financepal/models"
)

// AddWatchlistEntry inserts a new watchlist row. Append-only: membership
// is checked by the watchlist service before calling this, non-atomically.
func (s *Store) AddWatchlistEntry(userID, symbol string) error {
	entry := models.WatchlistEntry{UserID: userID, Symbol: symbol}
	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to add watchlist entry: %w", err)
	}
	return nil
}

// ListWatchlist returns the symbols on a user's watchlist in insertion order
func (s *Store) ListWatchlist(userID string) ([]string, error) {
	var symbols []string
	err := s.db.Model(&models.WatchlistEntry{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return symbols, nil
}

// RemoveWatchlistEntry deletes one symbol from a user's watchlist and
// reports whether it was present
func (s *Store) RemoveWatchlistEntry(userID, symbol string) (bool, error) {
	res := s.db.Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&models.WatchlistEntry{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove watchlist entry: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ClearWatchlist deletes a user's entire watchlist and returns how many
// entries were removed
func (s *Store) ClearWatchlist(userID string) (int64, error) {
	res := s.db.Where("user_id = ?", userID).Delete(&models.WatchlistEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear watchlist: %w", res.Error)
	}
	return res.RowsAffected, nil
}
