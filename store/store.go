package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup targets a record that does not exist.
var ErrNotFound = errors.New("record not found")

// Store provides durable CRUD over the four per-user collections:
// alerts, watchlist entries, settings and seen-user markers. Every
// method is a single short-lived database call; no transaction spans
// multiple logical steps, so check-then-act sequences built on top of
// the Store are not atomic (see DESIGN.md).
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an open gorm connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
