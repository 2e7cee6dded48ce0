package alerts

import (
	"context"
	"errors"
	"strings"

	"financepal/models"
	"financepal/services/quotes"
	"financepal/store"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidCondition is returned for a condition keyword other than
	// above or below
	ErrInvalidCondition = errors.New("condition must be above or below")
	// ErrUnknownSymbol is returned when the symbol has no price data
	ErrUnknownSymbol = errors.New("could not validate symbol")
	// ErrNoMatchingAlert is returned when removal finds nothing to delete
	ErrNoMatchingAlert = errors.New("no matching alert")
)

// Service manages a user's price alerts. Evaluation and notification
// belong to the scheduler; this service only covers the request/response
// operations.
type Service struct {
	store  *store.Store
	quotes quotes.Gateway
}

// NewService creates an alert service
func NewService(st *store.Store, gateway quotes.Gateway) *Service {
	return &Service{store: st, quotes: gateway}
}

// Add validates and stores a new alert. Symbol existence is checked with
// a plain one-day lookup; unlike watchlist adds, no fallback suffix is
// applied here.
func (s *Service) Add(ctx context.Context, userID, symbol, condition string, target decimal.Decimal) error {
	condition = strings.ToLower(strings.TrimSpace(condition))
	if !models.IsValidCondition(condition) {
		return ErrInvalidCondition
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if s.quotes.History(ctx, symbol, 1).Empty() {
		return ErrUnknownSymbol
	}

	return s.store.AddAlert(&models.Alert{
		UserID:    userID,
		Symbol:    symbol,
		Condition: condition,
		Target:    target,
	})
}

// List returns the user's active alerts
func (s *Service) List(userID string) ([]models.Alert, error) {
	return s.store.ListAlertsForUser(userID)
}

// Remove deletes the alert(s) matching (user, symbol, target)
func (s *Service) Remove(ctx context.Context, userID, symbol string, target decimal.Decimal) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	removed, err := s.store.RemoveAlert(userID, symbol, target)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNoMatchingAlert
	}
	return nil
}

// Clear deletes all of the user's alerts and returns how many existed
func (s *Service) Clear(ctx context.Context, userID string) (int64, error) {
	return s.store.ClearAlerts(userID)
}
