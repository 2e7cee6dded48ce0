package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"financepal/services/quotes"
	"financepal/store"

	"github.com/shopspring/decimal"
)

var (
	// ErrLooksLikeISIN is returned for identifiers shaped like an ISIN
	// instead of a ticker symbol
	ErrLooksLikeISIN = errors.New("identifier looks like an ISIN, not a ticker symbol")
	// ErrUnknownSymbol is returned when neither the primary nor the
	// fallback-suffix lookup finds any price data
	ErrUnknownSymbol = errors.New("could not validate symbol")
	// ErrAlreadyWatched is returned when the symbol is already on the watchlist
	ErrAlreadyWatched = errors.New("symbol already in watchlist")
	// ErrNotWatched is returned when removing a symbol that is not on the watchlist
	ErrNotWatched = errors.New("symbol not in watchlist")
)

// Service manages a user's set of tracked symbols
type Service struct {
	store  *store.Store
	quotes quotes.Gateway
}

// NewService creates a watchlist service
func NewService(st *store.Store, gateway quotes.Gateway) *Service {
	return &Service{store: st, quotes: gateway}
}

// Add validates a symbol and appends it to the user's watchlist. The
// returned string is the symbol that actually resolved, which may carry
// the alternate-exchange suffix. Membership is checked before the insert
// but not atomically with it.
func (s *Service) Add(ctx context.Context, userID, symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if isISINShaped(symbol) {
		return "", ErrLooksLikeISIN
	}

	resolved, series := s.quotes.Resolve(ctx, symbol)
	if series.Empty() {
		return "", ErrUnknownSymbol
	}

	current, err := s.store.ListWatchlist(userID)
	if err != nil {
		return "", err
	}
	for _, existing := range current {
		if existing == resolved {
			return resolved, ErrAlreadyWatched
		}
	}

	if err := s.store.AddWatchlistEntry(userID, resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

// PriceLine is one watchlist row with its latest price and day-over-day
// percent change. Available is false when the price lookup failed for
// this symbol only.
type PriceLine struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	ChangePct decimal.Decimal `json:"change_pct"`
	Available bool            `json:"available"`
}

// Format renders the line the way the watchlist listing shows it
func (l PriceLine) Format() string {
	if !l.Available {
		return fmt.Sprintf("• `%s` — price unavailable", l.Symbol)
	}
	return fmt.Sprintf("• `%s` — $%s (%+.2f%%)", l.Symbol, l.Price.StringFixed(2), l.ChangePct.InexactFloat64())
}

// List returns the user's watchlist with prices, fetching every symbol's
// two-day window concurrently and joining all results before returning.
// A failed lookup yields an unavailable line, never an error.
func (s *Service) List(ctx context.Context, userID string) ([]PriceLine, error) {
	symbols, err := s.store.ListWatchlist(userID)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	lines := make([]PriceLine, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			lines[i] = s.priceLine(ctx, symbol)
		}(i, symbol)
	}
	wg.Wait()
	return lines, nil
}

// priceLine builds one listing row from a two-day close window
func (s *Service) priceLine(ctx context.Context, symbol string) PriceLine {
	series := s.quotes.History(ctx, symbol, 2)
	if len(series.Points) < 2 {
		return PriceLine{Symbol: symbol}
	}
	latest := series.Latest()
	prev := series.Previous()
	if prev.IsZero() {
		return PriceLine{Symbol: symbol}
	}
	change := latest.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100))
	return PriceLine{
		Symbol:    symbol,
		Price:     latest,
		ChangePct: change,
		Available: true,
	}
}

// Remove deletes one symbol from the watchlist
func (s *Service) Remove(ctx context.Context, userID, symbol string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	removed, err := s.store.RemoveWatchlistEntry(userID, symbol)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotWatched
	}
	return nil
}

// Clear empties the user's watchlist and returns how many entries were removed
func (s *Service) Clear(ctx context.Context, userID string) (int64, error) {
	return s.store.ClearWatchlist(userID)
}

// isISINShaped matches the fixed ISIN shape: exactly 12 characters,
// 2 leading letters, 10 trailing digits
func isISINShaped(symbol string) bool {
	if len(symbol) != 12 {
		return false
	}
	for _, r := range symbol[:2] {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	for _, r := range symbol[2:] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
