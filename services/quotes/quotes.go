// Package quotes wraps the external market-data provider behind a single
// failure shape: a lookup either yields an ordered price series or an
// empty one. Provider and network errors never surface as Go errors;
// callers decide whether emptiness means a validation failure (symbol
// creation) or a silent skip (scheduled re-evaluation).
package quotes

import (
	"context"

	"github.com/shopspring/decimal"
)

// Point is one daily close in a price series
type Point struct {
	Date  int64 // unix seconds
	Close decimal.Decimal
}

// Series is an ordered-by-date sequence of daily closes for one symbol.
// A zero-value Series means the provider had no data for the symbol.
type Series struct {
	Symbol string
	Points []Point
}

// Empty reports whether the provider returned no usable data
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Latest returns the most recent close in the series.
// Only meaningful on a non-empty series.
func (s Series) Latest() decimal.Decimal {
	return s.Points[len(s.Points)-1].Close
}

// Previous returns the close preceding the latest one
func (s Series) Previous() decimal.Decimal {
	return s.Points[len(s.Points)-2].Close
}

// Gateway is the market-data lookup consumed by the services and the
// alert scheduler.
type Gateway interface {
	// History returns up to days of daily closes for symbol, oldest first,
	// or an empty series when the provider has no data or fails.
	History(ctx context.Context, symbol string, days int) Series

	// Resolve validates a symbol using the fallback-suffix policy: if the
	// primary lookup is empty and the symbol carries no exchange suffix,
	// one retry is made with the alternate suffix appended. It returns the
	// symbol that actually resolved together with its series; an empty
	// series means both lookups failed.
	Resolve(ctx context.Context, symbol string) (string, Series)
}
