package watchlist

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"financepal/models"
	"financepal/services/quotes"
	"financepal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeGateway struct {
	series map[string]quotes.Series
}

func (f *fakeGateway) History(ctx context.Context, symbol string, days int) quotes.Series {
	return f.series[symbol]
}

func (f *fakeGateway) Resolve(ctx context.Context, symbol string) (string, quotes.Series) {
	if s := f.series[symbol]; !s.Empty() {
		return symbol, s
	}
	if !strings.Contains(symbol, ".") {
		alt := symbol + quotes.FallbackSuffix
		if s := f.series[alt]; !s.Empty() {
			return alt, s
		}
	}
	return "", quotes.Series{}
}

func seriesOf(symbol string, closes ...float64) quotes.Series {
	s := quotes.Series{Symbol: symbol}
	base := time.Now().Unix() - int64(len(closes))*86400
	for i, c := range closes {
		s.Points = append(s.Points, quotes.Point{Date: base + int64(i)*86400, Close: decimal.NewFromFloat(c)})
	}
	return s
}

func newTestService(t *testing.T) (*Service, *fakeGateway) {
	t.Helper()
	dsn := fmt.Sprintf("file:wl_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.MigrateAll(db))
	gw := &fakeGateway{series: map[string]quotes.Series{}}
	return NewService(store.New(db), gw), gw
}

func TestAdd_RejectsISINShapedInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Add(context.Background(), "u1", "IE00BKM4GZ66")
	assert.ErrorIs(t, err, ErrLooksLikeISIN)

	// 12 characters but not the ISIN shape: falls through to validation
	_, err = svc.Add(context.Background(), "u1", "ABCDEFGHIJKL")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestAdd_ValidatesAndUppercases(t *testing.T) {
	svc, gw := newTestService(t)
	gw.series["AAPL"] = seriesOf("AAPL", 190)

	resolved, err := svc.Add(context.Background(), "u1", "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", resolved)

	_, err = svc.Add(context.Background(), "u1", "NOPE")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestAdd_FallbackSuffixResolution(t *testing.T) {
	svc, gw := newTestService(t)
	gw.series["QDV5.DE"] = seriesOf("QDV5.DE", 80)

	resolved, err := svc.Add(context.Background(), "u1", "QDV5")
	require.NoError(t, err)
	assert.Equal(t, "QDV5.DE", resolved, "the alternate symbol identity is stored")

	lines, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "QDV5.DE", lines[0].Symbol)
}

func TestAdd_SequentialDuplicateRejected(t *testing.T) {
	svc, gw := newTestService(t)
	gw.series["AAPL"] = seriesOf("AAPL", 190)

	_, err := svc.Add(context.Background(), "u1", "AAPL")
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), "u1", "AAPL")
	assert.ErrorIs(t, err, ErrAlreadyWatched)
}

func TestAdd_ConcurrentDuplicateAtLeastOneSucceeds(t *testing.T) {
	// The membership check is not atomic with the insert; under
	// concurrency both calls may pass the check. The contract is only
	// that at least one add succeeds, not mutual exclusion.
	svc, gw := newTestService(t)
	gw.series["AAPL"] = seriesOf("AAPL", 190)

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.Add(context.Background(), "u1", "AAPL")
			results <- err
		}()
	}
	var succeeded int
	for i := 0; i < 2; i++ {
		if err := <-results; err == nil {
			succeeded++
		}
	}
	assert.GreaterOrEqual(t, succeeded, 1)
}

func TestList_PercentChangeAndUnavailable(t *testing.T) {
	svc, gw := newTestService(t)
	gw.series["AAPL"] = seriesOf("AAPL", 190)
	gw.series["VOO"] = seriesOf("VOO", 190)

	_, err := svc.Add(context.Background(), "u1", "AAPL")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "u1", "VOO")
	require.NoError(t, err)

	// Two-day windows for the listing: AAPL has both days, VOO goes dark
	gw.series["AAPL"] = seriesOf("AAPL", 100, 105.5)
	gw.series["VOO"] = quotes.Series{}

	lines, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.True(t, lines[0].Available)
	assert.Equal(t, "AAPL", lines[0].Symbol)
	assert.True(t, lines[0].Price.Equal(decimal.NewFromFloat(105.5)))
	assert.True(t, lines[0].ChangePct.Equal(decimal.NewFromFloat(5.5)), "((105.5-100)/100)*100")
	assert.Contains(t, lines[0].Format(), "+5.50%")

	assert.False(t, lines[1].Available, "one bad symbol must not fail the whole listing")
	assert.Contains(t, lines[1].Format(), "price unavailable")
}

func TestList_SingleDaySeriesIsUnavailable(t *testing.T) {
	svc, gw := newTestService(t)
	gw.series["AAPL"] = seriesOf("AAPL", 190)
	_, err := svc.Add(context.Background(), "u1", "AAPL")
	require.NoError(t, err)

	// Only one close in the window: no percent change to compute
	lines, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Available)
}

func TestList_EmptyWatchlist(t *testing.T) {
	svc, _ := newTestService(t)
	lines, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRemoveAndClear(t *testing.T) {
	svc, gw := newTestService(t)
	gw.series["AAPL"] = seriesOf("AAPL", 190)
	gw.series["VOO"] = seriesOf("VOO", 400)

	_, err := svc.Add(context.Background(), "u1", "AAPL")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), "u1", "VOO")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(context.Background(), "u1", "MSFT"), ErrNotWatched)
	require.NoError(t, svc.Remove(context.Background(), "u1", "aapl"))

	count, err := svc.Clear(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
