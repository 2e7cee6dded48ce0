package alerts

import (
	"context"
	"fmt"
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
	return "", quotes.Series{}
}

func newTestService(t *testing.T) (*Service, *fakeGateway) {
	t.Helper()
	dsn := fmt.Sprintf("file:al_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.MigrateAll(db))
	gw := &fakeGateway{series: map[string]quotes.Series{}}
	return NewService(store.New(db), gw), gw
}

func oneDay(symbol string, close float64) quotes.Series {
	return quotes.Series{
		Symbol: symbol,
		Points: []quotes.Point{{Date: time.Now().Unix(), Close: decimal.NewFromFloat(close)}},
	}
}

func TestAdd_ValidatesConditionAndSymbol(t *testing.T) {
	svc, gw := newTestService(t)
	gw.series["AAPL"] = oneDay("AAPL", 190)

	err := svc.Add(context.Background(), "u1", "AAPL", "sideways", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrInvalidCondition)

	err = svc.Add(context.Background(), "u1", "NOPE", "above", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrUnknownSymbol)

	// Condition keyword is case-insensitive, symbol is uppercased
	err = svc.Add(context.Background(), "u1", "aapl", "ABOVE", decimal.NewFromInt(100))
	require.NoError(t, err)

	list, err := svc.List("u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "AAPL", list[0].Symbol)
	assert.Equal(t, models.ConditionAbove, list[0].Condition)
}

func TestRemove_NotFoundIsSurfaced(t *testing.T) {
	svc, gw := newTestService(t)
	gw.series["AAPL"] = oneDay("AAPL", 190)

	require.NoError(t, svc.Add(context.Background(), "u1", "AAPL", "below", decimal.NewFromInt(150)))

	err := svc.Remove(context.Background(), "u1", "AAPL", decimal.NewFromInt(999))
	assert.ErrorIs(t, err, ErrNoMatchingAlert)

	require.NoError(t, svc.Remove(context.Background(), "u1", "aapl", decimal.NewFromInt(150)))

	list, err := svc.List("u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClear_ReportsCount(t *testing.T) {
	svc, gw := newTestService(t)
	gw.series["AAPL"] = oneDay("AAPL", 190)
	gw.series["TSLA"] = oneDay("TSLA", 250)

	require.NoError(t, svc.Add(context.Background(), "u1", "AAPL", "above", decimal.NewFromInt(200)))
	require.NoError(t, svc.Add(context.Background(), "u1", "TSLA", "below", decimal.NewFromInt(200)))

	count, err := svc.Clear(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = svc.Clear(context.Background(), "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count, "nothing left to clear")
}

func TestAdd_DuplicateAlertsAreAllowed(t *testing.T) {
	// Alert inserts are append-only with no dedup; callers own any
	// pre-checks (documented gap, see DESIGN.md)
	svc, gw := newTestService(t)
	gw.series["AAPL"] = oneDay("AAPL", 190)

	require.NoError(t, svc.Add(context.Background(), "u1", "AAPL", "above", decimal.NewFromInt(200)))
	require.NoError(t, svc.Add(context.Background(), "u1", "AAPL", "above", decimal.NewFromInt(200)))

	list, err := svc.List("u1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
