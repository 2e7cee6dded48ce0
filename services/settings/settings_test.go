package settings

import (
	"fmt"
	"testing"

	"financepal/models"
	"financepal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:set_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.MigrateAll(db))
	return NewService(store.New(db))
}

func TestGet_DefaultsWithoutRow(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, 30, got.ChartDays)
	assert.True(t, got.ShowPercentages)
	assert.Equal(t, 10, got.WatchlistLimit)

	// Reading defaults must not create a row
	_, err = svc.store.GetSettings("u1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSet_RoundTrips(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Set("u1", "chart_days", "45"))
	got, err := svc.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, 45, got.ChartDays)

	require.NoError(t, svc.Set("u1", "show_percentages", "no"))
	got, err = svc.Get("u1")
	require.NoError(t, err)
	assert.False(t, got.ShowPercentages)

	require.NoError(t, svc.Set("u1", "currency", "EUR"))
	require.NoError(t, svc.Set("u1", "watchlist_limit", "5"))
	got, err = svc.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, 5, got.WatchlistLimit)
	assert.Equal(t, 45, got.ChartDays, "earlier field writes survive later upserts")
}

func TestSet_BooleanTruthyMatching(t *testing.T) {
	svc := newTestService(t)

	for _, raw := range []string{"true", "TRUE", "1", "yes", "Yes"} {
		require.NoError(t, svc.Set("u1", "show_percentages", raw))
		got, err := svc.Get("u1")
		require.NoError(t, err)
		assert.True(t, got.ShowPercentages, "%q should parse truthy", raw)
	}
	for _, raw := range []string{"false", "0", "no", "anything else"} {
		require.NoError(t, svc.Set("u1", "show_percentages", raw))
		got, err := svc.Get("u1")
		require.NoError(t, err)
		assert.False(t, got.ShowPercentages, "%q should parse falsy", raw)
	}
}

func TestSet_ValidationFailures(t *testing.T) {
	svc := newTestService(t)

	assert.ErrorIs(t, svc.Set("u1", "theme", "dark"), ErrUnknownField)
	assert.ErrorIs(t, svc.Set("u1", "chart_days", "a lot"), ErrInvalidValue)
	assert.ErrorIs(t, svc.Set("u1", "watchlist_limit", "3.5"), ErrInvalidValue)
}
