package storage_test

import (
	"context"
	"testing"
	"time"

	"brasserie/analytics-svc/internal/domain"
	"brasserie/analytics-svc/internal/storage"
	"brasserie/internal/analytics"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march1 = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

func setupCounters(t *testing.T) (*storage.Counters, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return storage.NewCounters(rdb), mr
}

func TestCounters_TopProducts(t *testing.T) {
	counters, mr := setupCounters(t)
	ctx := context.Background()

	daily := analytics.DailyProductsKey(march1, 1)
	_, err := mr.ZAdd(daily, 2, "10")
	require.NoError(t, err)
	_, err = mr.ZAdd(daily, 5, "11")
	require.NoError(t, err)
	_, err = mr.ZAdd(analytics.AllTimeProductsKey(1), 40, "10")
	require.NoError(t, err)
	mr.HSet(analytics.ProductNamesKey(1), "10", "Croque-monsieur", "11", "Café")

	top, err := counters.TopProductsOn(ctx, 1, march1, 10)
	require.NoError(t, err)
	assert.Equal(t, []domain.ProductStat{
		{ProductID: 11, ProductName: "Café", RestaurantID: 1, Quantity: 5},
		{ProductID: 10, ProductName: "Croque-monsieur", RestaurantID: 1, Quantity: 2},
	}, top)

	limited, err := counters.TopProductsOn(ctx, 1, march1, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	allTime, err := counters.TopProductsAllTime(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 40, allTime[0].Quantity)

	none, err := counters.TopProductsOn(ctx, 2, march1, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCounters_Revenue(t *testing.T) {
	counters, mr := setupCounters(t)
	ctx := context.Background()

	mr.HSet(analytics.RevenueKey(march1, 1), "total", "33.68", "tips", "2", "orders", "1", "method:ESPECES", "33.68")
	mr.HSet(analytics.RevenueKey(march1.AddDate(0, 0, -2), 1), "total", "18.7", "orders", "1", "method:CARTE_BANCAIRE", "18.7")

	rev, found, err := counters.Revenue(ctx, 1, domain.PeriodWeek.Days(march1))
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, decimal.RequireFromString("52.38").Equal(rev.Total))
	assert.Equal(t, 2, rev.Orders)

	_, found, err = counters.Revenue(ctx, 2, domain.PeriodWeek.Days(march1))
	require.NoError(t, err)
	assert.False(t, found)

	mr.HSet(analytics.RevenueKey(march1, 3), "total", "not-a-number")
	_, _, err = counters.Revenue(ctx, 3, []time.Time{march1})
	assert.Error(t, err)
}

func TestCounters_Hours(t *testing.T) {
	counters, mr := setupCounters(t)
	mr.HSet(analytics.HoursKey(march1, 1), "12", "4", "20", "7", "bogus", "1")

	hours, err := counters.Hours(context.Background(), 1, march1)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{12: 4, 20: 7}, hours)
}

func TestCounters_RedisDown(t *testing.T) {
	counters, mr := setupCounters(t)
	mr.Close()

	_, err := counters.TopProductsAllTime(context.Background(), 1, 10)
	assert.Error(t, err)
	_, _, err = counters.Revenue(context.Background(), 1, []time.Time{march1})
	assert.Error(t, err)
}
