package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"brasserie/analytics-svc/internal/domain"
	"brasserie/internal/analytics"

	"github.com/redis/go-redis/v9"
)

// Counters reads the aggregates agg-svc maintains in Redis.
type Counters struct {
	rdb *redis.Client
}

func NewCounters(rdb *redis.Client) *Counters {
	return &Counters{rdb: rdb}
}

func (c *Counters) TopProductsOn(ctx context.Context, restaurantID int, day time.Time, limit int) ([]domain.ProductStat, error) {
	return c.topProducts(ctx, restaurantID, analytics.DailyProductsKey(day, restaurantID), limit)
}

func (c *Counters) TopProductsAllTime(ctx context.Context, restaurantID, limit int) ([]domain.ProductStat, error) {
	return c.topProducts(ctx, restaurantID, analytics.AllTimeProductsKey(restaurantID), limit)
}

func (c *Counters) topProducts(ctx context.Context, restaurantID int, key string, limit int) ([]domain.ProductStat, error) {
	ranked, err := c.rdb.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	ids := make([]string, len(ranked))
	for i, z := range ranked {
		ids[i], _ = z.Member.(string)
	}
	names, err := c.rdb.HMGet(ctx, analytics.ProductNamesKey(restaurantID), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("read product names: %w", err)
	}

	stats := make([]domain.ProductStat, 0, len(ranked))
	for i, z := range ranked {
		id, err := strconv.Atoi(ids[i])
		if err != nil {
			continue
		}
		name, _ := names[i].(string)
		stats = append(stats, domain.ProductStat{
			ProductID:    id,
			ProductName:  name,
			RestaurantID: restaurantID,
			Quantity:     int(z.Score),
		})
	}
	return stats, nil
}

// Revenue sums the daily revenue hashes for days. found is false when none
// of the days has any data.
func (c *Counters) Revenue(ctx context.Context, restaurantID int, days []time.Time) (rev domain.Revenue, found bool, err error) {
	cmds := make([]*redis.MapStringStringCmd, len(days))
	_, err = c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, day := range days {
			cmds[i] = pipe.HGetAll(ctx, analytics.RevenueKey(day, restaurantID))
		}
		return nil
	})
	if err != nil {
		return domain.Revenue{}, false, fmt.Errorf("read revenue: %w", err)
	}

	rev = domain.NewRevenue()
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		day, err := domain.ParseRevenueHash(fields)
		if err != nil {
			return domain.Revenue{}, false, fmt.Errorf("revenue for %s: %w", days[i].Format(analytics.DateLayout), err)
		}
		rev.Add(day)
		found = true
	}
	return rev, found, nil
}

func (c *Counters) Hours(ctx context.Context, restaurantID int, day time.Time) (map[int]int, error) {
	key := analytics.HoursKey(day, restaurantID)
	fields, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	counts := make(map[int]int, len(fields))
	for hour, raw := range fields {
		h, err := strconv.Atoi(hour)
		if err != nil || h < 0 || h > 23 {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("hour %s in %s: %w", hour, key, err)
		}
		counts[h] = n
	}
	return counts, nil
}
