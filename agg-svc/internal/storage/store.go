package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"brasserie/internal/analytics"
	"brasserie/internal/events"

	"github.com/redis/go-redis/v9"
)

// Store folds order events into the Redis counters read by analytics-svc.
type Store struct {
	rdb *redis.Client
	loc *time.Location
	ttl time.Duration
}

func NewStore(rdb *redis.Client, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{
		rdb: rdb,
		loc: loc,
		ttl: analytics.KeyTTL,
	}
}

// claim marks e as counted and reports whether this call did it. Kafka
// delivers at least once, so replays must not be counted twice.
func (s *Store) claim(ctx context.Context, e events.OrderEvent) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, analytics.ProcessedKey(string(e.Type), e.OrderID), 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s for order %d: %w", e.Type, e.OrderID, err)
	}
	return ok, nil
}

func (s *Store) release(ctx context.Context, e events.OrderEvent) {
	s.rdb.Del(ctx, analytics.ProcessedKey(string(e.Type), e.OrderID))
}

func (s *Store) apply(ctx context.Context, e events.OrderEvent, fn func(redis.Pipeliner) error) error {
	fresh, err := s.claim(ctx, e)
	if err != nil || !fresh {
		return err
	}
	if _, err := s.rdb.TxPipelined(ctx, fn); err != nil {
		s.release(ctx, e)
		return fmt.Errorf("aggregate %s for order %d: %w", e.Type, e.OrderID, err)
	}
	return nil
}

func (s *Store) RecordOrder(ctx context.Context, e events.OrderEvent) error {
	at := e.Timestamp.In(s.loc)
	daily := analytics.DailyProductsKey(at, e.RestaurantID)
	allTime := analytics.AllTimeProductsKey(e.RestaurantID)
	names := analytics.ProductNamesKey(e.RestaurantID)
	hours := analytics.HoursKey(at, e.RestaurantID)

	return s.apply(ctx, e, func(pipe redis.Pipeliner) error {
		for _, item := range e.Items {
			member := strconv.Itoa(item.ProductID)
			pipe.ZIncrBy(ctx, daily, float64(item.Quantity), member)
			pipe.ZIncrBy(ctx, allTime, float64(item.Quantity), member)
			pipe.HSet(ctx, names, member, item.ProductName)
		}
		pipe.HIncrBy(ctx, hours, strconv.Itoa(at.Hour()), 1)
		pipe.Expire(ctx, daily, s.ttl)
		pipe.Expire(ctx, hours, s.ttl)
		return nil
	})
}

func (s *Store) RecordPayment(ctx context.Context, e events.OrderEvent) error {
	revenue := analytics.RevenueKey(e.Timestamp.In(s.loc), e.RestaurantID)

	return s.apply(ctx, e, func(pipe redis.Pipeliner) error {
		pipe.HIncrByFloat(ctx, revenue, analytics.FieldTotal, e.Amount)
		pipe.HIncrByFloat(ctx, revenue, analytics.FieldTips, e.Tip)
		pipe.HIncrByFloat(ctx, revenue, analytics.MethodField(e.PaymentMethod), e.Amount)
		pipe.HIncrBy(ctx, revenue, analytics.FieldOrders, 1)
		pipe.Expire(ctx, revenue, s.ttl)
		return nil
	})
}
