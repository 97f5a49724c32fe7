package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SettlementCache keeps a marker per paid order so a repeated payment is
// refused before it reaches the database.
type SettlementCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSettlementCache(client *redis.Client, ttl time.Duration) *SettlementCache {
	return &SettlementCache{Client: client, TTL: ttl}
}

func (c *SettlementCache) key(orderID int) string {
	return "settled:order:" + strconv.Itoa(orderID)
}

func (c *SettlementCache) IsSettled(ctx context.Context, orderID int) (bool, error) {
	res, err := c.Client.Exists(ctx, c.key(orderID)).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *SettlementCache) MarkSettled(ctx context.Context, orderID int) error {
	return c.Client.Set(ctx, c.key(orderID), "1", c.TTL).Err()
}
