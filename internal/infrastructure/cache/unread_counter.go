// Package cache holds Redis-backed caches shared across API instances.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/crmsuite/backend/internal/application/notification"
)

const unreadCounterPrefix = "notifications:unread:"

// RedisUnreadCounter caches per-user unread notification counts in Redis
// so the badge poll stays off the database. Entries expire on their own;
// writes invalidate eagerly.
type RedisUnreadCounter struct {
	client *redis.Client
	ttl    time.Duration
}

var _ notification.UnreadCounter = (*RedisUnreadCounter)(nil)

// NewRedisUnreadCounter creates a counter cache with the given TTL.
// A non-positive TTL defaults to five minutes.
func NewRedisUnreadCounter(client *redis.Client, ttl time.Duration) *RedisUnreadCounter {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisUnreadCounter{client: client, ttl: ttl}
}

// Get returns the cached count; ok is false on a cache miss
func (c *RedisUnreadCounter) Get(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read unread count: %w", err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// Treat a corrupt entry as a miss; the next Set overwrites it.
		return 0, false, nil
	}
	return count, true, nil
}

// Set stores the count
func (c *RedisUnreadCounter) Set(ctx context.Context, userID uuid.UUID, count int64) error {
	if err := c.client.Set(ctx, c.key(userID), count, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache unread count: %w", err)
	}
	return nil
}

// Invalidate drops the cached count
func (c *RedisUnreadCounter) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate unread count: %w", err)
	}
	return nil
}

func (c *RedisUnreadCounter) key(userID uuid.UUID) string {
	return unreadCounterPrefix + userID.String()
}
