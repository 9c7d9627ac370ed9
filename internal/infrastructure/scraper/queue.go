package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/crmsuite/backend/internal/domain/scrape"
)

const (
	defaultQueueKey     = "scrape:jobs"
	defaultPollInterval = 2 * time.Second
)

// RedisQueue carries queued job IDs through a Redis list so that queued
// work survives a restart and multiple instances can share one pool.
type RedisQueue struct {
	client       *redis.Client
	key          string
	pollInterval time.Duration
}

// NewRedisQueue creates a Redis-backed scrape job queue
func NewRedisQueue(client *redis.Client, key string, pollInterval time.Duration) *RedisQueue {
	if key == "" {
		key = defaultQueueKey
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &RedisQueue{
		client:       client,
		key:          key,
		pollInterval: pollInterval,
	}
}

// Enqueue pushes a job ID onto the queue
func (q *RedisQueue) Enqueue(ctx context.Context, jobID uuid.UUID) error {
	if err := q.client.LPush(ctx, q.key, jobID.String()).Err(); err != nil {
		return fmt.Errorf("failed to enqueue scrape job: %w", err)
	}
	return nil
}

// Dequeue blocks up to the poll interval for the next job ID and returns
// uuid.Nil when nothing arrived in time
func (q *RedisQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	values, err := q.client.BRPop(ctx, q.pollInterval, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to dequeue scrape job: %w", err)
	}
	if len(values) < 2 {
		return uuid.Nil, nil
	}

	jobID, err := uuid.Parse(values[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed job ID on scrape queue: %w", err)
	}
	return jobID, nil
}

// Depth returns the number of queued job IDs
func (q *RedisQueue) Depth(ctx context.Context) (int64, error) {
	depth, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read scrape queue depth: %w", err)
	}
	return depth, nil
}

var _ scrape.Queue = (*RedisQueue)(nil)
