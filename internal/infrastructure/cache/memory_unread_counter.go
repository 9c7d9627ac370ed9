package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/application/notification"
)

// MemoryUnreadCounter is the single-instance fallback used when Redis is
// not configured. Entries expire lazily on read.
type MemoryUnreadCounter struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

var _ notification.UnreadCounter = (*MemoryUnreadCounter)(nil)

// NewMemoryUnreadCounter creates an in-process counter cache.
// A non-positive TTL defaults to five minutes.
func NewMemoryUnreadCounter(ttl time.Duration) *MemoryUnreadCounter {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MemoryUnreadCounter{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached count; ok is false on a miss or expired entry
func (c *MemoryUnreadCounter) Get(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, userID)
		c.mu.Unlock()
		return 0, false, nil
	}
	return entry.count, true, nil
}

// Set stores the count
func (c *MemoryUnreadCounter) Set(ctx context.Context, userID uuid.UUID, count int64) error {
	c.mu.Lock()
	c.entries[userID] = memoryEntry{count: count, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate drops the cached count
func (c *MemoryUnreadCounter) Invalidate(ctx context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
	return nil
}
