package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUnreadCounter_SetAndGet(t *testing.T) {
	counter := NewMemoryUnreadCounter(time.Minute)
	userID := uuid.New()

	require.NoError(t, counter.Set(context.Background(), userID, 3))

	count, ok, err := counter.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), count)
}

func TestMemoryUnreadCounter_MissForUnknownUser(t *testing.T) {
	counter := NewMemoryUnreadCounter(time.Minute)

	_, ok, err := counter.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryUnreadCounter_ExpiredEntryIsAMiss(t *testing.T) {
	counter := NewMemoryUnreadCounter(time.Minute)
	userID := uuid.New()
	require.NoError(t, counter.Set(context.Background(), userID, 5))

	counter.mu.Lock()
	counter.entries[userID] = memoryEntry{count: 5, expiresAt: time.Now().Add(-time.Second)}
	counter.mu.Unlock()

	_, ok, err := counter.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryUnreadCounter_Invalidate(t *testing.T) {
	counter := NewMemoryUnreadCounter(time.Minute)
	userID := uuid.New()
	require.NoError(t, counter.Set(context.Background(), userID, 2))

	require.NoError(t, counter.Invalidate(context.Background(), userID))

	_, ok, err := counter.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, ok)
}
