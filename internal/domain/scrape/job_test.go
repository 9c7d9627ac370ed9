package scrape

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSingleJob(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("valid job", func(t *testing.T) {
		job, err := NewSingleJob(companyID, userID, "https://example.com/doc")
		require.NoError(t, err)

		assert.Equal(t, StatusQueued, job.Status)
		assert.Equal(t, ModeSingle, job.Mode)
		assert.Equal(t, 0, job.Attempts)
	})

	t.Run("invalid urls", func(t *testing.T) {
		_, err := NewSingleJob(companyID, userID, "")
		assert.Error(t, err)

		_, err = NewSingleJob(companyID, userID, "ftp://example.com")
		assert.Error(t, err)

		_, err = NewSingleJob(companyID, userID, "not a url")
		assert.Error(t, err)
	})

	t.Run("missing submitter", func(t *testing.T) {
		_, err := NewSingleJob(companyID, uuid.Nil, "https://example.com")
		assert.Error(t, err)
	})
}

func TestNewBatchJob(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("valid batch", func(t *testing.T) {
		job, err := NewBatchJob(companyID, userID, []string{"https://a.example", "https://b.example"})
		require.NoError(t, err)

		assert.Equal(t, ModeBatch, job.Mode)
		assert.Equal(t, "https://a.example", job.URL)
		assert.Len(t, job.URLs, 2)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := NewBatchJob(companyID, userID, nil)
		assert.Error(t, err)
	})

	t.Run("one bad url rejects the batch", func(t *testing.T) {
		_, err := NewBatchJob(companyID, userID, []string{"https://a.example", "nope"})
		assert.Error(t, err)
	})
}

func TestJob_Lifecycle(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		job, _ := NewSingleJob(uuid.New(), uuid.New(), "https://example.com")

		require.NoError(t, job.Start())
		assert.Equal(t, StatusRunning, job.Status)
		assert.Equal(t, 1, job.Attempts)

		require.NoError(t, job.Complete(`{"title":"doc"}`))
		assert.Equal(t, StatusCompleted, job.Status)
		assert.True(t, job.IsSettled())
		assert.NotNil(t, job.FinishedAt)
	})

	t.Run("retryable failure requeues", func(t *testing.T) {
		job, _ := NewSingleJob(uuid.New(), uuid.New(), "https://example.com")

		require.NoError(t, job.Start())
		require.NoError(t, job.Fail("upstream timeout", true))
		assert.Equal(t, StatusQueued, job.Status)
		assert.False(t, job.IsSettled())
		assert.Equal(t, "upstream timeout", job.Error)
	})

	t.Run("retries exhaust after max attempts", func(t *testing.T) {
		job, _ := NewSingleJob(uuid.New(), uuid.New(), "https://example.com")

		for attempt := 1; attempt < MaxAttempts; attempt++ {
			require.NoError(t, job.Start())
			require.NoError(t, job.Fail("rate limit", true))
			assert.Equal(t, StatusQueued, job.Status)
		}

		require.NoError(t, job.Start())
		require.NoError(t, job.Fail("rate limit", true))
		assert.Equal(t, StatusFailed, job.Status)
		assert.True(t, job.IsSettled())

		assert.Error(t, job.Start())
	})

	t.Run("permanent failure settles immediately", func(t *testing.T) {
		job, _ := NewSingleJob(uuid.New(), uuid.New(), "https://example.com")

		require.NoError(t, job.Start())
		require.NoError(t, job.Fail("404 not found", false))
		assert.Equal(t, StatusFailed, job.Status)
	})

	t.Run("invalid state transitions", func(t *testing.T) {
		job, _ := NewSingleJob(uuid.New(), uuid.New(), "https://example.com")

		assert.Error(t, job.Complete("x"))
		assert.Error(t, job.Fail("x", false))

		require.NoError(t, job.Start())
		assert.Error(t, job.Start())
	})
}
