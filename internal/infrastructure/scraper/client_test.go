package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmsuite/backend/internal/infrastructure/config"
)

func newTestClient(maxBody int64) *HTTPClient {
	return NewHTTPClient(&config.ScrapeConfig{
		RequestTimeout: 5 * time.Second,
		MaxBodyBytes:   maxBody,
		UserAgent:      "test-agent/1.0",
	}, nil)
}

func TestHTTPClient_Scrape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	document, err := newTestClient(1024).Scrape(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, document, "hello")
}

func TestHTTPClient_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	document, err := newTestClient(1024).Scrape(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "recovered", document)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(1024).Scrape(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClient_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 200)))
	}))
	defer server.Close()

	_, err := newTestClient(100).Scrape(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestHTTPClient_EmptyURL(t *testing.T) {
	_, err := newTestClient(1024).Scrape(context.Background(), "  ")
	assert.Error(t, err)
}
