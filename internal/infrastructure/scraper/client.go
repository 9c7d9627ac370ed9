package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/crmsuite/backend/internal/domain/scrape"
	"github.com/crmsuite/backend/internal/infrastructure/config"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultMaxBodyBytes   = 5 * 1024 * 1024
	defaultUserAgent      = "crmsuite-scraper/1.0"

	// clientAttempts is the per-call retry ceiling for transient upstream
	// failures. Durable retries are the job's own attempt counter; this
	// only smooths over short blips so a single hiccup does not burn a
	// whole job attempt.
	clientAttempts = 3
	backoffBase    = 250 * time.Millisecond
)

// HTTPClient fetches documents from arbitrary URLs. It implements the
// scrape application service's Scraper port.
type HTTPClient struct {
	httpClient   *http.Client
	maxBodyBytes int64
	userAgent    string
	logger       *zap.Logger
}

// NewHTTPClient creates an upstream fetch client from the scrape config
func NewHTTPClient(cfg *config.ScrapeConfig, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := defaultRequestTimeout
	maxBody := int64(defaultMaxBodyBytes)
	userAgent := defaultUserAgent
	if cfg != nil {
		if cfg.RequestTimeout > 0 {
			timeout = cfg.RequestTimeout
		}
		if cfg.MaxBodyBytes > 0 {
			maxBody = cfg.MaxBodyBytes
		}
		if cfg.UserAgent != "" {
			userAgent = cfg.UserAgent
		}
	}

	return &HTTPClient{
		httpClient:   &http.Client{Timeout: timeout},
		maxBodyBytes: maxBody,
		userAgent:    userAgent,
		logger:       logger,
	}
}

// Scrape fetches the document at url. Transient failures are retried in
// place with exponential backoff before the error is handed back to the
// caller.
func (c *HTTPClient) Scrape(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("scrape url is empty")
	}

	var lastErr error
	for attempt := 1; attempt <= clientAttempts; attempt++ {
		document, err := c.fetch(ctx, url)
		if err == nil {
			return document, nil
		}
		lastErr = err

		if !scrape.IsRetryableError(err) || attempt == clientAttempts {
			break
		}

		delay := backoffBase << (attempt - 1)
		c.logger.Debug("retrying scrape fetch",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}
	return "", lastErr
}

func (c *HTTPClient) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build scrape request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// the status line text keeps codes like 429/503 visible to the
		// retry classifier
		return "", fmt.Errorf("upstream returned %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return "", fmt.Errorf("response body exceeds %d bytes", c.maxBodyBytes)
	}

	return string(body), nil
}
