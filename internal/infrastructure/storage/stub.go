package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/crmsuite/backend/internal/application/vault"
)

// StubPresigner is a development fallback used when no object storage is
// configured. URLs it hands out point nowhere; deletions are recorded so
// tests can assert on them.
type StubPresigner struct {
	BaseURL string
	Expiry  time.Duration

	mu      sync.Mutex
	deleted []string
}

var _ vault.Presigner = (*StubPresigner)(nil)

// NewStubPresigner creates a new StubPresigner
func NewStubPresigner() *StubPresigner {
	return &StubPresigner{
		BaseURL: "https://storage.invalid",
		Expiry:  15 * time.Minute,
	}
}

// PresignUpload returns a fake upload URL
func (p *StubPresigner) PresignUpload(ctx context.Context, key, contentType string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	return p.BaseURL + "/upload/" + key, time.Now().Add(p.Expiry), nil
}

// PresignDownload returns a fake download URL
func (p *StubPresigner) PresignDownload(ctx context.Context, key, fileName string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	return p.BaseURL + "/download/" + key, time.Now().Add(p.Expiry), nil
}

// DeleteObject records the key and succeeds
func (p *StubPresigner) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	p.mu.Lock()
	p.deleted = append(p.deleted, key)
	p.mu.Unlock()
	return nil
}

// Deleted returns the keys deleted so far
func (p *StubPresigner) Deleted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.deleted...)
}
