package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubPresigner_PresignUpload(t *testing.T) {
	p := NewStubPresigner()

	url, expiresAt, err := p.PresignUpload(context.Background(), "co/doc.pdf", "application/pdf")

	require.NoError(t, err)
	assert.Equal(t, "https://storage.invalid/upload/co/doc.pdf", url)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)
}

func TestStubPresigner_RequiresKey(t *testing.T) {
	p := NewStubPresigner()

	_, _, err := p.PresignUpload(context.Background(), "", "application/pdf")
	assert.Error(t, err)

	_, _, err = p.PresignDownload(context.Background(), "", "doc.pdf")
	assert.Error(t, err)

	assert.Error(t, p.DeleteObject(context.Background(), ""))
}

func TestStubPresigner_RecordsDeletions(t *testing.T) {
	p := NewStubPresigner()

	require.NoError(t, p.DeleteObject(context.Background(), "co/a.pdf"))
	require.NoError(t, p.DeleteObject(context.Background(), "co/b.pdf"))

	assert.Equal(t, []string{"co/a.pdf", "co/b.pdf"}, p.Deleted())
}
