package vault

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	t.Run("valid document", func(t *testing.T) {
		doc, err := NewDocument(companyID, userID, "contract.pdf", "application/pdf", 1024)
		require.NoError(t, err)

		assert.False(t, doc.Uploaded)
		assert.True(t, strings.HasPrefix(doc.StorageKey, "vault/"+companyID.String()+"/"))
		assert.True(t, strings.HasSuffix(doc.StorageKey, "/contract.pdf"))
	})

	t.Run("path components are stripped", func(t *testing.T) {
		doc, err := NewDocument(companyID, userID, "../../etc/passwd", "text/plain", 10)
		require.NoError(t, err)
		assert.Equal(t, "passwd", doc.FileName)
	})

	t.Run("default content type", func(t *testing.T) {
		doc, err := NewDocument(companyID, userID, "blob.bin", "", 10)
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", doc.ContentType)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := NewDocument(companyID, userID, "x.pdf", "application/pdf", 0)
		assert.Error(t, err)

		_, err = NewDocument(companyID, userID, "x.pdf", "application/pdf", MaxFileSize+1)
		assert.Error(t, err)
	})

	t.Run("missing uploader", func(t *testing.T) {
		_, err := NewDocument(companyID, uuid.Nil, "x.pdf", "application/pdf", 1)
		assert.Error(t, err)
	})
}

func TestDocument_ConfirmUpload(t *testing.T) {
	doc, _ := NewDocument(uuid.New(), uuid.New(), "contract.pdf", "application/pdf", 1024)

	require.NoError(t, doc.ConfirmUpload())
	assert.True(t, doc.Uploaded)
	assert.Error(t, doc.ConfirmUpload())
}

func TestDocument_AttachTo(t *testing.T) {
	doc, _ := NewDocument(uuid.New(), uuid.New(), "contract.pdf", "application/pdf", 1024)

	invoiceID := uuid.New()
	require.NoError(t, doc.AttachTo("invoice", invoiceID))
	assert.Equal(t, "invoice", doc.EntityKind)
	assert.Equal(t, invoiceID, *doc.EntityID)

	assert.Error(t, doc.AttachTo("", uuid.New()))
	assert.Error(t, doc.AttachTo("deal", uuid.Nil))
}
