package sales

import (
	"testing"

	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftNote(t *testing.T) *DeliveryNote {
	t.Helper()
	note, err := NewDeliveryNote(uuid.New(), "DLV-2026-00001", uuid.New())
	require.NoError(t, err)
	_, err = note.AddItem(uuid.New(), "Widget", "SKU-001", "pcs", decimal.NewFromInt(3))
	require.NoError(t, err)
	return note
}

func TestNewDeliveryNote(t *testing.T) {
	_, err := NewDeliveryNote(uuid.New(), "", uuid.New())
	assert.Error(t, err)

	_, err = NewDeliveryNote(uuid.New(), "DLV-2026-00001", uuid.Nil)
	assert.Error(t, err)
}

func TestDeliveryNote_Lifecycle(t *testing.T) {
	note := newDraftNote(t)

	t.Run("cannot deliver before issuing", func(t *testing.T) {
		assert.Error(t, note.MarkDelivered())
	})

	require.NoError(t, note.SetShippingAddress(valueobject.NewEditorDocFromText("Main St 1")))
	require.NoError(t, note.Issue())
	assert.Equal(t, DeliveryNoteStatusIssued, note.Status)
	assert.NotNil(t, note.IssuedAt)

	t.Run("issued notes are frozen", func(t *testing.T) {
		_, err := note.AddItem(uuid.New(), "Other", "SKU-002", "pcs", decimal.NewFromInt(1))
		assert.Error(t, err)
		assert.Error(t, note.SetShippingAddress(valueobject.NewEditorDoc()))
	})

	require.NoError(t, note.MarkDelivered())
	assert.Equal(t, DeliveryNoteStatusDelivered, note.Status)
	assert.NotNil(t, note.DeliveredAt)

	assert.Error(t, note.MarkDelivered())
}

func TestDeliveryNote_EmptyCannotIssue(t *testing.T) {
	note, err := NewDeliveryNote(uuid.New(), "DLV-2026-00002", uuid.New())
	require.NoError(t, err)
	assert.Error(t, note.Issue())
}
