package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftQuote(t *testing.T) *Quote {
	t.Helper()
	quote, err := NewQuote(uuid.New(), "QUO-2026-00001")
	require.NoError(t, err)
	_, err = quote.AddItem(uuid.New(), "Widget", "SKU-001", "pcs",
		decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(19))
	require.NoError(t, err)
	return quote
}

func TestNewQuote(t *testing.T) {
	quote, err := NewQuote(uuid.New(), "QUO-2026-00001")
	require.NoError(t, err)
	assert.True(t, quote.IsDraft())
	assert.Equal(t, 0, quote.ItemCount())

	_, err = NewQuote(uuid.New(), "")
	assert.Error(t, err)
}

func TestQuote_ItemsAndTotals(t *testing.T) {
	quote := newDraftQuote(t)

	assert.Equal(t, "200.00", quote.Subtotal.StringFixed(2))
	assert.Equal(t, "238.00", quote.Total.StringFixed(2))

	require.NoError(t, quote.SetDiscountPercent(decimal.NewFromInt(10)))
	assert.Equal(t, "20.00", quote.DiscountAmount.StringFixed(2))
	assert.Equal(t, "218.00", quote.Total.StringFixed(2))

	itemID := quote.Items[0].ID
	require.NoError(t, quote.UpdateItemQuantity(itemID, decimal.NewFromInt(4)))
	assert.Equal(t, "400.00", quote.Subtotal.StringFixed(2))

	require.NoError(t, quote.RemoveItem(itemID))
	assert.True(t, quote.Total.IsZero())
}

func TestQuote_SendAndDecide(t *testing.T) {
	t.Run("cannot send empty quote", func(t *testing.T) {
		quote, _ := NewQuote(uuid.New(), "QUO-2026-00002")
		assert.Error(t, quote.Send())
	})

	t.Run("accept", func(t *testing.T) {
		quote := newDraftQuote(t)
		require.NoError(t, quote.Send())
		assert.Equal(t, QuoteStatusSent, quote.Status)
		assert.NotNil(t, quote.SentAt)

		require.NoError(t, quote.Accept())
		assert.Equal(t, QuoteStatusAccepted, quote.Status)

		assert.Error(t, quote.Reject())
	})

	t.Run("sent quotes are frozen", func(t *testing.T) {
		quote := newDraftQuote(t)
		require.NoError(t, quote.Send())

		_, err := quote.AddItem(uuid.New(), "Other", "SKU-002", "pcs",
			decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
		assert.Error(t, quote.SetDiscountPercent(decimal.NewFromInt(5)))
	})

	t.Run("expire", func(t *testing.T) {
		quote := newDraftQuote(t)
		require.NoError(t, quote.Send())
		require.NoError(t, quote.Expire())
		assert.Equal(t, QuoteStatusExpired, quote.Status)
	})
}

func TestQuote_ConvertToOrder(t *testing.T) {
	quote := newDraftQuote(t)
	require.NoError(t, quote.SetDiscountPercent(decimal.NewFromInt(5)))
	contactID := uuid.New()
	quote.SetContact(&contactID)
	require.NoError(t, quote.Send())

	t.Run("only accepted quotes convert", func(t *testing.T) {
		_, err := quote.ConvertToOrder("ORD-2026-00001")
		assert.Error(t, err)
	})

	require.NoError(t, quote.Accept())

	order, err := quote.ConvertToOrder("ORD-2026-00001")
	require.NoError(t, err)

	assert.Equal(t, quote.CompanyID, order.CompanyID)
	assert.Equal(t, quote.ItemCount(), order.ItemCount())
	assert.Equal(t, quote.Total.StringFixed(2), order.Total.StringFixed(2))
	require.NotNil(t, order.SourceQuoteID)
	assert.Equal(t, quote.ID, *order.SourceQuoteID)
	require.NotNil(t, order.ContactID)
	assert.Equal(t, contactID, *order.ContactID)
	require.NotNil(t, quote.ConvertedOrder)
	assert.Equal(t, order.ID, *quote.ConvertedOrder)

	t.Run("cannot convert twice", func(t *testing.T) {
		_, err := quote.ConvertToOrder("ORD-2026-00002")
		assert.Error(t, err)
	})
}

func TestQuote_IsExpired(t *testing.T) {
	quote := newDraftQuote(t)
	assert.False(t, quote.IsExpired(time.Now()))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, quote.SetValidUntil(&past))
	assert.True(t, quote.IsExpired(time.Now()))
}
