package printing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmsuite/backend/internal/domain/sales"
)

// htmlCaptureConverter records the HTML it is asked to convert
type htmlCaptureConverter struct {
	html string
	err  error
}

func (c *htmlCaptureConverter) Convert(ctx context.Context, html string) ([]byte, error) {
	c.html = html
	if c.err != nil {
		return nil, c.err
	}
	return []byte("%PDF-1.4 test"), nil
}

func buildQuote(t *testing.T) *sales.Quote {
	t.Helper()

	quote, err := sales.NewQuote(uuid.New(), "QUO-2026-00001")
	require.NoError(t, err)
	_, err = quote.AddItem(uuid.New(), "Widget Pro", "WID-1", "pcs",
		decimal.NewFromInt(3), decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(19))
	require.NoError(t, err)
	return quote
}

func TestHTMLRenderer_RenderQuote(t *testing.T) {
	converter := &htmlCaptureConverter{}
	renderer := NewHTMLRenderer(converter)

	pdf, err := renderer.RenderQuote(context.Background(), buildQuote(t))

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Contains(t, converter.html, "Quote QUO-2026-00001")
	assert.Contains(t, converter.html, "Widget Pro")
	assert.Contains(t, converter.html, "300.00 EUR")
	assert.Contains(t, converter.html, "19.0%")
}

func TestHTMLRenderer_RenderInvoice(t *testing.T) {
	converter := &htmlCaptureConverter{}
	renderer := NewHTMLRenderer(converter)

	invoice, err := sales.NewInvoice(uuid.New(), "INV-2026-00042")
	require.NoError(t, err)
	_, err = invoice.AddItem(uuid.New(), "Support plan", "SUP-1", "pcs",
		decimal.NewFromInt(1), decimal.NewFromInt(500), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	issue := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 0, 30)
	require.NoError(t, invoice.SetDates(&issue, &due))

	_, err = renderer.RenderInvoice(context.Background(), invoice)

	require.NoError(t, err)
	assert.Contains(t, converter.html, "Invoice INV-2026-00042")
	assert.Contains(t, converter.html, "01 Aug 2026")
	assert.Contains(t, converter.html, "31 Aug 2026")
}

func TestHTMLRenderer_RenderDeliveryNote(t *testing.T) {
	converter := &htmlCaptureConverter{}
	renderer := NewHTMLRenderer(converter)

	note, err := sales.NewDeliveryNote(uuid.New(), "DLV-2026-00003", uuid.New())
	require.NoError(t, err)
	_, err = note.AddItem(uuid.New(), "Widget Pro", "WID-1", "pcs", decimal.NewFromInt(2))
	require.NoError(t, err)

	_, err = renderer.RenderDeliveryNote(context.Background(), note)

	require.NoError(t, err)
	assert.Contains(t, converter.html, "Delivery note DLV-2026-00003")
	// delivery notes carry no prices
	assert.False(t, strings.Contains(converter.html, "Total"))
}

func TestHTMLRenderer_ConverterFailure(t *testing.T) {
	converter := &htmlCaptureConverter{err: errors.New("chrome crashed")}
	renderer := NewHTMLRenderer(converter)

	_, err := renderer.RenderQuote(context.Background(), buildQuote(t))
	assert.Error(t, err)
}

func TestStubConverter(t *testing.T) {
	stub := NewStubConverter()

	pdf, err := stub.Convert(context.Background(), "<html></html>")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-1.4"))

	_, err = stub.Convert(context.Background(), "  ")
	assert.Error(t, err)
}
