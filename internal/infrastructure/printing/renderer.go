package printing

import (
	"context"

	"github.com/crmsuite/backend/internal/application/printing"
	"github.com/crmsuite/backend/internal/domain/sales"
)

// PDFConverter turns rendered HTML into PDF bytes
type PDFConverter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// HTMLRenderer implements the document renderer by filling the embedded
// templates and handing the HTML to a converter.
type HTMLRenderer struct {
	converter PDFConverter
}

var _ printing.DocumentRenderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer creates a renderer backed by the given converter
func NewHTMLRenderer(converter PDFConverter) *HTMLRenderer {
	return &HTMLRenderer{converter: converter}
}

// RenderQuote renders a quote to PDF
func (r *HTMLRenderer) RenderQuote(ctx context.Context, quote *sales.Quote) ([]byte, error) {
	html, err := renderTemplate("quote", quote)
	if err != nil {
		return nil, err
	}
	return r.converter.Convert(ctx, html)
}

// RenderInvoice renders an invoice to PDF
func (r *HTMLRenderer) RenderInvoice(ctx context.Context, invoice *sales.Invoice) ([]byte, error) {
	html, err := renderTemplate("invoice", invoice)
	if err != nil {
		return nil, err
	}
	return r.converter.Convert(ctx, html)
}

// RenderDeliveryNote renders a delivery note to PDF
func (r *HTMLRenderer) RenderDeliveryNote(ctx context.Context, note *sales.DeliveryNote) ([]byte, error) {
	html, err := renderTemplate("delivery_note", note)
	if err != nil {
		return nil, err
	}
	return r.converter.Convert(ctx, html)
}
