package printing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// DocumentRenderer turns a sales document into PDF bytes. Implemented by
// the chromedp renderer and the stub fallback.
type DocumentRenderer interface {
	RenderQuote(ctx context.Context, quote *sales.Quote) ([]byte, error)
	RenderInvoice(ctx context.Context, invoice *sales.Invoice) ([]byte, error)
	RenderDeliveryNote(ctx context.Context, note *sales.DeliveryNote) ([]byte, error)
}

// PDF is a rendered document plus its download file name
type PDF struct {
	FileName string
	Content  []byte
}

// Service renders sales documents to PDF
type Service struct {
	quoteRepo    sales.QuoteRepository
	invoiceRepo  sales.InvoiceRepository
	deliveryRepo sales.DeliveryNoteRepository
	renderer     DocumentRenderer
}

// NewService creates a new printing service
func NewService(
	quoteRepo sales.QuoteRepository,
	invoiceRepo sales.InvoiceRepository,
	deliveryRepo sales.DeliveryNoteRepository,
	renderer DocumentRenderer,
) *Service {
	return &Service{
		quoteRepo:    quoteRepo,
		invoiceRepo:  invoiceRepo,
		deliveryRepo: deliveryRepo,
		renderer:     renderer,
	}
}

// QuotePDF renders a quote
func (s *Service) QuotePDF(ctx context.Context, scope shared.Scope, id uuid.UUID) (*PDF, error) {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	content, err := s.renderer.RenderQuote(ctx, quote)
	if err != nil {
		return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render PDF")
	}
	return &PDF{FileName: fmt.Sprintf("%s.pdf", quote.Number), Content: content}, nil
}

// InvoicePDF renders an invoice
func (s *Service) InvoicePDF(ctx context.Context, scope shared.Scope, id uuid.UUID) (*PDF, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	content, err := s.renderer.RenderInvoice(ctx, invoice)
	if err != nil {
		return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render PDF")
	}
	return &PDF{FileName: fmt.Sprintf("%s.pdf", invoice.Number), Content: content}, nil
}

// DeliveryNotePDF renders a delivery note
func (s *Service) DeliveryNotePDF(ctx context.Context, scope shared.Scope, id uuid.UUID) (*PDF, error) {
	note, err := s.deliveryRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	content, err := s.renderer.RenderDeliveryNote(ctx, note)
	if err != nil {
		return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render PDF")
	}
	return &PDF{FileName: fmt.Sprintf("%s.pdf", note.Number), Content: content}, nil
}
