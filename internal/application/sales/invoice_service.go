package sales

import (
	"context"
	"time"

	"github.com/crmsuite/backend/internal/domain/catalog"
	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceService handles the invoice lifecycle: drafting, sending,
// payment tracking, and cancellation.
type InvoiceService struct {
	invoiceRepo sales.InvoiceRepository
	productRepo catalog.ProductRepository
	sequences   sales.NumberSequenceRepository
	eventBus    shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo sales.InvoiceRepository,
	productRepo catalog.ProductRepository,
	sequences sales.NumberSequenceRepository,
	eventBus shared.EventPublisher,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		sequences:   sequences,
		eventBus:    eventBus,
	}
}

// Create creates a new draft invoice with an allocated document number
func (s *InvoiceService) Create(ctx context.Context, scope shared.Scope, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if scope.All {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Creating an invoice requires a company scope")
	}

	number, err := allocateNumber(ctx, s.sequences, scope.CompanyID, sales.DocumentKindInvoice)
	if err != nil {
		return nil, err
	}

	invoice, err := sales.NewInvoice(scope.CompanyID, number)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		invoice.SetContact(req.ContactID)
	}
	if err := addRequestedItems(ctx, s.productRepo, scope.CompanyID, req.Items, func(line resolvedLine) error {
		_, err := invoice.AddItem(line.ProductID, line.ProductName, line.ProductCode, line.Unit, line.Quantity, line.UnitPrice, line.DiscountPercent, line.VATRate)
		return err
	}); err != nil {
		return nil, err
	}
	if !req.DiscountPercent.IsZero() {
		if err := invoice.SetDiscountPercent(req.DiscountPercent); err != nil {
			return nil, err
		}
	}
	if req.IssueDate != nil || req.DueDate != nil {
		if err := invoice.SetDates(req.IssueDate, req.DueDate); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// pageSlice applies filter pagination to an in-memory result set. The
// overdue listing is computed against due dates rather than the status
// column, so its page is cut here instead of in SQL.
func pageSlice(invoices []sales.Invoice, page, pageSize int) []sales.Invoice {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return invoices
	}
	start := (page - 1) * pageSize
	if start >= len(invoices) {
		return nil
	}
	end := start + pageSize
	if end > len(invoices) {
		end = len(invoices)
	}
	return invoices[start:end]
}

// GetByID retrieves an invoice by ID within the scope
func (s *InvoiceService) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination. Filtering by
// the computed overdue status matches against due dates instead of the
// stored status column.
func (s *InvoiceService) List(ctx context.Context, scope shared.Scope, filter ListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := buildFilter(filter)

	if filter.Status == string(sales.InvoiceStatusOverdue) {
		invoices, err := s.invoiceRepo.FindOverdue(ctx, scope, time.Now())
		if err != nil {
			return nil, 0, err
		}
		total := int64(len(invoices))
		return ToInvoiceResponses(pageSlice(invoices, domainFilter.Page, domainFilter.PageSize)), total, nil
	}

	var invoices []sales.Invoice
	var err error
	if filter.Status != "" {
		invoices, err = s.invoiceRepo.FindByStatus(ctx, scope, sales.InvoiceStatus(filter.Status), domainFilter)
	} else {
		invoices, err = s.invoiceRepo.FindAll(ctx, scope, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceResponses(invoices), total, nil
}

// Update updates a draft invoice's header fields
func (s *InvoiceService) Update(ctx context.Context, scope shared.Scope, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		invoice.SetContact(req.ContactID)
	}
	if req.DiscountPercent != nil {
		if err := invoice.SetDiscountPercent(*req.DiscountPercent); err != nil {
			return nil, err
		}
	}
	if req.IssueDate != nil || req.DueDate != nil {
		issueDate := invoice.IssueDate
		dueDate := invoice.DueDate
		if req.IssueDate != nil {
			issueDate = req.IssueDate
		}
		if req.DueDate != nil {
			dueDate = req.DueDate
		}
		if err := invoice.SetDates(issueDate, dueDate); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// AddItem appends a line to a draft invoice
func (s *InvoiceService) AddItem(ctx context.Context, scope shared.Scope, id uuid.UUID, req AddItemRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	line, err := resolveLine(ctx, s.productRepo, invoice.CompanyID, LineItemRequest(req))
	if err != nil {
		return nil, err
	}
	if _, err := invoice.AddItem(line.ProductID, line.ProductName, line.ProductCode, line.Unit, line.Quantity, line.UnitPrice, line.DiscountPercent, line.VATRate); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// UpdateItemQuantity changes a line's quantity on a draft invoice
func (s *InvoiceService) UpdateItemQuantity(ctx context.Context, scope shared.Scope, id, itemID uuid.UUID, req UpdateItemQuantityRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RemoveItem removes a line from a draft invoice
func (s *InvoiceService) RemoveItem(ctx context.Context, scope shared.Scope, id, itemID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Send issues a draft invoice
func (s *InvoiceService) Send(ctx context.Context, scope shared.Scope, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.Send(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// RecordPayment records a payment against a sent invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, scope shared.Scope, id uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	if _, err := invoice.RecordPayment(req.Amount, paidAt, sales.PaymentMethod(req.Method), req.Reference); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Cancel cancels an unpaid invoice
func (s *InvoiceService) Cancel(ctx context.Context, scope shared.Scope, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.Cancel(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete deletes a draft invoice within the scope
func (s *InvoiceService) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if !invoice.IsDraft() {
		return shared.NewDomainError("NOT_DRAFT", "Only draft invoices can be deleted")
	}

	return s.invoiceRepo.Delete(ctx, scope, id)
}
