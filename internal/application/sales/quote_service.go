package sales

import (
	"context"
	"time"

	"github.com/crmsuite/backend/internal/domain/catalog"
	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteService handles the quote lifecycle: drafting, sending, deciding,
// and converting accepted quotes into orders.
type QuoteService struct {
	quoteRepo   sales.QuoteRepository
	orderRepo   sales.OrderRepository
	productRepo catalog.ProductRepository
	sequences   sales.NumberSequenceRepository
	eventBus    shared.EventPublisher
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	quoteRepo sales.QuoteRepository,
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	sequences sales.NumberSequenceRepository,
	eventBus shared.EventPublisher,
) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		sequences:   sequences,
		eventBus:    eventBus,
	}
}

// Create creates a new draft quote with an allocated document number
func (s *QuoteService) Create(ctx context.Context, scope shared.Scope, req CreateQuoteRequest) (*QuoteResponse, error) {
	if scope.All {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Creating a quote requires a company scope")
	}

	number, err := allocateNumber(ctx, s.sequences, scope.CompanyID, sales.DocumentKindQuote)
	if err != nil {
		return nil, err
	}

	quote, err := sales.NewQuote(scope.CompanyID, number)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		quote.SetContact(req.ContactID)
	}
	if err := addRequestedItems(ctx, s.productRepo, scope.CompanyID, req.Items, func(line resolvedLine) error {
		_, err := quote.AddItem(line.ProductID, line.ProductName, line.ProductCode, line.Unit, line.Quantity, line.UnitPrice, line.DiscountPercent, line.VATRate)
		return err
	}); err != nil {
		return nil, err
	}
	if !req.DiscountPercent.IsZero() {
		if err := quote.SetDiscountPercent(req.DiscountPercent); err != nil {
			return nil, err
		}
	}
	if req.ValidUntil != nil {
		if err := quote.SetValidUntil(req.ValidUntil); err != nil {
			return nil, err
		}
	}
	if req.HeaderNotes != nil || req.FooterNotes != nil {
		header := quote.HeaderNotes
		footer := quote.FooterNotes
		if req.HeaderNotes != nil {
			header = *req.HeaderNotes
		}
		if req.FooterNotes != nil {
			footer = *req.FooterNotes
		}
		if err := quote.SetNotes(header, footer); err != nil {
			return nil, err
		}
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// GetByID retrieves a quote by ID within the scope
func (s *QuoteService) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// List retrieves quotes with filtering and pagination
func (s *QuoteService) List(ctx context.Context, scope shared.Scope, filter ListFilter) ([]QuoteResponse, int64, error) {
	domainFilter := buildFilter(filter)

	var quotes []sales.Quote
	var err error
	if filter.Status != "" {
		quotes, err = s.quoteRepo.FindByStatus(ctx, scope, sales.QuoteStatus(filter.Status), domainFilter)
	} else {
		quotes, err = s.quoteRepo.FindAll(ctx, scope, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.quoteRepo.Count(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToQuoteResponses(quotes), total, nil
}

// Update updates a draft quote's header fields
func (s *QuoteService) Update(ctx context.Context, scope shared.Scope, id uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		quote.SetContact(req.ContactID)
	}
	if req.DiscountPercent != nil {
		if err := quote.SetDiscountPercent(*req.DiscountPercent); err != nil {
			return nil, err
		}
	}
	if req.ValidUntil != nil {
		if err := quote.SetValidUntil(req.ValidUntil); err != nil {
			return nil, err
		}
	}
	if req.HeaderNotes != nil || req.FooterNotes != nil {
		header := quote.HeaderNotes
		footer := quote.FooterNotes
		if req.HeaderNotes != nil {
			header = *req.HeaderNotes
		}
		if req.FooterNotes != nil {
			footer = *req.FooterNotes
		}
		if err := quote.SetNotes(header, footer); err != nil {
			return nil, err
		}
	}

	if err := s.quoteRepo.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// AddItem appends a line to a draft quote
func (s *QuoteService) AddItem(ctx context.Context, scope shared.Scope, id uuid.UUID, req AddItemRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	line, err := resolveLine(ctx, s.productRepo, quote.CompanyID, LineItemRequest(req))
	if err != nil {
		return nil, err
	}
	if _, err := quote.AddItem(line.ProductID, line.ProductName, line.ProductCode, line.Unit, line.Quantity, line.UnitPrice, line.DiscountPercent, line.VATRate); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// UpdateItemQuantity changes a line's quantity on a draft quote
func (s *QuoteService) UpdateItemQuantity(ctx context.Context, scope shared.Scope, id, itemID uuid.UUID, req UpdateItemQuantityRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := quote.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// RemoveItem removes a line from a draft quote
func (s *QuoteService) RemoveItem(ctx context.Context, scope shared.Scope, id, itemID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := quote.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Send marks a draft quote as sent
func (s *QuoteService) Send(ctx context.Context, scope shared.Scope, id uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, scope, id, (*sales.Quote).Send)
}

// Accept marks a sent quote as accepted
func (s *QuoteService) Accept(ctx context.Context, scope shared.Scope, id uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, scope, id, (*sales.Quote).Accept)
}

// Reject marks a sent quote as rejected
func (s *QuoteService) Reject(ctx context.Context, scope shared.Scope, id uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, scope, id, (*sales.Quote).Reject)
}

func (s *QuoteService) transition(ctx context.Context, scope shared.Scope, id uuid.UUID, apply func(*sales.Quote) error) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := apply(quote); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Convert converts an accepted quote into a draft order. Both documents
// are saved; the quote keeps a reference to the order it produced.
func (s *QuoteService) Convert(ctx context.Context, scope shared.Scope, id uuid.UUID) (*OrderResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	number, err := allocateNumber(ctx, s.sequences, quote.CompanyID, sales.DocumentKindOrder)
	if err != nil {
		return nil, err
	}

	order, err := quote.ConvertToOrder(number)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, quote)
	publishEvents(ctx, s.eventBus, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// ExpireStale marks sent quotes whose validity has lapsed as expired.
// It returns the number of quotes expired; intended for a periodic job.
func (s *QuoteService) ExpireStale(ctx context.Context, scope shared.Scope, now time.Time) (int, error) {
	quotes, err := s.quoteRepo.FindExpiring(ctx, scope, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for idx := range quotes {
		quote := &quotes[idx]
		if quote.Status != sales.QuoteStatusSent || !quote.IsExpired(now) {
			continue
		}
		if err := quote.Expire(); err != nil {
			continue
		}
		if err := s.quoteRepo.SaveWithLock(ctx, quote); err != nil {
			return expired, err
		}
		publishEvents(ctx, s.eventBus, quote)
		expired++
	}

	return expired, nil
}

// Delete deletes a draft quote within the scope
func (s *QuoteService) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	quote, err := s.quoteRepo.FindByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if !quote.IsDraft() {
		return shared.NewDomainError("NOT_DRAFT", "Only draft quotes can be deleted")
	}

	return s.quoteRepo.Delete(ctx, scope, id)
}

// resolvedLine is a line item request joined with its product snapshot
type resolvedLine struct {
	ProductID       uuid.UUID
	ProductName     string
	ProductCode     string
	Unit            string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	VATRate         decimal.Decimal
}

// resolveLine loads the product behind a line request and fills in its
// snapshot fields, defaulting price and VAT rate from the catalog.
func resolveLine(ctx context.Context, productRepo catalog.ProductRepository, companyID uuid.UUID, req LineItemRequest) (resolvedLine, error) {
	product, err := productRepo.FindByID(ctx, shared.ScopeCompany(companyID), req.ProductID)
	if err != nil {
		return resolvedLine{}, err
	}
	if !product.Active {
		return resolvedLine{}, shared.NewDomainError("PRODUCT_INACTIVE", "Product "+product.Code+" is inactive")
	}

	line := resolvedLine{
		ProductID:       product.ID,
		ProductName:     product.Name,
		ProductCode:     product.Code,
		Unit:            product.Unit,
		Quantity:        req.Quantity,
		UnitPrice:       product.UnitPrice,
		DiscountPercent: req.DiscountPercent,
		VATRate:         product.VATRate,
	}
	if req.UnitPrice != nil {
		line.UnitPrice = *req.UnitPrice
	}
	if req.VATRate != nil {
		line.VATRate = *req.VATRate
	}

	return line, nil
}

func addRequestedItems(ctx context.Context, productRepo catalog.ProductRepository, companyID uuid.UUID, items []LineItemRequest, add func(resolvedLine) error) error {
	for _, item := range items {
		line, err := resolveLine(ctx, productRepo, companyID, item)
		if err != nil {
			return err
		}
		if err := add(line); err != nil {
			return err
		}
	}
	return nil
}

// allocateNumber draws the next document number for the current year
func allocateNumber(ctx context.Context, sequences sales.NumberSequenceRepository, companyID uuid.UUID, kind sales.DocumentKind) (string, error) {
	year := time.Now().Year()
	seq, err := sequences.Next(ctx, companyID, kind, year)
	if err != nil {
		return "", err
	}
	return sales.FormatDocumentNumber(kind, year, seq), nil
}

func publishEvents(ctx context.Context, bus shared.EventPublisher, aggregate interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if bus == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		_ = bus.Publish(ctx, event)
	}
	aggregate.ClearDomainEvents()
}

func buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
