package sales

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/catalog"
	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// OrderService handles the order lifecycle: drafting, confirming,
// fulfilling into delivery notes, and cancelling.
type OrderService struct {
	orderRepo    sales.OrderRepository
	deliveryRepo sales.DeliveryNoteRepository
	productRepo  catalog.ProductRepository
	sequences    sales.NumberSequenceRepository
	eventBus     shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo sales.OrderRepository,
	deliveryRepo sales.DeliveryNoteRepository,
	productRepo catalog.ProductRepository,
	sequences sales.NumberSequenceRepository,
	eventBus shared.EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		deliveryRepo: deliveryRepo,
		productRepo:  productRepo,
		sequences:    sequences,
		eventBus:     eventBus,
	}
}

// Create creates a new draft order with an allocated document number
func (s *OrderService) Create(ctx context.Context, scope shared.Scope, req CreateOrderRequest) (*OrderResponse, error) {
	if scope.All {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Creating an order requires a company scope")
	}

	number, err := allocateNumber(ctx, s.sequences, scope.CompanyID, sales.DocumentKindOrder)
	if err != nil {
		return nil, err
	}

	order, err := sales.NewOrder(scope.CompanyID, number)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		order.SetContact(req.ContactID)
	}
	if err := addRequestedItems(ctx, s.productRepo, scope.CompanyID, req.Items, func(line resolvedLine) error {
		_, err := order.AddItem(line.ProductID, line.ProductName, line.ProductCode, line.Unit, line.Quantity, line.UnitPrice, line.DiscountPercent, line.VATRate)
		return err
	}); err != nil {
		return nil, err
	}
	if !req.DiscountPercent.IsZero() {
		if err := order.SetDiscountPercent(req.DiscountPercent); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID within the scope
func (s *OrderService) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, scope shared.Scope, filter ListFilter) ([]OrderResponse, int64, error) {
	domainFilter := buildFilter(filter)

	var orders []sales.Order
	var err error
	if filter.Status != "" {
		orders, err = s.orderRepo.FindByStatus(ctx, scope, sales.OrderStatus(filter.Status), domainFilter)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, scope, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// Update updates a draft order's header fields
func (s *OrderService) Update(ctx context.Context, scope shared.Scope, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		order.SetContact(req.ContactID)
	}
	if req.DiscountPercent != nil {
		if err := order.SetDiscountPercent(*req.DiscountPercent); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// AddItem appends a line to a draft order
func (s *OrderService) AddItem(ctx context.Context, scope shared.Scope, id uuid.UUID, req AddItemRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	line, err := resolveLine(ctx, s.productRepo, order.CompanyID, LineItemRequest(req))
	if err != nil {
		return nil, err
	}
	if _, err := order.AddItem(line.ProductID, line.ProductName, line.ProductCode, line.Unit, line.Quantity, line.UnitPrice, line.DiscountPercent, line.VATRate); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateItemQuantity changes a line's quantity on a draft order
func (s *OrderService) UpdateItemQuantity(ctx context.Context, scope shared.Scope, id, itemID uuid.UUID, req UpdateItemQuantityRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// RemoveItem removes a line from a draft order
func (s *OrderService) RemoveItem(ctx context.Context, scope shared.Scope, id, itemID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Confirm confirms a draft order
func (s *OrderService) Confirm(ctx context.Context, scope shared.Scope, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := order.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Fulfill fulfills a confirmed order and creates the accompanying
// delivery note. Both documents are saved.
func (s *OrderService) Fulfill(ctx context.Context, scope shared.Scope, id uuid.UUID, req FulfillOrderRequest) (*DeliveryNoteResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	number, err := allocateNumber(ctx, s.sequences, order.CompanyID, sales.DocumentKindDeliveryNote)
	if err != nil {
		return nil, err
	}

	address := valueobject.NewEditorDoc()
	if req.ShippingAddress != nil {
		address = *req.ShippingAddress
	}
	note, err := order.Fulfill(number, address)
	if err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, note); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, order)
	publishEvents(ctx, s.eventBus, note)

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// Cancel cancels a draft or confirmed order
func (s *OrderService) Cancel(ctx context.Context, scope shared.Scope, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete deletes a draft order within the scope
func (s *OrderService) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if !order.IsDraft() {
		return shared.NewDomainError("NOT_DRAFT", "Only draft orders can be deleted")
	}

	return s.orderRepo.Delete(ctx, scope, id)
}
