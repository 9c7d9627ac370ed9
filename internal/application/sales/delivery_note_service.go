package sales

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryNoteService handles delivery notes. Notes are created by
// fulfilling an order; this service covers the rest of their lifecycle.
type DeliveryNoteService struct {
	deliveryRepo sales.DeliveryNoteRepository
	eventBus     shared.EventPublisher
}

// NewDeliveryNoteService creates a new DeliveryNoteService
func NewDeliveryNoteService(deliveryRepo sales.DeliveryNoteRepository, eventBus shared.EventPublisher) *DeliveryNoteService {
	return &DeliveryNoteService{
		deliveryRepo: deliveryRepo,
		eventBus:     eventBus,
	}
}

// GetByID retrieves a delivery note by ID within the scope
func (s *DeliveryNoteService) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*DeliveryNoteResponse, error) {
	note, err := s.deliveryRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// List retrieves delivery notes with filtering and pagination
func (s *DeliveryNoteService) List(ctx context.Context, scope shared.Scope, filter ListFilter) ([]DeliveryNoteResponse, int64, error) {
	domainFilter := buildFilter(filter)

	notes, err := s.deliveryRepo.FindAll(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.deliveryRepo.Count(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDeliveryNoteResponses(notes), total, nil
}

// ListByOrder retrieves the delivery notes produced by an order
func (s *DeliveryNoteService) ListByOrder(ctx context.Context, scope shared.Scope, orderID uuid.UUID) ([]DeliveryNoteResponse, error) {
	notes, err := s.deliveryRepo.FindByOrder(ctx, scope, orderID)
	if err != nil {
		return nil, err
	}
	return ToDeliveryNoteResponses(notes), nil
}

// Update updates a draft delivery note's header fields
func (s *DeliveryNoteService) Update(ctx context.Context, scope shared.Scope, id uuid.UUID, req UpdateDeliveryNoteRequest) (*DeliveryNoteResponse, error) {
	note, err := s.deliveryRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		note.SetContact(req.ContactID)
	}
	if req.ShippingAddress != nil {
		if err := note.SetShippingAddress(*req.ShippingAddress); err != nil {
			return nil, err
		}
	}

	if err := s.deliveryRepo.SaveWithLock(ctx, note); err != nil {
		return nil, err
	}

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// UpdateItemQuantity changes a line's quantity on a draft delivery note
func (s *DeliveryNoteService) UpdateItemQuantity(ctx context.Context, scope shared.Scope, id, itemID uuid.UUID, req UpdateItemQuantityRequest) (*DeliveryNoteResponse, error) {
	note, err := s.deliveryRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := note.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.deliveryRepo.SaveWithLock(ctx, note); err != nil {
		return nil, err
	}

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// Issue marks a draft delivery note as issued for shipping
func (s *DeliveryNoteService) Issue(ctx context.Context, scope shared.Scope, id uuid.UUID) (*DeliveryNoteResponse, error) {
	return s.transition(ctx, scope, id, (*sales.DeliveryNote).Issue)
}

// MarkDelivered marks an issued delivery note as delivered
func (s *DeliveryNoteService) MarkDelivered(ctx context.Context, scope shared.Scope, id uuid.UUID) (*DeliveryNoteResponse, error) {
	return s.transition(ctx, scope, id, (*sales.DeliveryNote).MarkDelivered)
}

func (s *DeliveryNoteService) transition(ctx context.Context, scope shared.Scope, id uuid.UUID, apply func(*sales.DeliveryNote) error) (*DeliveryNoteResponse, error) {
	note, err := s.deliveryRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := apply(note); err != nil {
		return nil, err
	}
	if err := s.deliveryRepo.SaveWithLock(ctx, note); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventBus, note)

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// Delete deletes a draft delivery note within the scope
func (s *DeliveryNoteService) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	note, err := s.deliveryRepo.FindByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if !note.IsDraft() {
		return shared.NewDomainError("NOT_DRAFT", "Only draft delivery notes can be deleted")
	}

	return s.deliveryRepo.Delete(ctx, scope, id)
}
