package catalog

import (
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeProduct = "Product"

const (
	EventTypeProductCreated = "ProductCreated"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID, product.CompanyID),
		ProductID:       product.ID,
		Code:            product.Code,
		Name:            product.Name,
	}
}
