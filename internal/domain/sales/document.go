package sales

import (
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document is the shared base of all line-item documents (quote, order,
// invoice, delivery note): numbering, contact reference, line items, and
// the recalculated totals.
type Document struct {
	shared.CompanyAggregateRoot
	Number          string          `gorm:"type:varchar(30);not null;index"`
	ContactID       *uuid.UUID      `gorm:"type:uuid;index"`
	Items           []LineItem      `gorm:"polymorphic:Document"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	VATTotal        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'EUR'"`
}

func newDocument(companyID uuid.UUID, number string) Document {
	return Document{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Number:               number,
		Items:                make([]LineItem, 0),
		DiscountPercent:      decimal.Zero,
		Currency:             "EUR",
	}
}

// addItem appends a line item and recalculates the totals. Callers pass
// their concrete document kind so polymorphic persistence works.
func (d *Document) addItem(kind DocumentKind, productID uuid.UUID, productName, productCode, unit string, quantity, unitPrice, discountPercent, vatRate decimal.Decimal) (*LineItem, error) {
	item, err := NewLineItem(d.ID, kind, productID, productName, productCode, unit, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	if err := item.SetDiscount(discountPercent); err != nil {
		return nil, err
	}
	if err := item.SetVATRate(vatRate); err != nil {
		return nil, err
	}
	item.Position = len(d.Items) + 1

	d.Items = append(d.Items, *item)
	d.recalculateTotals()
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return item, nil
}

// updateItemQuantity changes the quantity of an existing line item
func (d *Document) updateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	for idx := range d.Items {
		if d.Items[idx].ID == itemID {
			if err := d.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			d.recalculateTotals()
			d.UpdatedAt = time.Now()
			d.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Line item not found")
}

// removeItem removes a line item and recalculates the totals
func (d *Document) removeItem(itemID uuid.UUID) error {
	for idx := range d.Items {
		if d.Items[idx].ID == itemID {
			d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
			for pos := range d.Items {
				d.Items[pos].Position = pos + 1
			}
			d.recalculateTotals()
			d.UpdatedAt = time.Now()
			d.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Line item not found")
}

// setDiscountPercent sets the document-level discount percentage
func (d *Document) setDiscountPercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100")
	}

	d.DiscountPercent = percent
	d.recalculateTotals()
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// recalculateTotals recomputes the document totals from its items
func (d *Document) recalculateTotals() {
	totals := CalculateTotals(d.Items, d.DiscountPercent)
	d.Subtotal = totals.Subtotal
	d.DiscountAmount = totals.DiscountAmount
	d.VATTotal = totals.VATTotal
	d.Total = totals.Total
}

// SetContact links the document to a contact
func (d *Document) SetContact(contactID *uuid.UUID) {
	d.ContactID = contactID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// ItemCount returns the number of line items
func (d *Document) ItemCount() int {
	return len(d.Items)
}

// FindItem returns the line item with the given ID, or nil
func (d *Document) FindItem(itemID uuid.UUID) *LineItem {
	for idx := range d.Items {
		if d.Items[idx].ID == itemID {
			return &d.Items[idx]
		}
	}
	return nil
}
