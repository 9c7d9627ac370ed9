package sales

import (
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind identifies which sales document a line item belongs to
type DocumentKind string

const (
	DocumentKindQuote        DocumentKind = "quote"
	DocumentKindOrder        DocumentKind = "order"
	DocumentKindInvoice      DocumentKind = "invoice"
	DocumentKindDeliveryNote DocumentKind = "delivery_note"
)

// LineItem is a single position on a quote, order, invoice, or delivery
// note. Product name and code are snapshots taken when the line is added;
// later product edits do not rewrite issued documents.
type LineItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DocumentID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_line_items_document"`
	DocumentType    string          `gorm:"type:varchar(20);not null;index:idx_line_items_document"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	ProductCode     string          `gorm:"type:varchar(50);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Unit            string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	VATRate         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	NetAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	VATAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GrossAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Position        int             `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "line_items"
}

// NewLineItem creates a new line item for a document
func NewLineItem(documentID uuid.UUID, kind DocumentKind, productID uuid.UUID, productName, productCode, unit string, quantity, unitPrice decimal.Decimal) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if strings.TrimSpace(productName) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if unit == "" {
		unit = "pcs"
	}

	now := time.Now()
	item := &LineItem{
		ID:              uuid.New(),
		DocumentID:      documentID,
		DocumentType:    string(kind),
		ProductID:       productID,
		ProductName:     productName,
		ProductCode:     productCode,
		Quantity:        quantity,
		Unit:            unit,
		UnitPrice:       unitPrice,
		DiscountPercent: decimal.Zero,
		VATRate:         decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	item.recalculate()

	return item, nil
}

// UpdateQuantity updates the quantity and recomputes the line amounts
func (i *LineItem) UpdateQuantity(quantity decimal.Decimal) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	i.recalculate()

	return nil
}

// UpdateUnitPrice updates the unit price and recomputes the line amounts
func (i *LineItem) UpdateUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.UnitPrice = unitPrice
	i.UpdatedAt = time.Now()
	i.recalculate()

	return nil
}

// SetDiscount sets the per-line discount percentage
func (i *LineItem) SetDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100")
	}

	i.DiscountPercent = percent
	i.UpdatedAt = time.Now()
	i.recalculate()

	return nil
}

// SetVATRate sets the line's VAT rate percentage
func (i *LineItem) SetVATRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_VAT_RATE", "VAT rate must be between 0 and 100")
	}

	i.VATRate = rate
	i.UpdatedAt = time.Now()
	i.recalculate()

	return nil
}

// recalculate computes net, vat, and gross amounts for the line.
// net = quantity x unit price x (1 - discount/100), rounded to 2dp
// vat = net x rate/100, gross = net + vat
func (i *LineItem) recalculate() {
	hundred := decimal.NewFromInt(100)
	factor := hundred.Sub(i.DiscountPercent).Div(hundred)
	i.NetAmount = i.Quantity.Mul(i.UnitPrice).Mul(factor).Round(2)
	i.VATAmount = i.NetAmount.Mul(i.VATRate).Div(hundred).Round(2)
	i.GrossAmount = i.NetAmount.Add(i.VATAmount)
}

func validateQuantity(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return nil
}
