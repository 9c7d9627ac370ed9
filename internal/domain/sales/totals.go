package sales

import (
	"github.com/shopspring/decimal"
)

// Totals holds the computed financial summary of a sales document
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`        // sum of line net amounts
	DiscountAmount decimal.Decimal `json:"discount_amount"` // document-level discount on the subtotal
	VATTotal       decimal.Decimal `json:"vat_total"`       // sum of line VAT amounts
	Total          decimal.Decimal `json:"total"`           // subtotal - discount + vat
}

// CalculateTotals computes document totals from its line items and the
// document-level discount percentage. The document discount reduces the
// net subtotal only; VAT stays the sum of per-line VAT amounts.
func CalculateTotals(items []LineItem, discountPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	vatTotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.NetAmount)
		vatTotal = vatTotal.Add(item.VATAmount)
	}

	discount := subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100)).Round(2)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		VATTotal:       vatTotal,
		Total:          subtotal.Sub(discount).Add(vatTotal),
	}
}
