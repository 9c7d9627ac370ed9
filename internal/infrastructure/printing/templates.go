// Package printing renders sales documents to PDF. HTML is produced from
// embedded templates and handed to a converter (Chrome or the stub).
package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
)

// templateFuncs are the formatting helpers available to the document templates
var templateFuncs = template.FuncMap{
	"money":   formatMoney,
	"date":    formatDate,
	"percent": formatPercent,
	"qty":     formatQuantity,
	"richtext": func(doc valueobject.EditorDoc) template.HTML {
		// EditorDoc.HTML escapes text nodes itself
		return template.HTML(doc.HTML())
	},
}

func formatMoney(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func formatPercent(value decimal.Decimal) string {
	if value.IsZero() {
		return "0%"
	}
	return value.StringFixed(1) + "%"
}

func formatQuantity(qty decimal.Decimal) string {
	// strip trailing zeros so "2.000" renders as "2"
	return qty.String()
}

var documentTemplates = template.Must(
	template.New("documents").Funcs(templateFuncs).Parse(baseTemplate + quoteTemplate + invoiceTemplate + deliveryNoteTemplate),
)

// renderTemplate executes a named document template into HTML
func renderTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

const baseTemplate = `
{{define "styles"}}
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 12px; color: #1a1a1a; margin: 0; }
  h1 { font-size: 22px; margin: 0 0 4px 0; }
  .meta { color: #666; margin-bottom: 24px; }
  table.items { width: 100%; border-collapse: collapse; margin-top: 16px; }
  table.items th { text-align: left; border-bottom: 2px solid #1a1a1a; padding: 6px 8px; font-size: 11px; text-transform: uppercase; }
  table.items td { border-bottom: 1px solid #ddd; padding: 6px 8px; }
  table.items td.num, table.items th.num { text-align: right; }
  .totals { margin-top: 16px; margin-left: auto; width: 40%; }
  .totals td { padding: 4px 8px; }
  .totals td.num { text-align: right; }
  .totals tr.grand td { border-top: 2px solid #1a1a1a; font-weight: bold; }
  .notes { margin-top: 24px; color: #444; }
  .status { display: inline-block; padding: 2px 8px; border: 1px solid #999; border-radius: 3px; text-transform: uppercase; font-size: 10px; }
</style>
{{end}}

{{define "items"}}
<table class="items">
  <thead>
    <tr>
      <th>#</th><th>Code</th><th>Description</th>
      <th class="num">Qty</th><th class="num">Unit price</th>
      <th class="num">Discount</th><th class="num">VAT</th><th class="num">Amount</th>
    </tr>
  </thead>
  <tbody>
    {{range .Items}}
    <tr>
      <td>{{.Position}}</td>
      <td>{{.ProductCode}}</td>
      <td>{{.ProductName}}</td>
      <td class="num">{{qty .Quantity}} {{.Unit}}</td>
      <td class="num">{{money .UnitPrice $.Currency}}</td>
      <td class="num">{{percent .DiscountPercent}}</td>
      <td class="num">{{percent .VATRate}}</td>
      <td class="num">{{money .NetAmount $.Currency}}</td>
    </tr>
    {{end}}
  </tbody>
</table>
{{end}}

{{define "totals"}}
<table class="totals">
  <tr><td>Subtotal</td><td class="num">{{money .Subtotal .Currency}}</td></tr>
  {{if not .DiscountAmount.IsZero}}
  <tr><td>Discount ({{percent .DiscountPercent}})</td><td class="num">-{{money .DiscountAmount .Currency}}</td></tr>
  {{end}}
  <tr><td>VAT</td><td class="num">{{money .VATTotal .Currency}}</td></tr>
  <tr class="grand"><td>Total</td><td class="num">{{money .Total .Currency}}</td></tr>
</table>
{{end}}
`

const quoteTemplate = `
{{define "quote"}}
<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "styles"}}</head>
<body>
  <h1>Quote {{.Number}}</h1>
  <div class="meta">
    <span class="status">{{.Status}}</span>
    {{if .ValidUntil}} Valid until {{date .ValidUntil}}{{end}}
  </div>
  {{if not .HeaderNotes.IsEmpty}}<div class="notes">{{richtext .HeaderNotes}}</div>{{end}}
  {{template "items" .}}
  {{template "totals" .}}
  {{if not .FooterNotes.IsEmpty}}<div class="notes">{{richtext .FooterNotes}}</div>{{end}}
</body></html>
{{end}}
`

const invoiceTemplate = `
{{define "invoice"}}
<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "styles"}}</head>
<body>
  <h1>Invoice {{.Number}}</h1>
  <div class="meta">
    <span class="status">{{.Status}}</span>
    Issued {{date .IssueDate}} &middot; Due {{date .DueDate}}
  </div>
  {{template "items" .}}
  {{template "totals" .}}
  {{if .AmountPaid.IsPositive}}
  <table class="totals">
    <tr><td>Paid</td><td class="num">{{money .AmountPaid .Currency}}</td></tr>
    <tr class="grand"><td>Balance due</td><td class="num">{{money .Balance .Currency}}</td></tr>
  </table>
  {{end}}
</body></html>
{{end}}
`

const deliveryNoteTemplate = `
{{define "delivery_note"}}
<!DOCTYPE html>
<html><head><meta charset="utf-8">{{template "styles"}}</head>
<body>
  <h1>Delivery note {{.Number}}</h1>
  <div class="meta"><span class="status">{{.Status}}</span></div>
  {{if not .ShippingAddress.IsEmpty}}<div class="notes">{{richtext .ShippingAddress}}</div>{{end}}
  <table class="items">
    <thead>
      <tr><th>#</th><th>Code</th><th>Description</th><th class="num">Qty</th></tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td>{{.Position}}</td>
        <td>{{.ProductCode}}</td>
        <td>{{.ProductName}}</td>
        <td class="num">{{qty .Quantity}} {{.Unit}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
</body></html>
{{end}}
`
