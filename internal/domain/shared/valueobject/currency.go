package valueobject

import "strings"

// Currency is an ISO 4217 currency code. Monetary amounts travel as
// decimal.Decimal alongside a Currency; documents inherit the code from
// their company's default.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
	CHF Currency = "CHF"
	PLN Currency = "PLN"
	SEK Currency = "SEK"
)

// DefaultCurrency is assigned when a company does not set one.
const DefaultCurrency = EUR

// Normalize upper-cases the code.
func (c Currency) Normalize() Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(string(c))))
}

// Validate checks the shape of the code: three ASCII letters. Codes outside
// the well-known set are accepted so long as they look like ISO 4217.
func (c Currency) Validate() bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

func (c Currency) String() string {
	return string(c)
}
