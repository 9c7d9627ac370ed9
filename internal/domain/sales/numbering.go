package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Document number prefixes per kind
const (
	NumberPrefixQuote        = "QUO"
	NumberPrefixOrder        = "ORD"
	NumberPrefixInvoice      = "INV"
	NumberPrefixDeliveryNote = "DLV"
)

// NumberPrefix returns the document number prefix for a kind
func NumberPrefix(kind DocumentKind) string {
	switch kind {
	case DocumentKindQuote:
		return NumberPrefixQuote
	case DocumentKindOrder:
		return NumberPrefixOrder
	case DocumentKindInvoice:
		return NumberPrefixInvoice
	case DocumentKindDeliveryNote:
		return NumberPrefixDeliveryNote
	}
	return "DOC"
}

// FormatDocumentNumber formats a document number as {PREFIX}-{YEAR}-{SEQ},
// e.g. INV-2026-00042. Sequences run per company, kind, and year.
func FormatDocumentNumber(kind DocumentKind, year, sequence int) string {
	return fmt.Sprintf("%s-%d-%05d", NumberPrefix(kind), year, sequence)
}

// NumberSequenceRepository hands out monotonically increasing document
// sequence numbers per company, document kind, and year. Implementations
// must be safe under concurrent allocation.
type NumberSequenceRepository interface {
	// Next atomically allocates the next sequence number
	Next(ctx context.Context, companyID uuid.UUID, kind DocumentKind, year int) (int, error)
}
