package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns "DESC" if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// columns. Returns defaultField if the input is empty or not allowed.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains columns common to most tables
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// CompanySortFields contains allowed sort columns for companies
var CompanySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"vat_number": true,
	"status":     true,
}

// ContactSortFields contains allowed sort columns for contacts
var ContactSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"position":   true,
}

// LeadSortFields contains allowed sort columns for leads
var LeadSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"title":           true,
	"source":          true,
	"status":          true,
	"estimated_value": true,
	"contact_name":    true,
}

// DealSortFields contains allowed sort columns for deals
var DealSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"title":               true,
	"stage":               true,
	"value":               true,
	"probability":         true,
	"expected_close_date": true,
}

// ProductSortFields contains allowed sort columns for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"unit_price": true,
	"vat_rate":   true,
	"active":     true,
}

// DocumentSortFields contains allowed sort columns shared by quotes,
// orders, invoices, and delivery notes
var DocumentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"status":     true,
	"total":      true,
	"subtotal":   true,
}

// InvoiceSortFields extends the document columns with invoice dates
var InvoiceSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"number":      true,
	"status":      true,
	"total":       true,
	"subtotal":    true,
	"issue_date":  true,
	"due_date":    true,
	"amount_paid": true,
}

// QuoteSortFields extends the document columns with the validity date
var QuoteSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"number":      true,
	"status":      true,
	"total":       true,
	"subtotal":    true,
	"valid_until": true,
}

// UserSortFields contains allowed sort columns for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// VaultDocumentSortFields contains allowed sort columns for vault documents
var VaultDocumentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"file_name":    true,
	"content_type": true,
	"size":         true,
	"entity_kind":  true,
}

// ScrapeJobSortFields contains allowed sort columns for scrape jobs
var ScrapeJobSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"status":      true,
	"mode":        true,
	"attempts":    true,
	"started_at":  true,
	"finished_at": true,
}
