package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/shared"
)

// scoped narrows a query to the companies visible in the scope. A scope
// spanning all companies leaves the query untouched.
func scoped(query *gorm.DB, scope shared.Scope) *gorm.DB {
	if scope.All {
		return query
	}
	return query.Where("company_id = ?", scope.CompanyID)
}

// paginate applies page-based offset and limit
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// orderBy applies a whitelisted sort column and direction
func orderBy(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}

// search applies an ILIKE match across the given columns
func search(query *gorm.DB, term string, columns ...string) *gorm.DB {
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + term + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}
