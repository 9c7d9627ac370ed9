package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/interfaces/http/dto"
)

// CompanyIDHeader selects the company a request operates on
const CompanyIDHeader = "X-Company-ID"

// scopeKey is the gin context key holding the resolved data scope
const scopeKey = "company_scope"

// roleAdmin mirrors identity.RoleAdmin; admins may address any company
// or none at all
const roleAdmin = "admin"

// CompanyScope resolves the company scope for the request. The company
// may come from the companyId query parameter (company_id is accepted
// too), the X-Company-ID header or the token's active company, in that
// order. Members are pinned to their own company; a mismatch is a 403.
// Admins without a selection get the unrestricted scope.
func CompanyScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		requested := c.Query("companyId")
		if requested == "" {
			requested = c.Query("company_id")
		}
		if requested == "" {
			requested = c.GetHeader(CompanyIDHeader)
		}
		if requested == "" {
			requested = claims.CompanyID
		}

		if requested == "" {
			if claims.Role == roleAdmin {
				c.Set(scopeKey, shared.ScopeAll())
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "No company assigned", GetRequestID(c)))
			return
		}

		companyID, err := uuid.Parse(requested)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid company ID", GetRequestID(c)))
			return
		}

		if claims.Role != roleAdmin && claims.CompanyID != companyID.String() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Not a member of this company", GetRequestID(c)))
			return
		}

		c.Set(scopeKey, shared.ScopeCompany(companyID))
		c.Next()
	}
}

// GetScope returns the resolved company scope. The zero scope, which
// covers nothing, is returned when CompanyScope did not run.
func GetScope(c *gin.Context) shared.Scope {
	value, ok := c.Get(scopeKey)
	if !ok {
		return shared.Scope{}
	}
	scope, ok := value.(shared.Scope)
	if !ok {
		return shared.Scope{}
	}
	return scope
}
