package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("ascending; DROP TABLE users"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "email", ValidateSortField("email", UserSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", UserSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("password_hash", UserSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("1=1; --", DealSortFields, "created_at"))
	assert.Equal(t, "valid_until", ValidateSortField("valid_until", QuoteSortFields, "created_at"))
}
