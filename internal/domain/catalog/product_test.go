package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	companyID := uuid.New()

	t.Run("valid product", func(t *testing.T) {
		product, err := NewProduct(companyID, "sku-001", "Widget", decimal.NewFromFloat(9.99))
		require.NoError(t, err)

		assert.Equal(t, "SKU-001", product.Code)
		assert.True(t, product.Active)
		assert.Equal(t, "pcs", product.Unit)
	})

	t.Run("invalid code characters", func(t *testing.T) {
		_, err := NewProduct(companyID, "sku 001!", "Widget", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := NewProduct(companyID, "SKU-002", "Widget", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestProduct_SetPricing(t *testing.T) {
	product, _ := NewProduct(uuid.New(), "SKU-001", "Widget", decimal.NewFromInt(10))

	require.NoError(t, product.SetPricing(decimal.NewFromFloat(12.50), decimal.NewFromInt(19)))
	assert.Equal(t, "12.5", product.UnitPrice.String())
	assert.Equal(t, "19", product.VATRate.String())

	assert.Error(t, product.SetPricing(decimal.NewFromInt(-1), decimal.Zero))
	assert.Error(t, product.SetPricing(decimal.NewFromInt(1), decimal.NewFromInt(101)))
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	product, _ := NewProduct(uuid.New(), "SKU-001", "Widget", decimal.NewFromInt(10))

	assert.Error(t, product.Activate())

	require.NoError(t, product.Deactivate())
	assert.False(t, product.Active)
	assert.Error(t, product.Deactivate())

	require.NoError(t, product.Activate())
	assert.True(t, product.Active)
}

func TestProduct_SetUnit(t *testing.T) {
	product, _ := NewProduct(uuid.New(), "SKU-001", "Hosting", decimal.NewFromInt(50))

	require.NoError(t, product.SetUnit("month"))
	assert.Equal(t, "month", product.Unit)

	assert.Error(t, product.SetUnit(" "))
}
