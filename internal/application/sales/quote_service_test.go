package sales

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/crmsuite/backend/internal/domain/catalog"
	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T, companyID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(companyID, "SRV-001", "Consulting hour", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, product.SetPricing(decimal.NewFromInt(100), decimal.NewFromInt(19)))
	return product
}

func TestQuoteService_Create(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)
	year := time.Now().Year()

	t.Run("creates quote with catalog-priced items", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		productRepo := new(MockProductRepository)
		sequences := new(MockNumberSequenceRepository)
		service := NewQuoteService(quoteRepo, new(MockOrderRepository), productRepo, sequences, nil)

		product := testProduct(t, companyID)
		sequences.On("Next", mock.Anything, companyID, sales.DocumentKindQuote, year).Return(7, nil)
		productRepo.On("FindByID", mock.Anything, scope, product.ID).Return(product, nil)
		quoteRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Quote")).Return(nil)

		resp, err := service.Create(context.Background(), scope, CreateQuoteRequest{
			Items: []LineItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(2)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("QUO-%d-00007", year), resp.Number)
		assert.Equal(t, "draft", resp.Status)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, resp.Items[0].VATRate.Equal(decimal.NewFromInt(19)))
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(200)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(238)))
		quoteRepo.AssertExpectations(t)
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		productRepo := new(MockProductRepository)
		sequences := new(MockNumberSequenceRepository)
		service := NewQuoteService(quoteRepo, new(MockOrderRepository), productRepo, sequences, nil)

		product := testProduct(t, companyID)
		require.NoError(t, product.Deactivate())
		sequences.On("Next", mock.Anything, companyID, sales.DocumentKindQuote, year).Return(8, nil)
		productRepo.On("FindByID", mock.Anything, scope, product.ID).Return(product, nil)

		_, err := service.Create(context.Background(), scope, CreateQuoteRequest{
			Items: []LineItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
			},
		})
		require.Error(t, err)
		domainErr, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "PRODUCT_INACTIVE", domainErr.Code)
		quoteRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects all-companies scope", func(t *testing.T) {
		service := NewQuoteService(new(MockQuoteRepository), new(MockOrderRepository), new(MockProductRepository), new(MockNumberSequenceRepository), nil)

		_, err := service.Create(context.Background(), shared.ScopeAll(), CreateQuoteRequest{})
		assert.Error(t, err)
	})
}

func TestQuoteService_Send(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)

	t.Run("sends quote with items", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		service := NewQuoteService(quoteRepo, new(MockOrderRepository), new(MockProductRepository), new(MockNumberSequenceRepository), nil)

		quote, _ := sales.NewQuote(companyID, "QUO-2026-00001")
		_, err := quote.AddItem(uuid.New(), "Consulting hour", "SRV-001", "h", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		quoteRepo.On("FindByID", mock.Anything, scope, quote.ID).Return(quote, nil)
		quoteRepo.On("SaveWithLock", mock.Anything, quote).Return(nil)

		resp, err := service.Send(context.Background(), scope, quote.ID)
		require.NoError(t, err)
		assert.Equal(t, "sent", resp.Status)
		assert.NotNil(t, resp.SentAt)
	})

	t.Run("rejects empty quote", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		service := NewQuoteService(quoteRepo, new(MockOrderRepository), new(MockProductRepository), new(MockNumberSequenceRepository), nil)

		quote, _ := sales.NewQuote(companyID, "QUO-2026-00002")
		quoteRepo.On("FindByID", mock.Anything, scope, quote.ID).Return(quote, nil)

		_, err := service.Send(context.Background(), scope, quote.ID)
		require.Error(t, err)
		quoteRepo.AssertNotCalled(t, "SaveWithLock")
	})
}

func TestQuoteService_Convert(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)
	year := time.Now().Year()

	acceptedQuote := func(t *testing.T) *sales.Quote {
		t.Helper()
		quote, err := sales.NewQuote(companyID, "QUO-2026-00003")
		require.NoError(t, err)
		_, err = quote.AddItem(uuid.New(), "Consulting hour", "SRV-001", "h", decimal.NewFromInt(3), decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(19))
		require.NoError(t, err)
		require.NoError(t, quote.SetDiscountPercent(decimal.NewFromInt(10)))
		require.NoError(t, quote.Send())
		require.NoError(t, quote.Accept())
		return quote
	}

	t.Run("converts accepted quote to order", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		orderRepo := new(MockOrderRepository)
		sequences := new(MockNumberSequenceRepository)
		service := NewQuoteService(quoteRepo, orderRepo, new(MockProductRepository), sequences, nil)

		quote := acceptedQuote(t)
		quoteRepo.On("FindByID", mock.Anything, scope, quote.ID).Return(quote, nil)
		sequences.On("Next", mock.Anything, companyID, sales.DocumentKindOrder, year).Return(1, nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Order")).Return(nil)
		quoteRepo.On("SaveWithLock", mock.Anything, quote).Return(nil)

		resp, err := service.Convert(context.Background(), scope, quote.ID)
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("ORD-%d-00001", year), resp.Number)
		assert.Equal(t, "draft", resp.Status)
		require.NotNil(t, resp.SourceQuoteID)
		assert.Equal(t, quote.ID, *resp.SourceQuoteID)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.DiscountPercent.Equal(decimal.NewFromInt(10)))
		assert.True(t, resp.Total.Equal(quote.Total))
		require.NotNil(t, quote.ConvertedOrder)
		assert.Equal(t, resp.ID, *quote.ConvertedOrder)
	})

	t.Run("rejects second conversion", func(t *testing.T) {
		quoteRepo := new(MockQuoteRepository)
		orderRepo := new(MockOrderRepository)
		sequences := new(MockNumberSequenceRepository)
		service := NewQuoteService(quoteRepo, orderRepo, new(MockProductRepository), sequences, nil)

		quote := acceptedQuote(t)
		orderID := uuid.New()
		quote.ConvertedOrder = &orderID
		quoteRepo.On("FindByID", mock.Anything, scope, quote.ID).Return(quote, nil)
		sequences.On("Next", mock.Anything, companyID, sales.DocumentKindOrder, year).Return(2, nil)

		_, err := service.Convert(context.Background(), scope, quote.ID)
		require.Error(t, err)
		domainErr, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "ALREADY_CONVERTED", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save")
	})
}

func TestQuoteService_ExpireStale(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)
	now := time.Now()

	quoteRepo := new(MockQuoteRepository)
	service := NewQuoteService(quoteRepo, new(MockOrderRepository), new(MockProductRepository), new(MockNumberSequenceRepository), nil)

	stale, _ := sales.NewQuote(companyID, "QUO-2026-00010")
	_, err := stale.AddItem(uuid.New(), "Consulting hour", "SRV-001", "h", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	past := now.Add(-24 * time.Hour)
	require.NoError(t, stale.SetValidUntil(&past))
	require.NoError(t, stale.Send())

	quoteRepo.On("FindExpiring", mock.Anything, scope, now).Return([]sales.Quote{*stale}, nil)
	quoteRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*sales.Quote")).Return(nil)

	expired, err := service.ExpireStale(context.Background(), scope, now)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
}

func TestQuoteService_Delete(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)

	quoteRepo := new(MockQuoteRepository)
	service := NewQuoteService(quoteRepo, new(MockOrderRepository), new(MockProductRepository), new(MockNumberSequenceRepository), nil)

	quote, _ := sales.NewQuote(companyID, "QUO-2026-00011")
	_, err := quote.AddItem(uuid.New(), "Consulting hour", "SRV-001", "h", decimal.NewFromInt(1), decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, quote.Send())

	quoteRepo.On("FindByID", mock.Anything, scope, quote.ID).Return(quote, nil)

	err = service.Delete(context.Background(), scope, quote.ID)
	require.Error(t, err)
	quoteRepo.AssertNotCalled(t, "Delete")
}
