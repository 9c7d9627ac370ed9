package sales

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func draftOrderWithItem(t *testing.T, companyID uuid.UUID) *sales.Order {
	t.Helper()
	order, err := sales.NewOrder(companyID, "ORD-2026-00001")
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Consulting hour", "SRV-001", "h", decimal.NewFromInt(4), decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(19))
	require.NoError(t, err)
	return order
}

func TestOrderService_Confirm(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)

	t.Run("confirms draft order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockDeliveryNoteRepository), new(MockProductRepository), new(MockNumberSequenceRepository), nil)

		order := draftOrderWithItem(t, companyID)
		orderRepo.On("FindByID", mock.Anything, scope, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)

		resp, err := service.Confirm(context.Background(), scope, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.NotNil(t, resp.ConfirmedAt)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockDeliveryNoteRepository), new(MockProductRepository), new(MockNumberSequenceRepository), nil)

		order, _ := sales.NewOrder(companyID, "ORD-2026-00002")
		orderRepo.On("FindByID", mock.Anything, scope, order.ID).Return(order, nil)

		_, err := service.Confirm(context.Background(), scope, order.ID)
		require.Error(t, err)
		orderRepo.AssertNotCalled(t, "SaveWithLock")
	})
}

func TestOrderService_Fulfill(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)
	year := time.Now().Year()

	t.Run("fulfills confirmed order into delivery note", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		deliveryRepo := new(MockDeliveryNoteRepository)
		sequences := new(MockNumberSequenceRepository)
		service := NewOrderService(orderRepo, deliveryRepo, new(MockProductRepository), sequences, nil)

		order := draftOrderWithItem(t, companyID)
		require.NoError(t, order.Confirm())

		orderRepo.On("FindByID", mock.Anything, scope, order.ID).Return(order, nil)
		sequences.On("Next", mock.Anything, companyID, sales.DocumentKindDeliveryNote, year).Return(1, nil)
		deliveryRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.DeliveryNote")).Return(nil)
		orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)

		address := valueobject.NewEditorDocFromText("1 Main Street")
		resp, err := service.Fulfill(context.Background(), scope, order.ID, FulfillOrderRequest{ShippingAddress: &address})
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("DLV-%d-00001", year), resp.Number)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, order.ID, resp.OrderID)
		require.Len(t, resp.Items, 1)
		// delivery lines carry no prices
		assert.True(t, resp.Items[0].UnitPrice.IsZero())
		assert.True(t, resp.Items[0].Quantity.Equal(decimal.NewFromInt(4)))
		assert.Equal(t, "fulfilled", string(order.Status))
	})

	t.Run("rejects draft order", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		deliveryRepo := new(MockDeliveryNoteRepository)
		sequences := new(MockNumberSequenceRepository)
		service := NewOrderService(orderRepo, deliveryRepo, new(MockProductRepository), sequences, nil)

		order := draftOrderWithItem(t, companyID)
		orderRepo.On("FindByID", mock.Anything, scope, order.ID).Return(order, nil)
		sequences.On("Next", mock.Anything, companyID, sales.DocumentKindDeliveryNote, year).Return(2, nil)

		_, err := service.Fulfill(context.Background(), scope, order.ID, FulfillOrderRequest{})
		require.Error(t, err)
		deliveryRepo.AssertNotCalled(t, "Save")
	})
}

func TestOrderService_Cancel(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)

	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockDeliveryNoteRepository), new(MockProductRepository), new(MockNumberSequenceRepository), nil)

	order := draftOrderWithItem(t, companyID)
	require.NoError(t, order.Confirm())
	orderRepo.On("FindByID", mock.Anything, scope, order.ID).Return(order, nil)
	orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)

	resp, err := service.Cancel(context.Background(), scope, order.ID, CancelOrderRequest{Reason: "customer withdrew"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "customer withdrew", resp.CancelReason)
}
