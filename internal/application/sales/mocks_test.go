package sales

import (
	"context"
	"time"

	"github.com/crmsuite/backend/internal/domain/catalog"
	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockQuoteRepository is a mock implementation of QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*sales.Quote, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]sales.Quote, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]sales.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindByStatus(ctx context.Context, scope shared.Scope, status sales.QuoteStatus, filter shared.Filter) ([]sales.Quote, error) {
	args := m.Called(ctx, scope, status, filter)
	return args.Get(0).([]sales.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindExpiring(ctx context.Context, scope shared.Scope, deadline time.Time) ([]sales.Quote, error) {
	args := m.Called(ctx, scope, deadline)
	return args.Get(0).([]sales.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) Save(ctx context.Context, quote *sales.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) SaveWithLock(ctx context.Context, quote *sales.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]sales.Order, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, scope shared.Scope, status sales.OrderStatus, filter shared.Filter) ([]sales.Order, error) {
	args := m.Called(ctx, scope, status, filter)
	return args.Get(0).([]sales.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*sales.Invoice, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]sales.Invoice, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByStatus(ctx context.Context, scope shared.Scope, status sales.InvoiceStatus, filter shared.Filter) ([]sales.Invoice, error) {
	args := m.Called(ctx, scope, status, filter)
	return args.Get(0).([]sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindOverdue(ctx context.Context, scope shared.Scope, now time.Time) ([]sales.Invoice, error) {
	args := m.Called(ctx, scope, now)
	return args.Get(0).([]sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) SalesSummary(ctx context.Context, scope shared.Scope, from, to time.Time) ([]sales.SalesSummaryRow, error) {
	args := m.Called(ctx, scope, from, to)
	return args.Get(0).([]sales.SalesSummaryRow), args.Error(1)
}

func (m *MockInvoiceRepository) ReceivablesAging(ctx context.Context, scope shared.Scope, now time.Time) ([]sales.ReceivableBucket, error) {
	args := m.Called(ctx, scope, now)
	return args.Get(0).([]sales.ReceivableBucket), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *sales.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *sales.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

// MockDeliveryNoteRepository is a mock implementation of DeliveryNoteRepository
type MockDeliveryNoteRepository struct {
	mock.Mock
}

func (m *MockDeliveryNoteRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*sales.DeliveryNote, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.DeliveryNote), args.Error(1)
}

func (m *MockDeliveryNoteRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]sales.DeliveryNote, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]sales.DeliveryNote), args.Error(1)
}

func (m *MockDeliveryNoteRepository) FindByOrder(ctx context.Context, scope shared.Scope, orderID uuid.UUID) ([]sales.DeliveryNote, error) {
	args := m.Called(ctx, scope, orderID)
	return args.Get(0).([]sales.DeliveryNote), args.Error(1)
}

func (m *MockDeliveryNoteRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryNoteRepository) Save(ctx context.Context, note *sales.DeliveryNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockDeliveryNoteRepository) SaveWithLock(ctx context.Context, note *sales.DeliveryNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockDeliveryNoteRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*catalog.Product, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, companyID, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

// MockNumberSequenceRepository is a mock implementation of NumberSequenceRepository
type MockNumberSequenceRepository struct {
	mock.Mock
}

func (m *MockNumberSequenceRepository) Next(ctx context.Context, companyID uuid.UUID, kind sales.DocumentKind, year int) (int, error) {
	args := m.Called(ctx, companyID, kind, year)
	return args.Get(0).(int), args.Error(1)
}
