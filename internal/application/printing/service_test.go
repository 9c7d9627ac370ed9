package printing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindByStatus(ctx context.Context, scope shared.Scope, status sales.QuoteStatus, filter shared.Filter) ([]sales.Quote, error) {
	args := m.Called(ctx, scope, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindExpiring(ctx context.Context, scope shared.Scope, deadline time.Time) ([]sales.Quote, error) {
	args := m.Called(ctx, scope, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderQuote(ctx context.Context, quote *sales.Quote) ([]byte, error) {
	args := m.Called(ctx, quote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) RenderInvoice(ctx context.Context, invoice *sales.Invoice) ([]byte, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) RenderDeliveryNote(ctx context.Context, note *sales.DeliveryNote) ([]byte, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestPrintingService_QuotePDF(t *testing.T) {
	quoteRepo := new(MockQuoteRepository)
	renderer := new(MockRenderer)
	svc := NewService(quoteRepo, nil, nil, renderer)

	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)
	quote, err := sales.NewQuote(companyID, "QUO-2026-00042")
	require.NoError(t, err)

	quoteRepo.On("FindByID", mock.Anything, scope, quote.ID).Return(quote, nil)
	renderer.On("RenderQuote", mock.Anything, quote).Return([]byte("%PDF-1.7 fake"), nil)

	pdf, err := svc.QuotePDF(context.Background(), scope, quote.ID)

	require.NoError(t, err)
	assert.Equal(t, "QUO-2026-00042.pdf", pdf.FileName)
	assert.Equal(t, []byte("%PDF-1.7 fake"), pdf.Content)
}

func TestPrintingService_QuotePDF_RenderFailure(t *testing.T) {
	quoteRepo := new(MockQuoteRepository)
	renderer := new(MockRenderer)
	svc := NewService(quoteRepo, nil, nil, renderer)

	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)
	quote, err := sales.NewQuote(companyID, "QUO-2026-00042")
	require.NoError(t, err)

	quoteRepo.On("FindByID", mock.Anything, scope, quote.ID).Return(quote, nil)
	renderer.On("RenderQuote", mock.Anything, quote).Return(nil, errors.New("chrome exited"))

	_, err = svc.QuotePDF(context.Background(), scope, quote.ID)

	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "RENDER_FAILED", domainErr.Code)
}

func TestPrintingService_QuotePDF_NotFound(t *testing.T) {
	quoteRepo := new(MockQuoteRepository)
	renderer := new(MockRenderer)
	svc := NewService(quoteRepo, nil, nil, renderer)

	scope := shared.ScopeCompany(uuid.New())
	id := uuid.New()
	quoteRepo.On("FindByID", mock.Anything, scope, id).Return(nil, shared.ErrNotFound)

	_, err := svc.QuotePDF(context.Background(), scope, id)
	assert.True(t, shared.IsNotFound(err))
	renderer.AssertNotCalled(t, "RenderQuote", mock.Anything, mock.Anything)
}
