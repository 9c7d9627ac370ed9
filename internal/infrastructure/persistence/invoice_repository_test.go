package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
)

func TestGormInvoiceRepository_SalesSummary(t *testing.T) {
	db, mock, sqlDB := newMockGorm(t)
	defer sqlDB.Close()
	repo := NewGormInvoiceRepository(db)

	companyID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"period", "invoiced", "paid", "count"}).
		AddRow("2026-01", "1500.00", "1500.00", 2).
		AddRow("2026-02", "2000.00", "800.00", 1)

	mock.ExpectQuery(`SELECT to_char\(issue_date, 'YYYY-MM'\) AS period.*FROM "invoices" WHERE company_id = \$1`).
		WillReturnRows(rows)

	summary, err := repo.SalesSummary(context.Background(), shared.ScopeCompany(companyID), from, to)

	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "2026-01", summary[0].Period)
	assert.True(t, summary[0].Invoiced.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, int64(1), summary[1].Count)
}

func TestGormInvoiceRepository_ReceivablesAging(t *testing.T) {
	db, mock, sqlDB := newMockGorm(t)
	defer sqlDB.Close()
	repo := NewGormInvoiceRepository(db)

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	dueSoon := now.AddDate(0, 0, 14)
	tenDaysOver := now.AddDate(0, 0, -10)
	fortyDaysOver := now.AddDate(0, 0, -40)
	ninetyDaysOver := now.AddDate(0, 0, -90)

	rows := sqlmock.NewRows([]string{"due_date", "total", "amount_paid"}).
		AddRow(dueSoon, "1000.00", "0.00").
		AddRow(tenDaysOver, "500.00", "200.00").
		AddRow(fortyDaysOver, "750.00", "0.00").
		AddRow(ninetyDaysOver, "120.00", "0.00").
		AddRow(tenDaysOver, "300.00", "300.00") // settled balance is skipped

	mock.ExpectQuery(`SELECT due_date, total, amount_paid FROM "invoices"`).
		WillReturnRows(rows)

	buckets, err := repo.ReceivablesAging(context.Background(), shared.ScopeCompany(uuid.New()), now)

	require.NoError(t, err)
	require.Len(t, buckets, 4)

	assert.Equal(t, "current", buckets[0].Label)
	assert.True(t, buckets[0].Balance.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, int64(1), buckets[0].Count)

	assert.Equal(t, "1-30", buckets[1].Label)
	assert.True(t, buckets[1].Balance.Equal(decimal.NewFromInt(300)))

	assert.Equal(t, "31-60", buckets[2].Label)
	assert.True(t, buckets[2].Balance.Equal(decimal.NewFromInt(750)))

	assert.Equal(t, "60+", buckets[3].Label)
	assert.True(t, buckets[3].Balance.Equal(decimal.NewFromInt(120)))
}

func TestGormInvoiceRepository_FindOverdue(t *testing.T) {
	db, mock, sqlDB := newMockGorm(t)
	defer sqlDB.Close()
	repo := NewGormInvoiceRepository(db)

	companyID := uuid.New()
	invoiceID := uuid.New()
	now := time.Now()
	due := now.AddDate(0, 0, -5)

	invoiceRows := sqlmock.NewRows([]string{"id", "company_id", "number", "status", "due_date", "total", "amount_paid"}).
		AddRow(invoiceID, companyID, "INV-2026-00007", string(sales.InvoiceStatusSent), due, "900.00", "0.00")

	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE company_id = \$1 AND \(status IN \(\$2,\$3\) AND due_date IS NOT NULL AND due_date < \$4\)`).
		WillReturnRows(invoiceRows)
	mock.ExpectQuery(`SELECT \* FROM "line_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "document_id", "document_type"}))
	mock.ExpectQuery(`SELECT \* FROM "invoice_payments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id"}))

	invoices, err := repo.FindOverdue(context.Background(), shared.ScopeCompany(companyID), now)

	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "INV-2026-00007", invoices[0].Number)
}
