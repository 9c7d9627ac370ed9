package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmsuite/backend/internal/domain/sales"
)

func TestGormNumberSequenceRepository_Next(t *testing.T) {
	t.Run("allocates from the upsert", func(t *testing.T) {
		db, mock, sqlDB := newMockGorm(t)
		defer sqlDB.Close()
		repo := NewGormNumberSequenceRepository(db)

		companyID := uuid.New()

		mock.ExpectQuery(`INSERT INTO document_sequences .*ON CONFLICT \(company_id, kind, year\).*RETURNING seq`).
			WithArgs(companyID, "invoice", 2026).
			WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(42))

		seq, err := repo.Next(context.Background(), companyID, sales.DocumentKindInvoice, 2026)

		require.NoError(t, err)
		assert.Equal(t, 42, seq)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("formats into a document number", func(t *testing.T) {
		db, mock, sqlDB := newMockGorm(t)
		defer sqlDB.Close()
		repo := NewGormNumberSequenceRepository(db)

		mock.ExpectQuery(`INSERT INTO document_sequences`).
			WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(7))

		seq, err := repo.Next(context.Background(), uuid.New(), sales.DocumentKindQuote, 2026)

		require.NoError(t, err)
		assert.Equal(t, "QUO-2026-00007", sales.FormatDocumentNumber(sales.DocumentKindQuote, 2026, seq))
	})
}
