package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/shared"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormContactRepository_FindByID(t *testing.T) {
	t.Run("finds contact in company scope", func(t *testing.T) {
		db, mock, sqlDB := newMockGorm(t)
		defer sqlDB.Close()
		repo := NewGormContactRepository(db)

		contactID := uuid.New()
		companyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "first_name", "last_name", "email"}).
			AddRow(contactID, companyID, "Ada", "Lovelace", "ada@example.com")

		mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE company_id = \$1 AND id = \$2`).
			WithArgs(companyID, contactID, 1).
			WillReturnRows(rows)

		contact, err := repo.FindByID(context.Background(), shared.ScopeCompany(companyID), contactID)

		require.NoError(t, err)
		assert.Equal(t, "Ada", contact.FirstName)
		assert.Equal(t, companyID, contact.CompanyID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin scope skips the company predicate", func(t *testing.T) {
		db, mock, sqlDB := newMockGorm(t)
		defer sqlDB.Close()
		repo := NewGormContactRepository(db)

		contactID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "company_id", "first_name", "last_name"}).
			AddRow(contactID, uuid.New(), "Grace", "Hopper")

		mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1`).
			WithArgs(contactID, 1).
			WillReturnRows(rows)

		contact, err := repo.FindByID(context.Background(), shared.ScopeAll(), contactID)

		require.NoError(t, err)
		assert.Equal(t, "Grace", contact.FirstName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		db, mock, sqlDB := newMockGorm(t)
		defer sqlDB.Close()
		repo := NewGormContactRepository(db)

		companyID := uuid.New()
		contactID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "contacts"`).
			WithArgs(companyID, contactID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), shared.ScopeCompany(companyID), contactID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormContactRepository_Count(t *testing.T) {
	db, mock, sqlDB := newMockGorm(t)
	defer sqlDB.Close()
	repo := NewGormContactRepository(db)

	companyID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE company_id = \$1`).
		WithArgs(companyID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), shared.ScopeCompany(companyID), shared.DefaultFilter())

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestGormContactRepository_Delete(t *testing.T) {
	t.Run("deletes scoped contact", func(t *testing.T) {
		db, mock, sqlDB := newMockGorm(t)
		defer sqlDB.Close()
		repo := NewGormContactRepository(db)

		companyID := uuid.New()
		contactID := uuid.New()

		mock.ExpectExec(`DELETE FROM "contacts" WHERE company_id = \$1 AND id = \$2`).
			WithArgs(companyID, contactID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), shared.ScopeCompany(companyID), contactID)
		assert.NoError(t, err)
	})

	t.Run("returns not found for foreign company record", func(t *testing.T) {
		db, mock, sqlDB := newMockGorm(t)
		defer sqlDB.Close()
		repo := NewGormContactRepository(db)

		mock.ExpectExec(`DELETE FROM "contacts"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), shared.ScopeCompany(uuid.New()), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
