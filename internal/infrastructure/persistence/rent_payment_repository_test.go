package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/landlord/backend/internal/domain/rent"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockRentPaymentRepository creates a GormRentPaymentRepository with a
// mocked SQL connection
func newMockRentPaymentRepository(t *testing.T) (*GormRentPaymentRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormRentPaymentRepository(gormDB), mock, mockDB
}

func toggledPayment(t *testing.T) *rent.Payment {
	t.Helper()
	tenant, err := tenancy.NewTenant("Asha Verma", "9800000000", "A-101")
	require.NoError(t, err)
	require.NoError(t, tenant.EnableRent(decimal.NewFromInt(8000), 5))

	monthStart := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	payment, err := rent.NewPayment(tenant, "Oct 2025", monthStart)
	require.NoError(t, err)
	payment.Toggle(monthStart)
	return payment
}

func TestGormRentPaymentRepository_SaveWithLock(t *testing.T) {
	t.Run("saves when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockRentPaymentRepository(t)
		defer mockDB.Close()

		payment := toggledPayment(t)

		mock.ExpectExec(`UPDATE "rent_payments" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), payment)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version is stale", func(t *testing.T) {
		repo, mock, mockDB := newMockRentPaymentRepository(t)
		defer mockDB.Close()

		payment := toggledPayment(t)

		mock.ExpectExec(`UPDATE "rent_payments" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), payment)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
