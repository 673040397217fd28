package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/billing"
	"github.com/landlord/backend/internal/domain/rent"
	"github.com/landlord/backend/internal/domain/report"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/shared/valueobject"
	"github.com/landlord/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTenantRepository is a mock implementation of tenancy.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindActive(ctx context.Context, filter shared.Filter) ([]tenancy.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindWithElectricity(ctx context.Context) ([]tenancy.Tenant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindWithRent(ctx context.Context) ([]tenancy.Tenant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) SaveWithLock(ctx context.Context, tenant *tenancy.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// mockBillReader stubs the bill repository methods the dashboard uses
type mockBillReader struct {
	mock.Mock
	billing.BillRepository
}

func (m *mockBillReader) FindByPeriod(ctx context.Context, period string) ([]billing.Bill, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

// mockPaymentReader stubs the payment repository methods the dashboard uses
type mockPaymentReader struct {
	mock.Mock
	rent.PaymentRepository
}

func (m *mockPaymentReader) FindByMonth(ctx context.Context, month string) ([]rent.Payment, error) {
	args := m.Called(ctx, month)
	return args.Get(0).([]rent.Payment), args.Error(1)
}

// MockSummaryCache is a mock implementation of SummaryCache
type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, period string) (*report.DashboardSummary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DashboardSummary), args.Error(1)
}

func (m *MockSummaryCache) Set(ctx context.Context, period string, summary report.DashboardSummary) error {
	args := m.Called(ctx, period, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) InvalidateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func dashboardFixtures(t *testing.T) ([]tenancy.Tenant, []billing.Bill, []rent.Payment) {
	t.Helper()
	now := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)

	elec, err := tenancy.NewTenant("Rahul Sharma", "", "A-101")
	require.NoError(t, err)
	require.NoError(t, elec.EnableElectricity(decimal.NewFromInt(15), 1000))
	renter, err := tenancy.NewTenant("Amit Verma", "", "C-303")
	require.NoError(t, err)
	require.NoError(t, renter.EnableRent(decimal.NewFromInt(8000), 5))

	bill, err := billing.NewBillFromReading(elec, 1120, "Oct 2025", now)
	require.NoError(t, err)
	require.NoError(t, bill.MarkPaid(now))

	payment, err := rent.NewPayment(renter, "Oct 2025", time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	payment.Toggle(now)

	return []tenancy.Tenant{*elec, *renter}, []billing.Bill{*bill}, []rent.Payment{*payment}
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("summarizes on cache miss and stores the result", func(t *testing.T) {
		tenants, bills, payments := dashboardFixtures(t)

		tenantRepo := new(MockTenantRepository)
		billRepo := new(mockBillReader)
		paymentRepo := new(mockPaymentReader)
		cache := new(MockSummaryCache)

		cache.On("Get", ctx, "Oct 2025").Return(nil, nil)
		tenantRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return(tenants, nil)
		billRepo.On("FindByPeriod", ctx, "Oct 2025").Return(bills, nil)
		paymentRepo.On("FindByMonth", ctx, "Oct 2025").Return(payments, nil)
		cache.On("Set", ctx, "Oct 2025", mock.AnythingOfType("report.DashboardSummary")).Return(nil)

		service := NewDashboardService(tenantRepo, billRepo, paymentRepo, cache, billing.PeriodPolicySameMonth, zap.NewNop())
		resp, err := service.GetDashboard(ctx, "Oct 2025")
		require.NoError(t, err)

		assert.True(t, resp.TotalRevenue.Equals(valueobject.NewMoneyINR(decimal.NewFromInt(9800))))
		assert.True(t, resp.ElectricityRevenue.Equals(valueobject.NewMoneyINR(decimal.NewFromInt(1800))))
		assert.True(t, resp.RentRevenue.Equals(valueobject.NewMoneyINR(decimal.NewFromInt(8000))))
		assert.Equal(t, int64(120), resp.TotalUnitsConsumed)
		cache.AssertExpectations(t)
	})

	t.Run("serves from cache on hit", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		billRepo := new(mockBillReader)
		paymentRepo := new(mockPaymentReader)
		cache := new(MockSummaryCache)

		cached := &report.DashboardSummary{Period: "Oct 2025", TotalRevenue: decimal.NewFromInt(9800)}
		cache.On("Get", ctx, "Oct 2025").Return(cached, nil)

		service := NewDashboardService(tenantRepo, billRepo, paymentRepo, cache, billing.PeriodPolicySameMonth, zap.NewNop())
		resp, err := service.GetDashboard(ctx, "Oct 2025")
		require.NoError(t, err)

		assert.True(t, resp.TotalRevenue.Equals(valueobject.NewMoneyINR(decimal.NewFromInt(9800))))
		tenantRepo.AssertNotCalled(t, "FindAll")
	})

	t.Run("falls through to repositories on cache failure", func(t *testing.T) {
		tenants, bills, payments := dashboardFixtures(t)

		tenantRepo := new(MockTenantRepository)
		billRepo := new(mockBillReader)
		paymentRepo := new(mockPaymentReader)
		cache := new(MockSummaryCache)

		cache.On("Get", ctx, "Oct 2025").Return(nil, errors.New("redis down"))
		tenantRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return(tenants, nil)
		billRepo.On("FindByPeriod", ctx, "Oct 2025").Return(bills, nil)
		paymentRepo.On("FindByMonth", ctx, "Oct 2025").Return(payments, nil)
		cache.On("Set", ctx, "Oct 2025", mock.AnythingOfType("report.DashboardSummary")).Return(errors.New("redis down"))

		service := NewDashboardService(tenantRepo, billRepo, paymentRepo, cache, billing.PeriodPolicySameMonth, zap.NewNop())
		resp, err := service.GetDashboard(ctx, "Oct 2025")
		require.NoError(t, err)
		assert.True(t, resp.TotalRevenue.Equals(valueobject.NewMoneyINR(decimal.NewFromInt(9800))))
	})

	t.Run("works without a cache", func(t *testing.T) {
		tenantRepo := new(MockTenantRepository)
		billRepo := new(mockBillReader)
		paymentRepo := new(mockPaymentReader)

		tenantRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]tenancy.Tenant{}, nil)
		billRepo.On("FindByPeriod", ctx, "Oct 2025").Return([]billing.Bill{}, nil)
		paymentRepo.On("FindByMonth", ctx, "Oct 2025").Return([]rent.Payment{}, nil)

		service := NewDashboardService(tenantRepo, billRepo, paymentRepo, nil, billing.PeriodPolicySameMonth, zap.NewNop())
		resp, err := service.GetDashboard(ctx, "Oct 2025")
		require.NoError(t, err)
		assert.True(t, resp.TotalRevenue.IsZero())
	})

	t.Run("rejects a malformed period", func(t *testing.T) {
		service := NewDashboardService(new(MockTenantRepository), new(mockBillReader), new(mockPaymentReader), nil, billing.PeriodPolicySameMonth, zap.NewNop())
		_, err := service.GetDashboard(ctx, "October 2025")
		require.Error(t, err)
	})
}

func TestNeedsReading(t *testing.T) {
	ctx := context.Background()

	t.Run("lists tenants awaiting a reading", func(t *testing.T) {
		billed, err := tenancy.NewTenant("Rahul Sharma", "", "A-101")
		require.NoError(t, err)
		require.NoError(t, billed.EnableElectricity(decimal.NewFromInt(15), 1000))
		unbilled, err := tenancy.NewTenant("Priya Patel", "", "B-204")
		require.NoError(t, err)
		require.NoError(t, unbilled.EnableElectricity(decimal.NewFromInt(9), 500))

		now := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)
		bill, err := billing.NewBillFromReading(billed, 1120, "Oct 2025", now)
		require.NoError(t, err)

		tenantRepo := new(MockTenantRepository)
		billRepo := new(mockBillReader)
		tenantRepo.On("FindWithElectricity", ctx).Return([]tenancy.Tenant{*billed, *unbilled}, nil)
		billRepo.On("FindByPeriod", ctx, "Oct 2025").Return([]billing.Bill{*bill}, nil)

		service := NewDashboardService(tenantRepo, billRepo, new(mockPaymentReader), nil, billing.PeriodPolicySameMonth, zap.NewNop())
		resp, err := service.NeedsReading(ctx, "Oct 2025")
		require.NoError(t, err)

		assert.Equal(t, "Oct 2025", resp.Period)
		require.Len(t, resp.Tenants, 1)
		assert.Equal(t, unbilled.ID, resp.Tenants[0].ID)
	})
}
