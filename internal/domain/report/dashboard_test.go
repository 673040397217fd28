package report

import (
	"testing"
	"time"

	"github.com/landlord/backend/internal/domain/billing"
	"github.com/landlord/backend/internal/domain/rent"
	"github.com/landlord/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPeriod = "Oct 2025"

func newTenant(t *testing.T, name, flat string) *tenancy.Tenant {
	t.Helper()
	tenant, err := tenancy.NewTenant(name, "", flat)
	require.NoError(t, err)
	return tenant
}

func newBill(t *testing.T, tenant *tenancy.Tenant, reading int64, paid bool) billing.Bill {
	t.Helper()
	now := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)
	bill, err := billing.NewBillFromReading(tenant, reading, testPeriod, now)
	require.NoError(t, err)
	if paid {
		require.NoError(t, bill.MarkPaid(now))
	}
	return *bill
}

func TestSummarize(t *testing.T) {
	t.Run("aggregates revenue, counts and outstanding per period", func(t *testing.T) {
		// Paid bill of 1800 plus paid rent of 8000 gives 9800 revenue;
		// a 900 pending bill stays outstanding.
		elec := newTenant(t, "Rahul Sharma", "A-101")
		require.NoError(t, elec.EnableElectricity(decimal.NewFromInt(15), 1000))
		elec2 := newTenant(t, "Priya Patel", "B-204")
		require.NoError(t, elec2.EnableElectricity(decimal.NewFromInt(9), 500))
		renter := newTenant(t, "Amit Verma", "C-303")
		require.NoError(t, renter.EnableRent(decimal.NewFromInt(8000), 5))

		bills := []billing.Bill{
			newBill(t, elec, 1120, true),  // 120 units, 1800, paid
			newBill(t, elec2, 600, false), // 100 units, 900, pending
		}

		payment, err := rent.NewPayment(renter, testPeriod, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		payment.Toggle(time.Date(2025, time.October, 7, 0, 0, 0, 0, time.UTC))
		payments := []rent.Payment{*payment}

		tenants := []tenancy.Tenant{*elec, *elec2, *renter}

		s := Summarize(tenants, bills, payments, testPeriod)

		assert.Equal(t, testPeriod, s.Period)
		assert.True(t, s.ElectricityRevenue.Equal(decimal.NewFromInt(1800)))
		assert.True(t, s.RentRevenue.Equal(decimal.NewFromInt(8000)))
		assert.True(t, s.TotalRevenue.Equal(decimal.NewFromInt(9800)))
		assert.Equal(t, 1, s.PaidBills)
		assert.Equal(t, 1, s.PendingBills)
		assert.True(t, s.OutstandingBills.Equal(decimal.NewFromInt(900)))
		assert.Equal(t, 1, s.PaidRent)
		assert.Equal(t, 0, s.PendingRent)
		assert.True(t, s.OutstandingRent.Equal(decimal.Zero))
		assert.Equal(t, int64(220), s.TotalUnitsConsumed)
		assert.Equal(t, 3, s.ActiveTenants)
		assert.Equal(t, 2, s.ElectricityTenants)
		assert.Equal(t, 1, s.RentTenants)
	})

	t.Run("ignores records from other periods", func(t *testing.T) {
		elec := newTenant(t, "Rahul Sharma", "A-101")
		require.NoError(t, elec.EnableElectricity(decimal.NewFromInt(15), 1000))

		now := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
		bill, err := billing.NewBillFromReading(elec, 1120, "Sep 2025", now)
		require.NoError(t, err)
		require.NoError(t, bill.MarkPaid(now))

		s := Summarize(nil, []billing.Bill{*bill}, nil, testPeriod)
		assert.True(t, s.TotalRevenue.IsZero())
		assert.Equal(t, 0, s.PaidBills)
		assert.Equal(t, int64(0), s.TotalUnitsConsumed)
	})

	t.Run("returns zero summary on empty inputs", func(t *testing.T) {
		s := Summarize(nil, nil, nil, testPeriod)

		assert.True(t, s.TotalRevenue.IsZero())
		assert.True(t, s.OutstandingBills.IsZero())
		assert.True(t, s.OutstandingRent.IsZero())
		assert.Equal(t, 0, s.PendingBills)
		assert.Equal(t, 0, s.PendingRent)
		assert.Equal(t, int64(0), s.TotalUnitsConsumed)
		assert.Equal(t, 0, s.ActiveTenants)
	})
}

func TestTenantsNeedingReading(t *testing.T) {
	t.Run("lists subscribed tenants without a bill this period", func(t *testing.T) {
		billed := newTenant(t, "Rahul Sharma", "A-101")
		require.NoError(t, billed.EnableElectricity(decimal.NewFromInt(15), 1000))
		unbilled := newTenant(t, "Priya Patel", "B-204")
		require.NoError(t, unbilled.EnableElectricity(decimal.NewFromInt(9), 500))
		rentOnly := newTenant(t, "Amit Verma", "C-303")
		require.NoError(t, rentOnly.EnableRent(decimal.NewFromInt(8000), 5))

		bills := []billing.Bill{newBill(t, billed, 1120, false)}
		tenants := []tenancy.Tenant{*billed, *unbilled, *rentOnly}

		needing := TenantsNeedingReading(tenants, bills, testPeriod)
		require.Len(t, needing, 1)
		assert.Equal(t, unbilled.ID, needing[0].ID)
	})

	t.Run("bill from another period does not count", func(t *testing.T) {
		tenant := newTenant(t, "Rahul Sharma", "A-101")
		require.NoError(t, tenant.EnableElectricity(decimal.NewFromInt(15), 1000))

		now := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
		bill, err := billing.NewBillFromReading(tenant, 1120, "Sep 2025", now)
		require.NoError(t, err)

		needing := TenantsNeedingReading([]tenancy.Tenant{*tenant}, []billing.Bill{*bill}, testPeriod)
		require.Len(t, needing, 1)
	})

	t.Run("empty inputs yield no tenants", func(t *testing.T) {
		assert.Empty(t, TenantsNeedingReading(nil, nil, testPeriod))
	})
}

func TestOutstandingAmounts(t *testing.T) {
	elec := newTenant(t, "Rahul Sharma", "A-101")
	require.NoError(t, elec.EnableElectricity(decimal.NewFromInt(15), 1000))
	renter := newTenant(t, "Amit Verma", "C-303")
	require.NoError(t, renter.EnableRent(decimal.NewFromInt(8000), 5))

	bills := []billing.Bill{newBill(t, elec, 1120, false)}
	payment, err := rent.NewPayment(renter, testPeriod, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, OutstandingBillAmount(bills, testPeriod).Equal(decimal.NewFromInt(1800)))
	assert.True(t, OutstandingRentAmount([]rent.Payment{*payment}, testPeriod).Equal(decimal.NewFromInt(8000)))
	assert.True(t, OutstandingBillAmount(nil, testPeriod).IsZero())
}

func TestTotalUnitsConsumed(t *testing.T) {
	elec := newTenant(t, "Rahul Sharma", "A-101")
	require.NoError(t, elec.EnableElectricity(decimal.NewFromInt(15), 1000))
	elec2 := newTenant(t, "Priya Patel", "B-204")
	require.NoError(t, elec2.EnableElectricity(decimal.NewFromInt(9), 500))

	bills := []billing.Bill{
		newBill(t, elec, 1120, true),
		newBill(t, elec2, 600, false),
	}

	assert.Equal(t, int64(220), TotalUnitsConsumed(bills, testPeriod))
	assert.Equal(t, int64(0), TotalUnitsConsumed(nil, testPeriod))
}
