package report

import (
	"github.com/landlord/backend/internal/domain/billing"
	"github.com/landlord/backend/internal/domain/rent"
	"github.com/landlord/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// DashboardSummary is a value object holding the dashboard figures for one
// billing period. All fields are derived; it carries no identity.
type DashboardSummary struct {
	Period string `json:"period"`

	ElectricityRevenue decimal.Decimal `json:"electricity_revenue"`
	RentRevenue        decimal.Decimal `json:"rent_revenue"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`

	PendingBills       int             `json:"pending_bills"`
	PaidBills          int             `json:"paid_bills"`
	OutstandingBills   decimal.Decimal `json:"outstanding_bills"`
	PendingRent        int             `json:"pending_rent"`
	PaidRent           int             `json:"paid_rent"`
	OutstandingRent    decimal.Decimal `json:"outstanding_rent"`
	TotalUnitsConsumed int64           `json:"total_units_consumed"`

	ActiveTenants      int `json:"active_tenants"`
	ElectricityTenants int `json:"electricity_tenants"`
	RentTenants        int `json:"rent_tenants"`
}

// Summarize reduces the tenant, bill and payment collections into the
// dashboard figures for the given period. Revenue counts only paid records;
// outstanding sums only pending ones. Empty inputs yield a zero summary.
func Summarize(tenants []tenancy.Tenant, bills []billing.Bill, payments []rent.Payment, period string) DashboardSummary {
	s := DashboardSummary{
		Period:             period,
		ElectricityRevenue: decimal.Zero,
		RentRevenue:        decimal.Zero,
		TotalRevenue:       decimal.Zero,
		OutstandingBills:   decimal.Zero,
		OutstandingRent:    decimal.Zero,
	}

	for i := range bills {
		b := &bills[i]
		if b.Period != period {
			continue
		}
		s.TotalUnitsConsumed += b.UnitsConsumed
		if b.IsPaid() {
			s.PaidBills++
			s.ElectricityRevenue = s.ElectricityRevenue.Add(b.Amount)
		} else {
			s.PendingBills++
			s.OutstandingBills = s.OutstandingBills.Add(b.Amount)
		}
	}

	for i := range payments {
		p := &payments[i]
		if p.Month != period {
			continue
		}
		if p.IsPaid() {
			s.PaidRent++
			s.RentRevenue = s.RentRevenue.Add(p.Amount)
		} else {
			s.PendingRent++
			s.OutstandingRent = s.OutstandingRent.Add(p.Amount)
		}
	}

	for i := range tenants {
		t := &tenants[i]
		if t.Active {
			s.ActiveTenants++
		}
		if t.ElectricityService {
			s.ElectricityTenants++
		}
		if t.RentService {
			s.RentTenants++
		}
	}

	s.TotalRevenue = s.ElectricityRevenue.Add(s.RentRevenue)
	return s
}

// TotalRevenue sums paid bill amounts and paid payment amounts for the
// period
func TotalRevenue(bills []billing.Bill, payments []rent.Payment, period string) decimal.Decimal {
	total := decimal.Zero
	for i := range bills {
		if bills[i].Period == period && bills[i].IsPaid() {
			total = total.Add(bills[i].Amount)
		}
	}
	for i := range payments {
		if payments[i].Month == period && payments[i].IsPaid() {
			total = total.Add(payments[i].Amount)
		}
	}
	return total
}

// OutstandingBillAmount sums the amounts of pending bills for the period
func OutstandingBillAmount(bills []billing.Bill, period string) decimal.Decimal {
	total := decimal.Zero
	for i := range bills {
		if bills[i].Period == period && bills[i].IsPending() {
			total = total.Add(bills[i].Amount)
		}
	}
	return total
}

// OutstandingRentAmount sums the amounts of pending rent payments for the
// month
func OutstandingRentAmount(payments []rent.Payment, month string) decimal.Decimal {
	total := decimal.Zero
	for i := range payments {
		if payments[i].Month == month && payments[i].IsPending() {
			total = total.Add(payments[i].Amount)
		}
	}
	return total
}

// TotalUnitsConsumed sums consumption across all bills in the period,
// regardless of payment status
func TotalUnitsConsumed(bills []billing.Bill, period string) int64 {
	var total int64
	for i := range bills {
		if bills[i].Period == period {
			total += bills[i].UnitsConsumed
		}
	}
	return total
}

// TenantsNeedingReading returns the electricity-subscribed tenants that have
// no bill for the period yet. It drives the "pending reading" reminder list.
func TenantsNeedingReading(tenants []tenancy.Tenant, bills []billing.Bill, period string) []tenancy.Tenant {
	billed := make(map[string]bool, len(bills))
	for i := range bills {
		if bills[i].Period == period {
			billed[bills[i].TenantID.String()] = true
		}
	}

	var needing []tenancy.Tenant
	for i := range tenants {
		t := tenants[i]
		if t.ElectricityService && !billed[t.ID.String()] {
			needing = append(needing, t)
		}
	}
	return needing
}
