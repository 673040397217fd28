package report

import (
	"github.com/landlord/backend/internal/application/tenancy"
	"github.com/landlord/backend/internal/domain/report"
	"github.com/landlord/backend/internal/domain/shared/valueobject"
)

// DashboardResponse represents the dashboard figures for one period.
// Monetary figures serialize as Money, so clients always see the currency
// alongside them.
type DashboardResponse struct {
	Period string `json:"period"`

	ElectricityRevenue valueobject.Money `json:"electricity_revenue"`
	RentRevenue        valueobject.Money `json:"rent_revenue"`
	TotalRevenue       valueobject.Money `json:"total_revenue"`

	PendingBills       int               `json:"pending_bills"`
	PaidBills          int               `json:"paid_bills"`
	OutstandingBills   valueobject.Money `json:"outstanding_bills"`
	PendingRent        int               `json:"pending_rent"`
	PaidRent           int               `json:"paid_rent"`
	OutstandingRent    valueobject.Money `json:"outstanding_rent"`
	TotalUnitsConsumed int64             `json:"total_units_consumed"`

	ActiveTenants      int `json:"active_tenants"`
	ElectricityTenants int `json:"electricity_tenants"`
	RentTenants        int `json:"rent_tenants"`
}

// NeedsReadingResponse lists the tenants still awaiting a meter reading for
// the period
type NeedsReadingResponse struct {
	Period  string                   `json:"period"`
	Tenants []tenancy.TenantResponse `json:"tenants"`
}

// ToDashboardResponse converts a domain summary to its API representation
func ToDashboardResponse(s report.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		Period:             s.Period,
		ElectricityRevenue: valueobject.NewMoneyINR(s.ElectricityRevenue),
		RentRevenue:        valueobject.NewMoneyINR(s.RentRevenue),
		TotalRevenue:       valueobject.NewMoneyINR(s.TotalRevenue),
		PendingBills:       s.PendingBills,
		PaidBills:          s.PaidBills,
		OutstandingBills:   valueobject.NewMoneyINR(s.OutstandingBills),
		PendingRent:        s.PendingRent,
		PaidRent:           s.PaidRent,
		OutstandingRent:    valueobject.NewMoneyINR(s.OutstandingRent),
		TotalUnitsConsumed: s.TotalUnitsConsumed,
		ActiveTenants:      s.ActiveTenants,
		ElectricityTenants: s.ElectricityTenants,
		RentTenants:        s.RentTenants,
	}
}
