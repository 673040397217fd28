package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// CreateTenantRequest represents a request to register a new tenant
type CreateTenantRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Phone  string `json:"phone" binding:"max=20"`
	FlatNo string `json:"flat_no" binding:"required,min=1,max=20"`

	Electricity *ElectricitySubscription `json:"electricity"`
	Rent        *RentSubscription        `json:"rent"`
}

// UpdateTenantRequest represents a request to update a tenant's details
type UpdateTenantRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone  *string `json:"phone" binding:"omitempty,max=20"`
	FlatNo *string `json:"flat_no" binding:"omitempty,min=1,max=20"`
	Active *bool   `json:"active"`

	Electricity *ElectricitySubscription `json:"electricity"`
	Rent        *RentSubscription        `json:"rent"`
}

// ElectricitySubscription configures metered electricity billing for a tenant
type ElectricitySubscription struct {
	Enabled        bool            `json:"enabled"`
	Rate           decimal.Decimal `json:"rate"`
	InitialReading int64           `json:"initial_reading" binding:"min=0"`
}

// RentSubscription configures monthly rent collection for a tenant
type RentSubscription struct {
	Enabled     bool            `json:"enabled"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	DueDay      int             `json:"due_day" binding:"omitempty,min=1,max=28"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	FlatNo string    `json:"flat_no"`
	Active bool      `json:"active"`

	ElectricityService  bool            `json:"electricity_service"`
	ElectricityRate     decimal.Decimal `json:"electricity_rate"`
	InitialMeterReading int64           `json:"initial_meter_reading"`
	CurrentMeterReading *int64          `json:"current_meter_reading"`
	LatestReading       int64           `json:"latest_reading"`

	RentService bool            `json:"rent_service"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	RentDueDay  int             `json:"rent_due_day"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// TenantListFilter represents filter options for the tenant list
type TenantListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Service  string `form:"service" binding:"omitempty,oneof=electricity rent"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToTenantResponse converts a domain tenant to its API representation
func ToTenantResponse(t *tenancy.Tenant) TenantResponse {
	return TenantResponse{
		ID:                  t.ID,
		Name:                t.Name,
		Phone:               t.Phone,
		FlatNo:              t.FlatNo,
		Active:              t.Active,
		ElectricityService:  t.ElectricityService,
		ElectricityRate:     t.ElectricityRate,
		InitialMeterReading: t.InitialMeterReading,
		CurrentMeterReading: t.CurrentMeterReading,
		LatestReading:       t.LatestReading(),
		RentService:         t.RentService,
		MonthlyRent:         t.MonthlyRent,
		RentDueDay:          t.RentDueDay,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
		Version:             t.Version,
	}
}

// ToTenantResponses converts a slice of domain tenants
func ToTenantResponses(tenants []tenancy.Tenant) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = ToTenantResponse(&tenants[i])
	}
	return responses
}
