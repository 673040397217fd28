package tenancy

import (
	"fmt"
	"time"

	"github.com/landlord/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RentDueDayMax is the latest allowed due day of month for rent. Capped at 28
// so every month of every year has the due day.
const RentDueDayMax = 28

// Tenant represents an occupant of a rentable unit. A tenant may subscribe to
// electricity billing (metered, billed per unit consumed) and/or monthly rent
// collection; either subscription can be enabled independently.
type Tenant struct {
	shared.BaseAggregateRoot
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	FlatNo string `json:"flat_no"`
	Active bool   `json:"active"`

	ElectricityService  bool            `json:"electricity_service"`
	ElectricityRate     decimal.Decimal `json:"electricity_rate"`
	InitialMeterReading int64           `json:"initial_meter_reading"`
	// CurrentMeterReading is the latest recorded meter reading. It is nil
	// until the first bill is generated and advances only through
	// AdvanceMeterReading.
	CurrentMeterReading *int64 `json:"current_meter_reading"`

	RentService bool            `json:"rent_service"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	RentDueDay  int             `json:"rent_due_day"`
}

// NewTenant creates a new active tenant without any service subscriptions
func NewTenant(name, phone, flatNo string) (*Tenant, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant name cannot be empty")
	}
	if flatNo == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Flat number cannot be empty")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		FlatNo:            flatNo,
		Active:            true,
	}, nil
}

// Update changes the tenant's basic details
func (t *Tenant) Update(name, phone, flatNo string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Tenant name cannot be empty")
	}
	if flatNo == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Flat number cannot be empty")
	}

	t.Name = name
	t.Phone = phone
	t.FlatNo = flatNo
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// EnableElectricity subscribes the tenant to metered electricity billing.
// The rate is the price per consumed unit; initialReading is the meter
// baseline recorded at onboarding.
func (t *Tenant) EnableElectricity(rate decimal.Decimal, initialReading int64) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Electricity rate must be positive")
	}
	if initialReading < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Initial meter reading cannot be negative")
	}

	t.ElectricityService = true
	t.ElectricityRate = rate
	t.InitialMeterReading = initialReading
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// DisableElectricity unsubscribes the tenant from electricity billing.
// The recorded readings are kept so existing bills stay interpretable.
func (t *Tenant) DisableElectricity() {
	t.ElectricityService = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetElectricityRate changes the per-unit rate. Bills already issued carry
// their own amount snapshot and are never affected.
func (t *Tenant) SetElectricityRate(rate decimal.Decimal) error {
	if !t.ElectricityService {
		return shared.NewDomainError("INVALID_STATE", "Tenant has no electricity subscription")
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Electricity rate must be positive")
	}

	t.ElectricityRate = rate
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// EnableRent subscribes the tenant to monthly rent collection
func (t *Tenant) EnableRent(monthlyRent decimal.Decimal, dueDay int) error {
	if monthlyRent.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Monthly rent must be positive")
	}
	if dueDay < 1 || dueDay > RentDueDayMax {
		return shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Rent due day must be between 1 and %d", RentDueDayMax))
	}

	t.RentService = true
	t.MonthlyRent = monthlyRent
	t.RentDueDay = dueDay
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// DisableRent unsubscribes the tenant from rent collection
func (t *Tenant) DisableRent() {
	t.RentService = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Activate marks the tenant as active
func (t *Tenant) Activate() {
	t.Active = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Deactivate marks the tenant as inactive (moved out)
func (t *Tenant) Deactivate() {
	t.Active = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// LatestReading returns the most recent known meter reading: the current
// reading if one has been recorded, otherwise the initial baseline.
func (t *Tenant) LatestReading() int64 {
	if t.CurrentMeterReading != nil {
		return *t.CurrentMeterReading
	}
	return t.InitialMeterReading
}

// AdvanceMeterReading moves the current meter reading forward. The meter is a
// cumulative counter, so the new reading must be strictly greater than the
// latest known one; bill generation is the only caller.
func (t *Tenant) AdvanceMeterReading(reading int64) error {
	if !t.ElectricityService {
		return shared.NewDomainError("INVALID_STATE", "Tenant has no electricity subscription")
	}
	if reading <= t.LatestReading() {
		return shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Meter reading %d must be greater than the previous reading %d", reading, t.LatestReading()))
	}

	t.CurrentMeterReading = &reading
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// HasRate returns true if a usable electricity rate is configured
func (t *Tenant) HasRate() bool {
	return t.ElectricityService && t.ElectricityRate.GreaterThan(decimal.Zero)
}
