package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/shared/valueobject"
	"github.com/landlord/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// BillStatus represents the payment status of an electricity bill
type BillStatus string

const (
	BillStatusPending BillStatus = "pending" // Issued, awaiting payment
	BillStatusPaid    BillStatus = "paid"    // Settled; terminal
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	return s == BillStatusPending || s == BillStatusPaid
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// DateLayout is the date-only format used for issue and paid dates
const DateLayout = "2006-01-02"

// Bill represents one electricity billing event for one tenant in one
// period. Readings, consumption and amount are snapshotted at generation
// time; after creation only the status may change.
type Bill struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID       `json:"tenant_id"`
	Period          string          `json:"period"`
	PreviousReading int64           `json:"previous_reading"`
	CurrentReading  int64           `json:"current_reading"`
	UnitsConsumed   int64           `json:"units_consumed"`
	Amount          decimal.Decimal `json:"amount"`
	Status          BillStatus      `json:"status"`
	Date            string          `json:"date"`      // Issue date, YYYY-MM-DD
	PaidDate        *string         `json:"paid_date"` // Set when marked paid
}

// NewBillFromReading translates a newly submitted meter reading into a
// pending bill for the tenant. The previous reading is the tenant's latest
// known one, consumption is the difference, and the amount snapshots the
// tenant's rate at generation time - later rate changes never alter issued
// bills. The caller is responsible for advancing the tenant's meter reading
// alongside persisting the bill.
func NewBillFromReading(tenant *tenancy.Tenant, submittedReading int64, period string, now time.Time) (*Bill, error) {
	if tenant == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant is required")
	}
	if !tenant.ElectricityService {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant has no electricity subscription")
	}
	if !tenant.HasRate() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant has no electricity rate configured")
	}
	if period == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Billing period cannot be empty")
	}

	previousReading := tenant.LatestReading()
	if submittedReading <= previousReading {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Submitted reading %d must be greater than the previous reading %d", submittedReading, previousReading))
	}

	unitsConsumed := submittedReading - previousReading
	amount := tenant.ElectricityRate.Mul(decimal.NewFromInt(unitsConsumed))

	return &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenant.ID,
		Period:            period,
		PreviousReading:   previousReading,
		CurrentReading:    submittedReading,
		UnitsConsumed:     unitsConsumed,
		Amount:            amount,
		Status:            BillStatusPending,
		Date:              now.Format(DateLayout),
	}, nil
}

// MarkPaid transitions the bill from pending to paid, stamping the paid
// date. Marking an already-paid bill is rejected with a conflict so a
// double submission surfaces instead of silently re-stamping the date.
func (b *Bill) MarkPaid(now time.Time) error {
	if b.Status == BillStatusPaid {
		return shared.NewDomainError("CONFLICT", "Bill is already paid")
	}

	paidDate := now.Format(DateLayout)
	b.Status = BillStatusPaid
	b.PaidDate = &paidDate
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// IsPending returns true if the bill is awaiting payment
func (b *Bill) IsPending() bool {
	return b.Status == BillStatusPending
}

// IsPaid returns true if the bill has been paid
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// AmountMoney returns the bill amount as Money
func (b *Bill) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(b.Amount)
}
