package rent

import (
	"time"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/shared/valueobject"
	"github.com/landlord/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a monthly rent payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// dateLayout is the date-only format used for due and paid dates
const dateLayout = "2006-01-02"

// Payment represents one rent obligation for one tenant in one calendar
// month. The amount snapshots the tenant's monthly rent at creation time.
// Unlike bills, rent payments may be toggled back to pending, reflecting
// the real workflow of correcting a mis-marked payment.
type Payment struct {
	shared.BaseAggregateRoot
	TenantID uuid.UUID       `json:"tenant_id"`
	Month    string          `json:"month"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"due_date"` // YYYY-MM-DD
	Status   PaymentStatus   `json:"status"`
	PaidDate *string         `json:"paid_date"`
}

// NewPayment creates a pending rent payment for the given month. The due
// date is taken from the tenant's configured due day within monthStart's
// month.
func NewPayment(tenant *tenancy.Tenant, month string, monthStart time.Time) (*Payment, error) {
	if tenant == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant is required")
	}
	if !tenant.RentService {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant has no rent subscription")
	}
	if tenant.MonthlyRent.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant has no monthly rent configured")
	}
	if month == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Month label cannot be empty")
	}

	dueDay := tenant.RentDueDay
	if dueDay < 1 {
		dueDay = 1
	}
	year, m, _ := monthStart.Date()
	dueDate := time.Date(year, m, dueDay, 0, 0, 0, 0, monthStart.Location())

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenant.ID,
		Month:             month,
		Amount:            tenant.MonthlyRent,
		DueDate:           dueDate.Format(dateLayout),
		Status:            PaymentStatusPending,
	}, nil
}

// Toggle flips the payment between pending and paid. The forward direction
// stamps the paid date; the reverse clears it. Amount, month and tenant
// reference are never touched.
func (p *Payment) Toggle(now time.Time) {
	if p.Status == PaymentStatusPaid {
		p.Status = PaymentStatusPending
		p.PaidDate = nil
	} else {
		paidDate := now.Format(dateLayout)
		p.Status = PaymentStatusPaid
		p.PaidDate = &paidDate
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsPending returns true if the payment is outstanding
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// IsPaid returns true if the payment has been collected
func (p *Payment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// AmountMoney returns the payment amount as Money
func (p *Payment) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Amount)
}
