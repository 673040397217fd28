package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/billing"
	"github.com/landlord/backend/internal/domain/shared/valueobject"
)

// GenerateBillRequest represents a request to generate a bill from a newly
// submitted meter reading
type GenerateBillRequest struct {
	TenantID       uuid.UUID `json:"tenant_id" binding:"required"`
	CurrentReading int64     `json:"current_reading" binding:"required,min=1"`
	// Period optionally overrides the policy-derived billing period,
	// e.g. when back-filling a missed month. "Jan 2006" format.
	Period string `json:"period" binding:"omitempty,period"`
}

// BillResponse represents an electricity bill in API responses.
// Amount serializes as Money, so clients always see the currency alongside
// the figure.
type BillResponse struct {
	ID              uuid.UUID         `json:"id"`
	TenantID        uuid.UUID         `json:"tenant_id"`
	Period          string            `json:"period"`
	PreviousReading int64             `json:"previous_reading"`
	CurrentReading  int64             `json:"current_reading"`
	UnitsConsumed   int64             `json:"units_consumed"`
	Amount          valueobject.Money `json:"amount"`
	Status          string            `json:"status"`
	Date            string            `json:"date"`
	PaidDate        *string           `json:"paid_date"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Version         int               `json:"version"`
}

// BillListFilter represents filter options for the bill list
type BillListFilter struct {
	TenantID *uuid.UUID `form:"tenant_id"`
	Period   string     `form:"period" binding:"omitempty,period"`
	Status   string     `form:"status" binding:"omitempty,oneof=pending paid"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PeriodResponse reports the current billing period under the configured
// policy
type PeriodResponse struct {
	Period string `json:"period"`
	Policy string `json:"policy"`
}

// ToBillResponse converts a domain bill to its API representation
func ToBillResponse(b *billing.Bill) BillResponse {
	return BillResponse{
		ID:              b.ID,
		TenantID:        b.TenantID,
		Period:          b.Period,
		PreviousReading: b.PreviousReading,
		CurrentReading:  b.CurrentReading,
		UnitsConsumed:   b.UnitsConsumed,
		Amount:          b.AmountMoney(),
		Status:          b.Status.String(),
		Date:            b.Date,
		PaidDate:        b.PaidDate,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		Version:         b.Version,
	}
}

// ToBillResponses converts a slice of domain bills
func ToBillResponses(bills []billing.Bill) []BillResponse {
	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}
	return responses
}
