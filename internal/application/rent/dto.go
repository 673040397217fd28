package rent

import (
	"time"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/rent"
	"github.com/landlord/backend/internal/domain/shared/valueobject"
)

// RolloverRequest represents a request to create the month's pending rent
// payments
type RolloverRequest struct {
	// Month optionally targets a specific month instead of the current one.
	// "Jan 2006" format.
	Month string `json:"month" binding:"omitempty,period"`
}

// RolloverResponse reports the outcome of a rollover run
type RolloverResponse struct {
	Month   string            `json:"month"`
	Created int               `json:"created"`
	Skipped int               `json:"skipped"`
	Items   []PaymentResponse `json:"items"`
}

// PaymentResponse represents a rent payment in API responses.
// Amount serializes as Money, so clients always see the currency alongside
// the figure.
type PaymentResponse struct {
	ID        uuid.UUID         `json:"id"`
	TenantID  uuid.UUID         `json:"tenant_id"`
	Month     string            `json:"month"`
	Amount    valueobject.Money `json:"amount"`
	DueDate   string            `json:"due_date"`
	Status    string            `json:"status"`
	PaidDate  *string           `json:"paid_date"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Version   int               `json:"version"`
}

// PaymentListFilter represents filter options for the payment list
type PaymentListFilter struct {
	TenantID *uuid.UUID `form:"tenant_id"`
	Month    string     `form:"month" binding:"omitempty,period"`
	Status   string     `form:"status" binding:"omitempty,oneof=pending paid"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToPaymentResponse converts a domain payment to its API representation
func ToPaymentResponse(p *rent.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		TenantID:  p.TenantID,
		Month:     p.Month,
		Amount:    p.AmountMoney(),
		DueDate:   p.DueDate,
		Status:    p.Status.String(),
		PaidDate:  p.PaidDate,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Version:   p.Version,
	}
}

// ToPaymentResponses converts a slice of domain payments
func ToPaymentResponses(payments []rent.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
