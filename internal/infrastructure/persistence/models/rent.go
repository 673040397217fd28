package models

import (
	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/rent"
	"github.com/shopspring/decimal"
)

// RentPaymentModel is the persistence model for the rent Payment domain
// aggregate. The unique index on (tenant_id, month) keeps the monthly
// rollover idempotent at the storage level.
type RentPaymentModel struct {
	AggregateModel
	TenantID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_rent_tenant_month,priority:1"`
	Month    string             `gorm:"type:varchar(16);not null;uniqueIndex:idx_rent_tenant_month,priority:2;index"`
	Amount   decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	DueDate  string             `gorm:"type:varchar(10);not null"`
	Status   rent.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidDate *string            `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (RentPaymentModel) TableName() string {
	return "rent_payments"
}

// ToDomain converts the persistence model to a domain Payment aggregate.
func (m *RentPaymentModel) ToDomain() *rent.Payment {
	return &rent.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		Month:             m.Month,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		Status:            m.Status,
		PaidDate:          m.PaidDate,
	}
}

// FromDomain populates the persistence model from a domain Payment aggregate.
func (m *RentPaymentModel) FromDomain(p *rent.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.TenantID = p.TenantID
	m.Month = p.Month
	m.Amount = p.Amount
	m.DueDate = p.DueDate
	m.Status = p.Status
	m.PaidDate = p.PaidDate
}

// RentPaymentModelFromDomain creates a new persistence model from a domain
// Payment.
func RentPaymentModelFromDomain(p *rent.Payment) *RentPaymentModel {
	m := &RentPaymentModel{}
	m.FromDomain(p)
	return m
}
