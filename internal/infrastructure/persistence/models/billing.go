package models

import (
	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill domain aggregate. The
// unique index on (tenant_id, period) is the storage-level guarantee of one
// bill per tenant per period.
type BillModel struct {
	AggregateModel
	TenantID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_bill_tenant_period,priority:1"`
	Period          string             `gorm:"type:varchar(16);not null;uniqueIndex:idx_bill_tenant_period,priority:2;index"`
	PreviousReading int64              `gorm:"not null"`
	CurrentReading  int64              `gorm:"not null"`
	UnitsConsumed   int64              `gorm:"not null"`
	Amount          decimal.Decimal    `gorm:"type:decimal(14,2);not null"`
	Status          billing.BillStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Date            string             `gorm:"type:varchar(10);not null"`
	PaidDate        *string            `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill aggregate.
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		Period:            m.Period,
		PreviousReading:   m.PreviousReading,
		CurrentReading:    m.CurrentReading,
		UnitsConsumed:     m.UnitsConsumed,
		Amount:            m.Amount,
		Status:            m.Status,
		Date:              m.Date,
		PaidDate:          m.PaidDate,
	}
}

// FromDomain populates the persistence model from a domain Bill aggregate.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.TenantID = b.TenantID
	m.Period = b.Period
	m.PreviousReading = b.PreviousReading
	m.CurrentReading = b.CurrentReading
	m.UnitsConsumed = b.UnitsConsumed
	m.Amount = b.Amount
	m.Status = b.Status
	m.Date = b.Date
	m.PaidDate = b.PaidDate
}

// BillModelFromDomain creates a new persistence model from a domain Bill.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}
