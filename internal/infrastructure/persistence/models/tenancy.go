package models

import (
	"github.com/landlord/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant domain aggregate.
type TenantModel struct {
	AggregateModel
	Name   string `gorm:"type:varchar(100);not null"`
	Phone  string `gorm:"type:varchar(20)"`
	FlatNo string `gorm:"type:varchar(20);not null;index"`
	Active bool   `gorm:"not null;default:true;index"`

	ElectricityService  bool            `gorm:"not null;default:false;index"`
	ElectricityRate     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	InitialMeterReading int64           `gorm:"not null;default:0"`
	CurrentMeterReading *int64

	RentService bool            `gorm:"not null;default:false;index"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RentDueDay  int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant aggregate.
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		Name:                m.Name,
		Phone:               m.Phone,
		FlatNo:              m.FlatNo,
		Active:              m.Active,
		ElectricityService:  m.ElectricityService,
		ElectricityRate:     m.ElectricityRate,
		InitialMeterReading: m.InitialMeterReading,
		CurrentMeterReading: m.CurrentMeterReading,
		RentService:         m.RentService,
		MonthlyRent:         m.MonthlyRent,
		RentDueDay:          m.RentDueDay,
	}
}

// FromDomain populates the persistence model from a domain Tenant aggregate.
func (m *TenantModel) FromDomain(t *tenancy.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.Phone = t.Phone
	m.FlatNo = t.FlatNo
	m.Active = t.Active
	m.ElectricityService = t.ElectricityService
	m.ElectricityRate = t.ElectricityRate
	m.InitialMeterReading = t.InitialMeterReading
	m.CurrentMeterReading = t.CurrentMeterReading
	m.RentService = t.RentService
	m.MonthlyRent = t.MonthlyRent
	m.RentDueDay = t.RentDueDay
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant.
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}
