package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/rent"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRentPaymentRepository implements PaymentRepository using GORM
type GormRentPaymentRepository struct {
	db *gorm.DB
}

var _ rent.PaymentRepository = (*GormRentPaymentRepository)(nil)

// NewGormRentPaymentRepository creates a new GormRentPaymentRepository
func NewGormRentPaymentRepository(db *gorm.DB) *GormRentPaymentRepository {
	return &GormRentPaymentRepository{db: db}
}

// FindByID finds a rent payment by its ID
func (r *GormRentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*rent.Payment, error) {
	var model models.RentPaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all rent payments matching the filter
func (r *GormRentPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rent.Payment, error) {
	var paymentModels []models.RentPaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RentPaymentModel{}), filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByTenant finds all rent payments for a tenant
func (r *GormRentPaymentRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]rent.Payment, error) {
	var paymentModels []models.RentPaymentModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.RentPaymentModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByMonth finds all rent payments for a month
func (r *GormRentPaymentRepository) FindByMonth(ctx context.Context, month string) ([]rent.Payment, error) {
	var paymentModels []models.RentPaymentModel
	if err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Order("due_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// ExistsForMonth checks whether a tenant already has a payment record for a
// month
func (r *GormRentPaymentRepository) ExistsForMonth(ctx context.Context, tenantID uuid.UUID, month string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RentPaymentModel{}).
		Where("tenant_id = ? AND month = ?", tenantID, month).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a rent payment
func (r *GormRentPaymentRepository) Save(ctx context.Context, payment *rent.Payment) error {
	model := models.RentPaymentModelFromDomain(payment)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", "Rent record already exists for this tenant and month")
		}
		return err
	}
	return nil
}

// SaveWithLock saves a rent payment with optimistic locking on the aggregate
// version. Returns a conflict if another transaction changed the row, so two
// racing toggles cannot silently overwrite each other.
func (r *GormRentPaymentRepository) SaveWithLock(ctx context.Context, payment *rent.Payment) error {
	model := models.RentPaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(model).
		Select("*").
		Where("id = ? AND version = ?", payment.ID, payment.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONFLICT", "The rent record has been modified by another transaction")
	}
	return nil
}

// Delete deletes a rent payment
func (r *GormRentPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RentPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByTenant counts all rent payments belonging to a tenant
func (r *GormRentPaymentRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RentPaymentModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts rent payments matching the filter
func (r *GormRentPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.RentPaymentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRentPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormRentPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "tenant_id", "month", "status":
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}

func toDomainPayments(paymentModels []models.RentPaymentModel) []rent.Payment {
	payments := make([]rent.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments
}
