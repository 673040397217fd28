package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/tenancy"
	"github.com/landlord/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

var _ tenancy.TenantRepository = (*GormTenantRepository)(nil)

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tenants matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TenantModel{}), filter)

	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return toDomainTenants(tenantModels), nil
}

// FindActive finds all active tenants matching the filter
func (r *GormTenantRepository) FindActive(ctx context.Context, filter shared.Filter) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TenantModel{}).Where("active = ?", true),
		filter,
	)

	if err := query.Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return toDomainTenants(tenantModels), nil
}

// FindWithElectricity finds all tenants subscribed to electricity billing
func (r *GormTenantRepository) FindWithElectricity(ctx context.Context) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("electricity_service = ?", true).
		Order("flat_no ASC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return toDomainTenants(tenantModels), nil
}

// FindWithRent finds all tenants subscribed to rent collection
func (r *GormTenantRepository) FindWithRent(ctx context.Context) ([]tenancy.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("rent_service = ?", true).
		Order("flat_no ASC").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return toDomainTenants(tenantModels), nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a tenant with optimistic locking on the aggregate
// version. Returns a conflict if another transaction changed the row.
func (r *GormTenantRepository) SaveWithLock(ctx context.Context, tenant *tenancy.Tenant) error {
	return saveTenantWithLock(r.db.WithContext(ctx), tenant)
}

// saveTenantWithLock performs the version-checked update on the given
// handle, so the bill repository can reuse it inside a transaction.
func saveTenantWithLock(db *gorm.DB, tenant *tenancy.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	result := db.
		Model(model).
		Select("*").
		Where("id = ? AND version = ?", tenant.ID, tenant.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONFLICT", "The tenant record has been modified by another transaction")
	}
	return nil
}

// Delete deletes a tenant
func (r *GormTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TenantModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tenants matching the filter
func (r *GormTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.TenantModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTenantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("flat_no ASC, name ASC")
	}

	return query
}

func (r *GormTenantRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR flat_no ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active", "electricity_service", "rent_service":
			query = query.Where(key+" = ?", value)
		}
	}

	return query
}

func toDomainTenants(tenantModels []models.TenantModel) []tenancy.Tenant {
	tenants := make([]tenancy.Tenant, len(tenantModels))
	for i := range tenantModels {
		tenants[i] = *tenantModels[i].ToDomain()
	}
	return tenants
}
