package tenancy

import (
	"context"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/tenancy"
)

// SummaryInvalidator drops cached dashboard summaries after a write
type SummaryInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// DependentCounter reports how many records of a collection reference a
// tenant. Both the bill and the rent payment repositories satisfy it; the
// tenant service only needs the counts to guard deletion.
type DependentCounter interface {
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// TenantService handles tenant-related business operations
type TenantService struct {
	tenantRepo tenancy.TenantRepository
	bills      DependentCounter
	payments   DependentCounter
	summaries  SummaryInvalidator
}

// NewTenantService creates a new TenantService. summaries may be nil when no
// dashboard cache is configured.
func NewTenantService(tenantRepo tenancy.TenantRepository, bills, payments DependentCounter, summaries SummaryInvalidator) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		bills:      bills,
		payments:   payments,
		summaries:  summaries,
	}
}

// invalidateSummaries is best effort; a stale dashboard entry expires on its
// own TTL anyway.
func (s *TenantService) invalidateSummaries(ctx context.Context) {
	if s.summaries != nil {
		_ = s.summaries.InvalidateAll(ctx)
	}
}

// Create registers a new tenant, optionally with service subscriptions
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	tenant, err := tenancy.NewTenant(req.Name, req.Phone, req.FlatNo)
	if err != nil {
		return nil, err
	}

	if req.Electricity != nil && req.Electricity.Enabled {
		if err := tenant.EnableElectricity(req.Electricity.Rate, req.Electricity.InitialReading); err != nil {
			return nil, err
		}
	}

	if req.Rent != nil && req.Rent.Enabled {
		if err := tenant.EnableRent(req.Rent.MonthlyRent, req.Rent.DueDay); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.invalidateSummaries(ctx)

	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// List retrieves tenants with filtering and pagination
func (s *TenantService) List(ctx context.Context, filter TenantListFilter) ([]TenantResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}
	switch filter.Service {
	case "electricity":
		domainFilter.Filters["electricity_service"] = true
	case "rent":
		domainFilter.Filters["rent_service"] = true
	}

	tenants, err := s.tenantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.tenantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTenantResponses(tenants), total, nil
}

// Update changes a tenant's details and service subscriptions
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := tenant.Name
	phone := tenant.Phone
	flatNo := tenant.FlatNo
	if req.Name != nil {
		name = *req.Name
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.FlatNo != nil {
		flatNo = *req.FlatNo
	}
	if err := tenant.Update(name, phone, flatNo); err != nil {
		return nil, err
	}

	if req.Active != nil {
		if *req.Active {
			tenant.Activate()
		} else {
			tenant.Deactivate()
		}
	}

	if req.Electricity != nil {
		if req.Electricity.Enabled {
			if tenant.ElectricityService {
				// Subscription exists; only the rate may change. The meter
				// baseline is fixed at onboarding.
				if err := tenant.SetElectricityRate(req.Electricity.Rate); err != nil {
					return nil, err
				}
			} else {
				if err := tenant.EnableElectricity(req.Electricity.Rate, req.Electricity.InitialReading); err != nil {
					return nil, err
				}
			}
		} else {
			tenant.DisableElectricity()
		}
	}

	if req.Rent != nil {
		if req.Rent.Enabled {
			if err := tenant.EnableRent(req.Rent.MonthlyRent, req.Rent.DueDay); err != nil {
				return nil, err
			}
		} else {
			tenant.DisableRent()
		}
	}

	if err := s.tenantRepo.SaveWithLock(ctx, tenant); err != nil {
		return nil, err
	}
	s.invalidateSummaries(ctx)

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Delete removes a tenant. Deletion is blocked while bills or rent payments
// reference the tenant, so the billing history stays intact.
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tenantRepo.FindByID(ctx, id); err != nil {
		return err
	}

	billCount, err := s.bills.CountByTenant(ctx, id)
	if err != nil {
		return err
	}
	if billCount > 0 {
		return shared.NewDomainError("CONFLICT", "Tenant has electricity bills and cannot be deleted")
	}

	paymentCount, err := s.payments.CountByTenant(ctx, id)
	if err != nil {
		return err
	}
	if paymentCount > 0 {
		return shared.NewDomainError("CONFLICT", "Tenant has rent payments and cannot be deleted")
	}

	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSummaries(ctx)
	return nil
}
