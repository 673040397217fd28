package tenancy

import (
	"context"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/shared"
)

// TenantRepository defines persistence operations for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	FindWithElectricity(ctx context.Context) ([]Tenant, error)
	FindWithRent(ctx context.Context) ([]Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	// SaveWithLock saves with optimistic locking on the aggregate version
	SaveWithLock(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
