package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/tenancy"
)

// BillRepository defines persistence operations for electricity bills
type BillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Bill, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Bill, error)
	FindByPeriod(ctx context.Context, period string) ([]Bill, error)
	ExistsForPeriod(ctx context.Context, tenantID uuid.UUID, period string) (bool, error)
	// CreateWithMeterAdvance persists a freshly generated bill and the
	// tenant's advanced meter reading in one transaction, so a failed bill
	// insert can never leave the reading moved (and vice versa). The tenant
	// save uses optimistic locking; concurrent generation for the same
	// tenant surfaces as a conflict.
	CreateWithMeterAdvance(ctx context.Context, bill *Bill, tenant *tenancy.Tenant) error
	Save(ctx context.Context, bill *Bill) error
	// SaveWithLock updates the bill only if the stored version matches the
	// one the caller read. Racing payment submissions lose the race with a
	// conflict instead of silently overwriting each other.
	SaveWithLock(ctx context.Context, bill *Bill) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
