package rent

import (
	"context"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/shared"
)

// PaymentRepository defines persistence operations for rent payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Payment, error)
	FindByMonth(ctx context.Context, month string) ([]Payment, error)
	ExistsForMonth(ctx context.Context, tenantID uuid.UUID, month string) (bool, error)
	Save(ctx context.Context, payment *Payment) error
	// SaveWithLock updates the payment only if the stored version matches
	// the one the caller read. Racing toggles lose the race with a conflict
	// instead of silently overwriting each other.
	SaveWithLock(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
