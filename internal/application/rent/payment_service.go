package rent

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/billing"
	"github.com/landlord/backend/internal/domain/rent"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/tenancy"
)

// SummaryInvalidator drops cached dashboard summaries after a write
type SummaryInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// PaymentService handles monthly rent collection
type PaymentService struct {
	paymentRepo rent.PaymentRepository
	tenantRepo  tenancy.TenantRepository
	summaries   SummaryInvalidator
	now         func() time.Time
}

// NewPaymentService creates a new PaymentService. summaries may be nil when
// no dashboard cache is configured.
func NewPaymentService(paymentRepo rent.PaymentRepository, tenantRepo tenancy.TenantRepository, summaries SummaryInvalidator) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		summaries:   summaries,
		now:         time.Now,
	}
}

func (s *PaymentService) invalidateSummaries(ctx context.Context) {
	if s.summaries != nil {
		_ = s.summaries.InvalidateAll(ctx)
	}
}

// Rollover creates a pending payment for every active rent-subscribed tenant
// that has none for the month yet. Rent is always collected for the calendar
// month it falls in, so no period policy applies here. The operation is
// idempotent; tenants already covered are skipped and re-running it after a
// partial failure picks up where it left off.
func (s *PaymentService) Rollover(ctx context.Context, req RolloverRequest) (*RolloverResponse, error) {
	now := s.now()
	month := req.Month
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if month == "" {
		month = billing.PeriodLabel(now, billing.PeriodPolicySameMonth)
	} else {
		parsed, err := billing.ParsePeriodLabel(month)
		if err != nil {
			return nil, err
		}
		monthStart = parsed
	}

	tenants, err := s.tenantRepo.FindWithRent(ctx)
	if err != nil {
		return nil, err
	}

	result := &RolloverResponse{Month: month, Items: []PaymentResponse{}}
	for i := range tenants {
		tenant := &tenants[i]
		if !tenant.Active {
			continue
		}

		exists, err := s.paymentRepo.ExistsForMonth(ctx, tenant.ID, month)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		payment, err := rent.NewPayment(tenant, month, monthStart)
		if err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return nil, err
		}

		result.Created++
		result.Items = append(result.Items, ToPaymentResponse(payment))
	}

	if result.Created > 0 {
		s.invalidateSummaries(ctx)
	}
	return result, nil
}

// Toggle flips a payment between pending and paid. The save is
// version-checked so two racing toggles cannot silently overwrite each
// other.
func (s *PaymentService) Toggle(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	payment.Toggle(s.now())

	if err := s.paymentRepo.SaveWithLock(ctx, payment); err != nil {
		return nil, err
	}
	s.invalidateSummaries(ctx)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.TenantID != nil {
		domainFilter.Filters["tenant_id"] = *filter.TenantID
	}
	if filter.Month != "" {
		domainFilter.Filters["month"] = filter.Month
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPaymentResponses(payments), total, nil
}
