package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/landlord/backend/internal/domain/billing"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/tenancy"
)

// SummaryInvalidator drops cached dashboard summaries after a write
type SummaryInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

// BillService handles electricity bill generation and payment
type BillService struct {
	billRepo   billing.BillRepository
	tenantRepo tenancy.TenantRepository
	policy     billing.PeriodPolicy
	summaries  SummaryInvalidator
	now        func() time.Time
}

// NewBillService creates a new BillService. summaries may be nil when no
// dashboard cache is configured.
func NewBillService(billRepo billing.BillRepository, tenantRepo tenancy.TenantRepository, policy billing.PeriodPolicy, summaries SummaryInvalidator) *BillService {
	return &BillService{
		billRepo:   billRepo,
		tenantRepo: tenantRepo,
		policy:     policy,
		summaries:  summaries,
		now:        time.Now,
	}
}

func (s *BillService) invalidateSummaries(ctx context.Context) {
	if s.summaries != nil {
		_ = s.summaries.InvalidateAll(ctx)
	}
}

// Generate turns a newly submitted meter reading into a bill. The period
// comes from the configured policy unless the request overrides it. Bill
// insert and meter advance happen in one transaction; a second bill for the
// same tenant and period is rejected before the transaction and again by the
// storage layer's unique index.
func (s *BillService) Generate(ctx context.Context, req GenerateBillRequest) (*BillResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	period := req.Period
	if period == "" {
		period = billing.PeriodLabel(now, s.policy)
	} else if _, err := billing.ParsePeriodLabel(period); err != nil {
		return nil, err
	}

	exists, err := s.billRepo.ExistsForPeriod(ctx, tenant.ID, period)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Bill already exists for this tenant and period")
	}

	bill, err := billing.NewBillFromReading(tenant, req.CurrentReading, period, now)
	if err != nil {
		return nil, err
	}
	if err := tenant.AdvanceMeterReading(req.CurrentReading); err != nil {
		return nil, err
	}

	if err := s.billRepo.CreateWithMeterAdvance(ctx, bill, tenant); err != nil {
		return nil, err
	}
	s.invalidateSummaries(ctx)

	response := ToBillResponse(bill)
	return &response, nil
}

// MarkPaid settles a pending bill. Paying an already paid bill is a
// conflict, and the save is version-checked so two racing submissions that
// both read a pending bill cannot both settle it.
func (s *BillService) MarkPaid(ctx context.Context, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	if err := bill.MarkPaid(s.now()); err != nil {
		return nil, err
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		return nil, err
	}
	s.invalidateSummaries(ctx)

	response := ToBillResponse(bill)
	return &response, nil
}

// GetByID retrieves a bill by ID
func (s *BillService) GetByID(ctx context.Context, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// List retrieves bills with filtering and pagination
func (s *BillService) List(ctx context.Context, filter BillListFilter) ([]BillResponse, int64, error) {
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
	if filter.Period != "" {
		domainFilter.Filters["period"] = filter.Period
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	bills, err := s.billRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.billRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBillResponses(bills), total, nil
}

// CurrentPeriod reports the billing period the configured policy assigns to
// the present moment
func (s *BillService) CurrentPeriod() PeriodResponse {
	return PeriodResponse{
		Period: billing.PeriodLabel(s.now(), s.policy),
		Policy: s.policy.String(),
	}
}
