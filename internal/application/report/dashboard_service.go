package report

import (
	"context"
	"time"

	apptenancy "github.com/landlord/backend/internal/application/tenancy"
	"github.com/landlord/backend/internal/domain/billing"
	"github.com/landlord/backend/internal/domain/rent"
	"github.com/landlord/backend/internal/domain/report"
	"github.com/landlord/backend/internal/domain/shared"
	"github.com/landlord/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// DashboardService assembles the landlord dashboard from the tenant, bill
// and payment repositories, with a read-through cache in front.
type DashboardService struct {
	tenantRepo  tenancy.TenantRepository
	billRepo    billing.BillRepository
	paymentRepo rent.PaymentRepository
	cache       SummaryCache
	policy      billing.PeriodPolicy
	logger      *zap.Logger
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService. cache may be nil, in
// which case every request hits the repositories.
func NewDashboardService(
	tenantRepo tenancy.TenantRepository,
	billRepo billing.BillRepository,
	paymentRepo rent.PaymentRepository,
	cache SummaryCache,
	policy billing.PeriodPolicy,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		tenantRepo:  tenantRepo,
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
		policy:      policy,
		logger:      logger,
		now:         time.Now,
	}
}

// GetDashboard returns the dashboard summary for the period, defaulting to
// the current one under the configured policy. Cache errors are logged and
// the request falls through to the repositories.
func (s *DashboardService) GetDashboard(ctx context.Context, period string) (*DashboardResponse, error) {
	if period == "" {
		period = billing.PeriodLabel(s.now(), s.policy)
	} else if _, err := billing.ParsePeriodLabel(period); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, period)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.String("period", period), zap.Error(err))
		} else if cached != nil {
			response := ToDashboardResponse(*cached)
			return &response, nil
		}
	}

	summary, err := s.summarize(ctx, period)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, period, *summary); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("period", period), zap.Error(err))
		}
	}

	response := ToDashboardResponse(*summary)
	return &response, nil
}

// NeedsReading lists the electricity-subscribed tenants without a bill for
// the period, defaulting to the current one.
func (s *DashboardService) NeedsReading(ctx context.Context, period string) (*NeedsReadingResponse, error) {
	if period == "" {
		period = billing.PeriodLabel(s.now(), s.policy)
	} else if _, err := billing.ParsePeriodLabel(period); err != nil {
		return nil, err
	}

	tenants, err := s.tenantRepo.FindWithElectricity(ctx)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	needing := report.TenantsNeedingReading(tenants, bills, period)
	return &NeedsReadingResponse{
		Period:  period,
		Tenants: apptenancy.ToTenantResponses(needing),
	}, nil
}

func (s *DashboardService) summarize(ctx context.Context, period string) (*report.DashboardSummary, error) {
	tenants, err := s.tenantRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByMonth(ctx, period)
	if err != nil {
		return nil, err
	}

	summary := report.Summarize(tenants, bills, payments, period)
	return &summary, nil
}
