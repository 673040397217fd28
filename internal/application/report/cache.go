package report

import (
	"context"

	"github.com/landlord/backend/internal/domain/report"
)

// SummaryCache is a read-through cache for dashboard summaries, keyed by
// period label. A miss returns (nil, nil); cache failures are returned so
// the caller can decide to fall through to the repositories.
type SummaryCache interface {
	Get(ctx context.Context, period string) (*report.DashboardSummary, error)
	Set(ctx context.Context, period string, summary report.DashboardSummary) error
	// InvalidateAll drops every cached summary. The mutating services call
	// it through their own SummaryInvalidator interfaces after any tenant,
	// bill or payment write.
	InvalidateAll(ctx context.Context) error
}
