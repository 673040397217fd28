package billing

import (
	"time"

	"github.com/landlord/backend/internal/domain/shared"
)

// PeriodPolicy selects which calendar month a newly generated bill belongs
// to. The system originally billed for the month the reading was taken in and
// later moved to billing in arrears for the previous month; both variants
// remain supported behind this single configuration knob so dashboards and
// bill generation can never disagree on the period.
type PeriodPolicy string

const (
	// PeriodPolicySameMonth labels bills with the reference date's own month
	PeriodPolicySameMonth PeriodPolicy = "same_month"
	// PeriodPolicyPriorMonth labels bills with the month before the
	// reference date (billing in arrears)
	PeriodPolicyPriorMonth PeriodPolicy = "prior_month"
)

// IsValid checks if the policy is a valid PeriodPolicy
func (p PeriodPolicy) IsValid() bool {
	return p == PeriodPolicySameMonth || p == PeriodPolicyPriorMonth
}

// String returns the string representation of PeriodPolicy
func (p PeriodPolicy) String() string {
	return string(p)
}

// ParsePeriodPolicy converts a configuration string to a PeriodPolicy
func ParsePeriodPolicy(s string) (PeriodPolicy, error) {
	policy := PeriodPolicy(s)
	if !policy.IsValid() {
		return "", shared.NewDomainError("VALIDATION_ERROR", "Unknown period policy: "+s)
	}
	return policy, nil
}

// periodLayout renders a period as abbreviated month plus 4-digit year,
// e.g. "Oct 2025".
const periodLayout = "Jan 2006"

// PeriodLabel computes the canonical label of the billing period the
// reference date falls into under the given policy. The calculation anchors
// on the first day of the reference month, so a January reference under the
// prior-month policy rolls back to December of the previous year, and
// month-end dates can never skid into the wrong month. The input date is
// not modified.
func PeriodLabel(ref time.Time, policy PeriodPolicy) string {
	year, month, _ := ref.Date()
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	if policy == PeriodPolicyPriorMonth {
		anchor = anchor.AddDate(0, -1, 0)
	}
	return anchor.Format(periodLayout)
}

// ParsePeriodLabel parses a period label back into the first instant of its
// month. Used for ordering and validation of client-supplied periods.
func ParsePeriodLabel(label string) (time.Time, error) {
	t, err := time.Parse(periodLayout, label)
	if err != nil {
		return time.Time{}, shared.NewDomainError("VALIDATION_ERROR", "Invalid period label: "+label)
	}
	return t, nil
}
