/*
analytics.go - Absence analytics over the request store

PURPOSE:
  Derives reporting aggregates from the store's current contents. All
  functions are pure reductions over a snapshot, recomputed on demand:
  the scope is small enough that full recomputation is always cheap, and
  it avoids staleness bugs entirely. Nothing here depends on insertion
  order.

AGGREGATES:
  AbsenceRatio:     per-type percentage breakdown of one requester's
                    approved leave days within a calendar year
  DepartmentRollup: approved days and request counts grouped by the
                    requester department snapshot
  YearSummary:      overall counts for a year's requests

SEE ALSO:
  - store.go: Snapshot source
*/
package leave

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// =============================================================================
// ABSENCE RATIO
// =============================================================================

// AbsenceRatio computes the percentage of a requester's approved leave
// days per type within the given calendar year (keyed by the request's
// start date). Every leave type appears in the result; when the requester
// has no approved days that year, all entries are zero. Otherwise the
// percentages sum to 100.
func AbsenceRatio(snapshot []Request, requesterID string, year int) map[Type]decimal.Decimal {
	ratios := make(map[Type]decimal.Decimal, len(Types()))
	for _, t := range Types() {
		ratios[t] = decimal.Zero
	}

	var selected []Request
	totalDays := decimal.Zero
	for _, req := range snapshot {
		if req.RequesterID != requesterID || req.Status != StatusApproved || req.StartDate.Year() != year {
			continue
		}
		selected = append(selected, req)
		totalDays = totalDays.Add(req.Duration)
	}

	if totalDays.IsZero() {
		return ratios
	}

	for _, req := range selected {
		share := req.Duration.Div(totalDays).Mul(hundred)
		ratios[req.Type] = ratios[req.Type].Add(share)
	}
	return ratios
}

// =============================================================================
// DEPARTMENT ROLLUP
// =============================================================================

// DepartmentStats aggregates approved leave for one department.
type DepartmentStats struct {
	TotalDays    decimal.Decimal
	RequestCount int
}

// DepartmentRollup aggregates approved requests whose start date falls in
// the given year, grouped by the requester department snapshot.
func DepartmentRollup(snapshot []Request, year int) map[string]DepartmentStats {
	rollup := make(map[string]DepartmentStats)
	for _, req := range snapshot {
		if req.Status != StatusApproved || req.StartDate.Year() != year {
			continue
		}
		stats := rollup[req.RequesterDepartment]
		stats.TotalDays = stats.TotalDays.Add(req.Duration)
		stats.RequestCount++
		rollup[req.RequesterDepartment] = stats
	}
	return rollup
}

// =============================================================================
// YEAR SUMMARY
// =============================================================================

// YearStats holds overall counts for one calendar year.
type YearStats struct {
	Year             int
	TotalRequests    int
	ApprovedRequests int
	TotalLeaveDays   decimal.Decimal // approved days only
}

// YearSummary computes overall statistics for requests whose start date
// falls in the given year.
func YearSummary(snapshot []Request, year int) YearStats {
	stats := YearStats{Year: year, TotalLeaveDays: decimal.Zero}
	for _, req := range snapshot {
		if req.StartDate.Year() != year {
			continue
		}
		stats.TotalRequests++
		if req.Status == StatusApproved {
			stats.ApprovedRequests++
			stats.TotalLeaveDays = stats.TotalLeaveDays.Add(req.Duration)
		}
	}
	return stats
}
