package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhr/leave-engine/leave"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func approvedRequest(id, requesterID, dept string, typ leave.Type, start leave.Date, duration float64) leave.Request {
	return leave.Request{
		ID:                  leave.RequestID(id),
		RequesterID:         requesterID,
		RequesterName:       "Test User",
		RequesterDepartment: dept,
		Type:                typ,
		StartDate:           start,
		EndDate:             start,
		Duration:            decimal.NewFromFloat(duration),
		Reason:              "test",
		Status:              leave.StatusApproved,
	}
}

func ratioSum(ratios map[leave.Type]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range ratios {
		sum = sum.Add(r)
	}
	return sum
}

// =============================================================================
// ABSENCE RATIO
// =============================================================================

func TestAbsenceRatio_PercentagesSumToHundred(t *testing.T) {
	// GIVEN: Approved requests of mixed types and odd durations
	// WHEN: Computing the ratio
	// THEN: Percentages sum to 100 within 0.01

	snapshot := []leave.Request{
		approvedRequest("r1", "u1", "IT", leave.TypeAnnual, date(2025, time.February, 3), 7),
		approvedRequest("r2", "u1", "IT", leave.TypeSick, date(2025, time.March, 10), 2),
		approvedRequest("r3", "u1", "IT", leave.TypePersonal, date(2025, time.April, 1), 0.5),
		approvedRequest("r4", "u1", "IT", leave.TypeEmergency, date(2025, time.May, 20), 1),
	}

	ratios := leave.AbsenceRatio(snapshot, "u1", 2025)

	sum := ratioSum(ratios)
	diff := sum.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"expected sum ~100, got %s", sum)

	// Every type present, including zero buckets
	assert.Len(t, ratios, 5)
	assert.True(t, ratios[leave.TypeUnpaid].IsZero())
}

func TestAbsenceRatio_NoApprovedRequests_AllZero(t *testing.T) {
	snapshot := []leave.Request{
		// Pending request: excluded
		{
			ID: "r1", RequesterID: "u1", Type: leave.TypeAnnual,
			StartDate: date(2025, time.March, 1), Duration: decimal.NewFromInt(3),
			Status: leave.StatusPending,
		},
		// Approved, but different year
		approvedRequest("r2", "u1", "IT", leave.TypeSick, date(2024, time.March, 1), 2),
		// Approved, but different requester
		approvedRequest("r3", "u2", "IT", leave.TypeSick, date(2025, time.March, 1), 2),
	}

	ratios := leave.AbsenceRatio(snapshot, "u1", 2025)

	assert.Len(t, ratios, 5)
	assert.True(t, ratioSum(ratios).IsZero())
}

func TestAbsenceRatio_OrderIndependent(t *testing.T) {
	a := approvedRequest("r1", "u1", "IT", leave.TypeAnnual, date(2025, time.February, 3), 3)
	b := approvedRequest("r2", "u1", "IT", leave.TypeSick, date(2025, time.March, 10), 1)

	forward := leave.AbsenceRatio([]leave.Request{a, b}, "u1", 2025)
	reversed := leave.AbsenceRatio([]leave.Request{b, a}, "u1", 2025)

	assert.Equal(t, forward, reversed)
}

// =============================================================================
// DEPARTMENT ROLLUP
// =============================================================================

func TestDepartmentRollup_GroupsBySnapshotDepartment(t *testing.T) {
	snapshot := []leave.Request{
		approvedRequest("r1", "u1", "IT", leave.TypeAnnual, date(2025, time.February, 3), 3),
		approvedRequest("r2", "u2", "IT", leave.TypeSick, date(2025, time.March, 10), 2),
		approvedRequest("r3", "u3", "HR", leave.TypePersonal, date(2025, time.April, 1), 0.5),
		// Excluded: pending, and approved-in-other-year
		{ID: "r4", RequesterID: "u1", RequesterDepartment: "IT", Type: leave.TypeAnnual,
			StartDate: date(2025, time.May, 1), Duration: decimal.NewFromInt(5), Status: leave.StatusPending},
		approvedRequest("r5", "u1", "IT", leave.TypeAnnual, date(2024, time.May, 1), 5),
	}

	rollup := leave.DepartmentRollup(snapshot, 2025)

	require.Len(t, rollup, 2)
	assert.True(t, rollup["IT"].TotalDays.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 2, rollup["IT"].RequestCount)
	assert.True(t, rollup["HR"].TotalDays.Equal(decimal.NewFromFloat(0.5)))
	assert.Equal(t, 1, rollup["HR"].RequestCount)
}

// =============================================================================
// YEAR SUMMARY
// =============================================================================

func TestYearSummary(t *testing.T) {
	snapshot := []leave.Request{
		approvedRequest("r1", "u1", "IT", leave.TypeAnnual, date(2025, time.February, 3), 3),
		{ID: "r2", RequesterID: "u1", Type: leave.TypeSick,
			StartDate: date(2025, time.March, 1), Duration: decimal.NewFromInt(1), Status: leave.StatusPending},
		{ID: "r3", RequesterID: "u2", Type: leave.TypeSick,
			StartDate: date(2025, time.March, 5), Duration: decimal.NewFromInt(2), Status: leave.StatusRejected},
	}

	stats := leave.YearSummary(snapshot, 2025)

	assert.Equal(t, 3, stats.TotalRequests)
	assert.Equal(t, 1, stats.ApprovedRequests)
	assert.True(t, stats.TotalLeaveDays.Equal(decimal.NewFromInt(3)))
}

// =============================================================================
// END-TO-END: SUBMIT -> APPROVE -> ANALYTICS
// =============================================================================

func TestPersonalLeave_EndToEnd(t *testing.T) {
	// GIVEN: A half-day Personal draft two days out
	// WHEN: Submitted and approved
	// THEN: The department rollup gains 0.5 days and one request

	store, _ := newTestStore(t)
	ctx := context.Background()

	start := leave.NewDate(2025, time.June, 3) // clock day is June 1
	draft := leave.Draft{
		Type:      leave.TypePersonal,
		StartDate: start,
		EndDate:   start,
		Duration:  decimal.NewFromFloat(0.5),
		Reason:    "dentist",
	}

	assert.Empty(t, leave.Validate(draft, leave.NewDate(2025, time.June, 1)))

	req, err := store.Submit(ctx, draft, requester())
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, req.Status)

	before := leave.DepartmentRollup(store.Snapshot(), 2025)

	approved, err := store.Approve(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	assert.True(t, approved.UpdatedAt.After(approved.CreatedAt))

	after := leave.DepartmentRollup(store.Snapshot(), 2025)
	assert.True(t, after["IT"].TotalDays.Sub(before["IT"].TotalDays).Equal(decimal.NewFromFloat(0.5)))
	assert.Equal(t, before["IT"].RequestCount+1, after["IT"].RequestCount)
}
