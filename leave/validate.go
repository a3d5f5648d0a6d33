/*
validate.go - Pure validation of leave-request drafts

PURPOSE:
  Decides, given a candidate draft and the current date, whether submission
  is allowed, and resolves the derived duration. Validation is a pure
  function of (draft, policy table, today): no side effects, no I/O, so
  every policy boundary is unit-testable without mocking storage.

VALIDATION STEPS:
  1. MissingField        start date, end date, and reason must be present
  2. resolve duration    inclusive day span, except Personal leave which
                         is a caller-supplied fraction of a day
  3. InvalidDuration     a Personal permission must be strictly positive
  4. DurationExceeded    duration must not exceed the type's maximum
  5. AttachmentRequired  types that mandate a document need a token
  6. InsufficientNotice  start date must honor the type's notice period

The full violation list is returned, not just the first, so a caller can
display all problems at once. An empty list means the draft is submittable.

SEE ALSO:
  - policy.go: The per-type rules applied here
  - store.go:  Re-validates on submit as a defensive fail-safe
*/
package leave

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// VIOLATIONS
// =============================================================================

type ViolationCode string

const (
	ViolationMissingField       ViolationCode = "missing_field"
	ViolationInvalidDuration    ViolationCode = "invalid_duration"
	ViolationDurationExceeded   ViolationCode = "duration_exceeded"
	ViolationAttachmentRequired ViolationCode = "attachment_required"
	ViolationInsufficientNotice ViolationCode = "insufficient_notice"
)

// Violation is one recoverable validation failure, suitable for display.
type Violation struct {
	Code    ViolationCode
	Field   string
	Message string
}

// =============================================================================
// DURATION RESOLUTION
// =============================================================================

// ResolveDuration computes the duration a submitted request will carry.
// Annual, Sick, Emergency, and Unpaid leave measure the inclusive calendar
// span between the dates. Personal leave measures a fractional-day
// permission supplied by the caller, unrelated to the date span; this
// asymmetry mirrors the observed product behavior and is preserved as-is.
func ResolveDuration(draft Draft) decimal.Decimal {
	if draft.Type == TypePersonal {
		return draft.Duration
	}
	if draft.StartDate.IsZero() || draft.EndDate.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(InclusiveDays(draft.StartDate, draft.EndDate)))
}

// =============================================================================
// VALIDATE
// =============================================================================

// Validate applies the leave type's policy to a draft as of today and
// returns every violation found. It never mutates the draft.
func Validate(draft Draft, today Date) []Violation {
	var violations []Violation

	if draft.StartDate.IsZero() {
		violations = append(violations, Violation{
			Code:    ViolationMissingField,
			Field:   "start_date",
			Message: "start date is required",
		})
	}
	if draft.EndDate.IsZero() {
		violations = append(violations, Violation{
			Code:    ViolationMissingField,
			Field:   "end_date",
			Message: "end date is required",
		})
	}
	if draft.Reason == "" {
		violations = append(violations, Violation{
			Code:    ViolationMissingField,
			Field:   "reason",
			Message: "reason is required",
		})
	}

	policy := PolicyFor(draft.Type)
	duration := ResolveDuration(draft)

	// Date-spanned types always resolve to at least one day; only the
	// caller-supplied Personal duration can come in zero or negative.
	if draft.Type == TypePersonal && !duration.IsPositive() {
		violations = append(violations, Violation{
			Code:    ViolationInvalidDuration,
			Field:   "duration",
			Message: "Personal permission must be a positive fraction of a day",
		})
	}

	if duration.GreaterThan(policy.MaxDuration) {
		msg := fmt.Sprintf("%s leave cannot exceed %s days", draft.Type, policy.MaxDuration)
		if draft.Type == TypePersonal {
			msg = "Personal permission cannot exceed 4 hours (0.5 days)"
		}
		violations = append(violations, Violation{
			Code:    ViolationDurationExceeded,
			Field:   "duration",
			Message: msg,
		})
	}

	if policy.RequiresAttachment && (draft.Attachment == nil || *draft.Attachment == "") {
		violations = append(violations, Violation{
			Code:    ViolationAttachmentRequired,
			Field:   "attachment",
			Message: fmt.Sprintf("supporting document is required for %s leave", draft.Type),
		})
	}

	if policy.MinNoticeDays > 0 && !draft.StartDate.IsZero() {
		if DaysBetween(today, draft.StartDate) < policy.MinNoticeDays {
			violations = append(violations, Violation{
				Code:    ViolationInsufficientNotice,
				Field:   "start_date",
				Message: fmt.Sprintf("minimum %d days notice required for %s leave", policy.MinNoticeDays, draft.Type),
			})
		}
	}

	return violations
}
