/*
policy.go - Per-type leave validation policy

PURPOSE:
  Defines the fixed policy table applied at validation time. Each of the
  five leave types carries a maximum duration, a minimum notice period,
  and whether a supporting attachment is mandatory.

POLICY TABLE:
  Type       maxDuration  minNotice  requiresAttachment
  Annual     21           3          no
  Sick       3            0          yes (medical certificate)
  Personal   0.5          1          no  (fraction of a day, max 4 hours)
  Emergency  2            0          no
  Unpaid     30           7          no

The table is an exhaustive switch over the enumerated Type rather than a
string-keyed map, so a new leave type cannot be added without the compiler
forcing a policy decision here.

SEE ALSO:
  - validate.go: Applies these policies to drafts
*/
package leave

import "github.com/shopspring/decimal"

// =============================================================================
// POLICY - Validation rules for one leave type
// =============================================================================

type Policy struct {
	// MaxDuration is the largest allowed duration in days.
	// Fractional for Personal leave (half a day).
	MaxDuration decimal.Decimal

	// MinNoticeDays is the minimum number of days between the submission
	// date and the requested start date. Zero means same-day is allowed.
	MinNoticeDays int

	// RequiresAttachment mandates a supporting document token.
	RequiresAttachment bool

	// Description is a short human-readable summary for display.
	Description string
}

var (
	half = decimal.NewFromFloat(0.5)

	policyAnnual    = Policy{MaxDuration: decimal.NewFromInt(21), MinNoticeDays: 3, Description: "Annual vacation leave with pay"}
	policySick      = Policy{MaxDuration: decimal.NewFromInt(3), MinNoticeDays: 0, RequiresAttachment: true, Description: "Medical leave for illness"}
	policyPersonal  = Policy{MaxDuration: half, MinNoticeDays: 1, Description: "Personal permission (max 4 hours)"}
	policyEmergency = Policy{MaxDuration: decimal.NewFromInt(2), MinNoticeDays: 0, Description: "Emergency situations"}
	policyUnpaid    = Policy{MaxDuration: decimal.NewFromInt(30), MinNoticeDays: 7, Description: "Unpaid leave of absence"}
)

// PolicyFor returns the validation policy for a leave type. The switch is
// exhaustive over the closed type set; unknown types get a zero policy
// and are rejected earlier by Type.Valid checks at the boundary.
func PolicyFor(t Type) Policy {
	switch t {
	case TypeAnnual:
		return policyAnnual
	case TypeSick:
		return policySick
	case TypePersonal:
		return policyPersonal
	case TypeEmergency:
		return policyEmergency
	case TypeUnpaid:
		return policyUnpaid
	}
	return Policy{}
}
