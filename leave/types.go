/*
Package leave implements the leave-request core: the request entity,
per-type validation policy, the request store, and absence analytics.

PURPOSE:
  This package is the backend a leave-management front end talks to.
  It owns the authoritative collection of leave requests, decides whether
  a candidate request is well-formed (per-type maximums, notice periods,
  attachment requirements), runs the approval lifecycle
  (Pending -> Approved/Rejected), and derives reporting aggregates.

KEY CONCEPTS IN THIS FILE (types.go):
  - Type:    One of five leave categories, each with its own policy
  - Status:  Request lifecycle state; Approved/Rejected are terminal
  - Request: The leave-request entity with requester snapshot fields
  - Draft:   A candidate request before submission
  - User:    The requester identity the store snapshots at submission

DESIGN PRINCIPLES:
  1. Snapshot identity: requester fields are copied into the request at
     submission; later profile edits never rewrite history
  2. Precision: durations use decimal.Decimal (Personal leave is a
     half-day fraction) to avoid floating-point drift in analytics
  3. Explicit optionality: attachment is a pointer, absent means nil,
     never an empty-string sentinel
  4. Closed type set: the five leave types are enumerated so policy
     lookups are exhaustively checked

SEE ALSO:
  - policy.go:    Per-type validation policy table
  - validate.go:  Pure validation of drafts
  - store.go:     Request store and lifecycle mutations
  - analytics.go: Absence ratios and department rollups
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LEAVE TYPE - Closed set of five categories
// =============================================================================

type Type string

const (
	TypeAnnual    Type = "Annual"
	TypeSick      Type = "Sick"
	TypePersonal  Type = "Personal"
	TypeEmergency Type = "Emergency"
	TypeUnpaid    Type = "Unpaid"
)

// Types lists every leave type in display order. Analytics iterate this
// so every type appears in a ratio map even at zero.
func Types() []Type {
	return []Type{TypeAnnual, TypeSick, TypePersonal, TypeEmergency, TypeUnpaid}
}

// Valid reports whether t is one of the five known leave types.
func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypePersonal, TypeEmergency, TypeUnpaid:
		return true
	}
	return false
}

// =============================================================================
// STATUS - Request lifecycle state
// =============================================================================

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// =============================================================================
// REQUEST - The leave-request entity
// =============================================================================

type RequestID string

// Request is a leave request. Identity fields (requester snapshot, dates,
// type, duration) are immutable after creation; only Status and UpdatedAt
// change, and only through the store's Approve/Reject operations.
type Request struct {
	ID RequestID

	// Requester snapshot, copied from the submitting User at creation.
	// Not a live reference: later profile edits must not retroactively
	// change historical requests.
	RequesterID         string
	RequesterName       string
	RequesterDepartment string

	Type      Type
	StartDate Date
	EndDate   Date

	// Duration in days. Derived as the inclusive day span between the
	// dates, except Personal leave where it is the caller-supplied
	// fraction of a day (at most 0.5). A reversed date range is
	// normalized: the span is the absolute distance between the dates.
	Duration decimal.Decimal

	Reason string

	// Attachment is an optional reference token (e.g. a filename).
	// nil means absent.
	Attachment *string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Draft is a candidate request before submission. The store validates a
// draft, resolves its duration, and snapshots the requester into a Request.
type Draft struct {
	Type      Type
	StartDate Date
	EndDate   Date

	// Duration is only consulted for Personal leave, where the permission
	// is a fraction of a day supplied by the caller rather than derived
	// from the date span.
	Duration decimal.Decimal

	Reason     string
	Attachment *string
}

// =============================================================================
// USER - External identity referenced by the store
// =============================================================================

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
)

// User is the authenticated requester the store snapshots at submission.
// The identity collaborator owns these; the store never authenticates.
type User struct {
	ID                 string
	Name               string
	Email              string
	Role               Role
	Department         string
	AnnualLeaveBalance decimal.Decimal
}
