package leave

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date at day granularity
// =============================================================================

// Date is a calendar date. Leave requests are day-scoped, so all date
// arithmetic in this package normalizes to midnight UTC.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return Date{Time: t}, nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool  { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool  { return d.normalize().After(other.normalize()) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int    { return d.Time.Year() }
func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// DaysBetween returns the signed number of calendar days from one date to
// another. Negative when to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// InclusiveDays returns the day count of a span counting both endpoints,
// using the absolute distance between the dates. A single-day request
// (start == end) spans one day.
func InclusiveDays(start, end Date) int {
	n := DaysBetween(start, end)
	if n < 0 {
		n = -n
	}
	return n + 1
}
