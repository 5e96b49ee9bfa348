package calendar

import (
	"fmt"
	"time"
)

// Layout is the canonical wire form for calendar dates.
const Layout = "2006-01-02"

// Date is a civil calendar date: a year/month/day triple with no time of day
// and no timezone. All arithmetic is performed on the calendar itself, never
// on instants, so results cannot shift across DST or timezone boundaries.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns a normalized date. Out-of-range components roll over the same
// way time.Date normalizes them (e.g. February 30 becomes March 1 or 2).
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Parse interprets a YYYY-MM-DD string as a civil date.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("calendar: invalid date %q: %w", value, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// FromTime extracts the civil date of an instant in the instant's location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the civil date reported by the supplied clock. A nil clock
// falls back to time.Now.
func Today(now func() time.Time) Date {
	if now == nil {
		now = time.Now
	}
	return FromTime(now())
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.toTime().Format(Layout)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Weekday returns the day of week for the date.
func (d Date) Weekday() time.Weekday {
	return d.toTime().Weekday()
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Add shifts the date by the given number of calendar days.
func (d Date) Add(days int) Date {
	return FromTime(d.toTime().AddDate(0, 0, days))
}

// Compare orders two dates chronologically: -1, 0 or +1.
func (d Date) Compare(other Date) int {
	if d.Year != other.Year {
		return sign(d.Year - other.Year)
	}
	if d.Month != other.Month {
		return sign(int(d.Month) - int(other.Month))
	}
	return sign(d.Day - other.Day)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// Equal reports whether both dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Compare(other) == 0
}

// DaysBetween returns the signed number of days from start to end.
func DaysBetween(start, end Date) int {
	return int(end.toTime().Sub(start.toTime()) / (24 * time.Hour))
}

// IsRangeOrdered reports whether start <= end. Equal endpoints form a valid
// single-day range.
func IsRangeOrdered(start, end Date) bool {
	return !start.After(end)
}

// AddDays computes the inclusive end of an n-day span anchored at d: the
// span counts the anchor itself, so a "7 days" preset ends 6 days after d
// and AddDays(d, 1) == d.
func AddDays(d Date, n int) Date {
	return d.Add(n - 1)
}

// AddMonths computes the inclusive end of an n-month span anchored at d:
// the anchor day is shifted n months with end-of-month clamping, then pulled
// back one day so the span includes the anchor date.
func AddMonths(d Date, n int) Date {
	return d.shiftMonths(n).Add(-1)
}

// ShiftMonths moves the date by n whole months, clamping the day to the
// length of the target month. Unlike AddMonths it has no inclusive-span
// adjustment, which makes it usable for spans anchored at either end.
func ShiftMonths(d Date, n int) Date {
	return d.shiftMonths(n)
}

// shiftMonths moves the date by whole months, clamping the day to the length
// of the target month (January 31 + 1 month = February 28 or 29).
func (d Date) shiftMonths(n int) Date {
	months := (d.Year*12 + int(d.Month) - 1) + n
	year := months / 12
	month := time.Month(months%12 + 1)
	if months < 0 && months%12 != 0 {
		year--
		month = time.Month(months%12 + 13)
	}
	day := d.Day
	if max := daysInMonth(year, month); day > max {
		day = max
	}
	return Date{Year: year, Month: month, Day: day}
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d Date) toTime() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
