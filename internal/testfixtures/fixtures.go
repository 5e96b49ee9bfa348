package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/calendar"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/generator"
)

var settingsCounter uint64

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// Its civil date is 2024-01-02, a Tuesday.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns the civil date of ReferenceTime.
func ReferenceDate() calendar.Date {
	return calendar.FromTime(referenceTime)
}

// SettingsOption configures a generated settings fixture.
type SettingsOption func(*generator.Settings)

// NewSettingsFixture returns deterministic generation settings with optional
// overrides. The range is one week starting at the reference date.
func NewSettingsFixture(opts ...SettingsOption) generator.Settings {
	idx := atomic.AddUint64(&settingsCounter, 1)
	start := ReferenceDate()
	settings := generator.Settings{
		Title:        fmt.Sprintf("リスト %03d", idx),
		StartDate:    start.String(),
		EndDate:      calendar.AddDays(start, 7).String(),
		DateFormat:   "YYYY-MM-DD",
		WeekendColor: "#0000ff",
		HolidayColor: "#ff0000",
	}
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}

// WithTitle overrides the generated title.
func WithTitle(title string) SettingsOption {
	return func(s *generator.Settings) {
		s.Title = title
	}
}

// WithRange sets both ends of the date range.
func WithRange(start, end string) SettingsOption {
	return func(s *generator.Settings) {
		s.StartDate = start
		s.EndDate = end
	}
}

// WithDateFormat overrides the format pattern.
func WithDateFormat(format string) SettingsOption {
	return func(s *generator.Settings) {
		s.DateFormat = format
	}
}

// WithExclusions sets the weekend and holiday exclusion flags.
func WithExclusions(weekends, holidays bool) SettingsOption {
	return func(s *generator.Settings) {
		s.ExcludeWeekends = weekends
		s.ExcludeHolidays = holidays
	}
}

// WithColorize enables coloring with the given colors.
func WithColorize(weekendColor, holidayColor string) SettingsOption {
	return func(s *generator.Settings) {
		s.Colorize = true
		s.WeekendColor = weekendColor
		s.HolidayColor = holidayColor
	}
}

// HolidayTable is an in-memory holiday lookup keyed by "YYYY-MM-DD".
type HolidayTable map[string]string

// Lookup implements the holiday calendar capability.
func (t HolidayTable) Lookup(d calendar.Date) (string, bool) {
	name, ok := t[d.String()]
	return name, ok
}
