package persistence

import "time"

// StoredSettings is the persisted subset of generation settings. The date
// range is deliberately absent: a stored range goes stale immediately, so
// only presentation options survive across visits.
type StoredSettings struct {
	Title           string    `json:"title"`
	DateFormat      string    `json:"date_format"`
	ExcludeWeekends bool      `json:"exclude_weekends"`
	ExcludeHolidays bool      `json:"exclude_holidays"`
	Colorize        bool      `json:"colorize"`
	WeekendColor    string    `json:"weekend_color"`
	HolidayColor    string    `json:"holiday_color"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Document is a generated Markdown document kept for history and export.
type Document struct {
	ID        string
	Title     string
	Body      string
	CreatedAt time.Time
}
