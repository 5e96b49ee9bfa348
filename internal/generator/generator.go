// Package generator assembles the Markdown date list. Generate is
// synchronous and deterministic for a given settings value and holiday
// calendar; it never mutates its input.
package generator

import (
	"strings"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/calendar"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/holiday"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/sanitize"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/validate"
)

// DefaultTitle is the heading used when the sanitized title is empty.
const DefaultTitle = "タイトル"

// Settings holds one generation request. Dates are "YYYY-MM-DD" strings so
// that an untouched form field stays distinguishable from a parsed date.
type Settings struct {
	Title           string `json:"title"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	DateFormat      string `json:"date_format"`
	ExcludeWeekends bool   `json:"exclude_weekends"`
	ExcludeHolidays bool   `json:"exclude_holidays"`
	Colorize        bool   `json:"colorize"`
	WeekendColor    string `json:"weekend_color"`
	HolidayColor    string `json:"holiday_color"`
}

// RangeError reports an invalid date range discovered at generation time.
// It is the only error Generate returns; the message is user-facing
// Japanese text.
type RangeError struct {
	Message string
}

func (e *RangeError) Error() string {
	return e.Message
}

// Generate renders the Markdown document for the settings. An empty start
// or end date yields "" without error; an invalid range yields a
// *RangeError. Callers may invoke it speculatively.
func Generate(s Settings, holidays holiday.Calendar) (string, error) {
	start := strings.TrimSpace(s.StartDate)
	end := strings.TrimSpace(s.EndDate)
	if start == "" || end == "" {
		return "", nil
	}

	if res := validate.DateRange(start, end); !res.OK {
		return "", &RangeError{Message: res.Message}
	}

	from, err := calendar.Parse(start)
	if err != nil {
		return "", &RangeError{Message: validate.MsgDatesInvalid}
	}
	to, err := calendar.Parse(end)
	if err != nil {
		return "", &RangeError{Message: validate.MsgDatesInvalid}
	}

	title := sanitize.Title(s.Title)
	if title == "" {
		title = DefaultTitle
	}
	pattern := sanitize.DateFormat(s.DateFormat)
	weekendColor := sanitize.ColorValue(s.WeekendColor)
	holidayColor := sanitize.ColorValue(s.HolidayColor)

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")

	for d := from; !d.After(to); d = d.Add(1) {
		isWeekend := d.IsWeekend()
		if s.ExcludeWeekends && isWeekend {
			continue
		}

		var holidayName string
		isHoliday := false
		if holidays != nil {
			holidayName, isHoliday = holidays.Lookup(d)
		}
		if s.ExcludeHolidays && isHoliday {
			continue
		}

		text := calendar.Format(d, pattern)
		if isHoliday {
			text += "（" + sanitize.EscapeHTML(holidayName) + "）"
		}

		if s.Colorize && (isWeekend || isHoliday) {
			color := weekendColor
			if isHoliday {
				color = holidayColor
			}
			text = `<span style="color: ` + color + `">` + text + `</span>`
		}

		b.WriteString("- ")
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
