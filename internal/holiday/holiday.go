// Package holiday provides Japanese national holiday lookups. The calendar
// is computed from the statutory rules (fixed dates, Happy Monday rules,
// equinox approximation, substitute and citizens' holidays) and can be
// overridden from the Cabinet Office CSV publication.
package holiday

import (
	"time"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/calendar"
)

// Calendar answers whether a civil date is a national holiday. Lookups
// outside the covered year range simply report false; they never fail.
type Calendar interface {
	Lookup(d calendar.Date) (name string, ok bool)
}

// DefaultFromYear and DefaultToYear bound the built-in calendar.
const (
	DefaultFromYear = 2000
	DefaultToYear   = 2050
)

// JapaneseCalendar is an in-memory table of Japanese national holidays.
type JapaneseCalendar struct {
	byDate map[calendar.Date]string
}

// NewJapaneseCalendar computes the built-in calendar for the default year
// range.
func NewJapaneseCalendar() *JapaneseCalendar {
	return NewJapaneseCalendarForYears(DefaultFromYear, DefaultToYear)
}

// NewJapaneseCalendarForYears computes the calendar for [from, to]
// inclusive. Substitute-holiday chains may extend a few days past December.
func NewJapaneseCalendarForYears(from, to int) *JapaneseCalendar {
	c := &JapaneseCalendar{byDate: make(map[calendar.Date]string)}
	for year := from; year <= to; year++ {
		for _, e := range statutoryHolidays(year) {
			if e.name == "" {
				continue
			}
			c.byDate[e.date] = e.name
		}
	}
	c.addSubstituteHolidays(from, to)
	c.addCitizensHolidays(from, to)
	return c
}

// Lookup returns the holiday name for the date, if any.
func (c *JapaneseCalendar) Lookup(d calendar.Date) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.byDate[d]
	return name, ok
}

// Override replaces or adds entries, e.g. from the official CSV. Entries
// with an empty name are removed.
func (c *JapaneseCalendar) Override(entries []Entry) {
	if c == nil {
		return
	}
	for _, e := range entries {
		if e.Name == "" {
			delete(c.byDate, e.Date)
			continue
		}
		c.byDate[e.Date] = e.Name
	}
}

// Entry pairs a civil date with a holiday name.
type Entry struct {
	Date calendar.Date
	Name string
}

type datedName struct {
	date calendar.Date
	name string
}

// statutoryHolidays returns the base holidays of a year, before substitute
// and citizens' holiday rules are applied.
func statutoryHolidays(year int) []datedName {
	list := []datedName{
		{calendar.New(year, time.January, 1), "元日"},
		{nthMonday(year, time.January, 2), "成人の日"},
		{calendar.New(year, time.February, 11), "建国記念の日"},
		{calendar.New(year, time.March, vernalEquinoxDay(year)), "春分の日"},
		{calendar.New(year, time.May, 3), "憲法記念日"},
		{calendar.New(year, time.May, 5), "こどもの日"},
		{respectForAgedDay(year), "敬老の日"},
		{calendar.New(year, time.September, autumnalEquinoxDay(year)), "秋分の日"},
		{calendar.New(year, time.November, 3), "文化の日"},
		{calendar.New(year, time.November, 23), "勤労感謝の日"},
	}

	// April 29 was みどりの日 until the 2007 reform renamed it 昭和の日 and
	// moved みどりの日 to May 4. Before that, May 4 only becomes 国民の休日
	// through the sandwich rule.
	if year >= 2007 {
		list = append(list,
			datedName{calendar.New(year, time.April, 29), "昭和の日"},
			datedName{calendar.New(year, time.May, 4), "みどりの日"},
		)
	} else {
		list = append(list, datedName{calendar.New(year, time.April, 29), "みどりの日"})
	}

	if year >= 2020 {
		list = append(list, datedName{calendar.New(year, time.February, 23), "天皇誕生日"})
	} else if year <= 2018 {
		list = append(list, datedName{calendar.New(year, time.December, 23), "天皇誕生日"})
	}

	list = append(list, marineDay(year), mountainDay(year), sportsDay(year))

	// One-off days around the era change and the 2019 enthronement.
	if year == 2019 {
		list = append(list,
			datedName{calendar.New(2019, time.May, 1), "天皇の即位の日"},
			datedName{calendar.New(2019, time.October, 22), "即位礼正殿の儀の行われる日"},
		)
	}

	return list
}

// marineDay was fixed at July 20 until the Happy Monday reform moved it to
// the third Monday of July in 2003, then moved for the Tokyo Olympics.
func marineDay(year int) datedName {
	switch {
	case year == 2020:
		return datedName{calendar.New(2020, time.July, 23), "海の日"}
	case year == 2021:
		return datedName{calendar.New(2021, time.July, 22), "海の日"}
	case year >= 2003:
		return datedName{nthMonday(year, time.July, 3), "海の日"}
	default:
		return datedName{calendar.New(year, time.July, 20), "海の日"}
	}
}

// respectForAgedDay was fixed at September 15 until the Happy Monday reform
// moved it to the third Monday of September in 2003.
func respectForAgedDay(year int) calendar.Date {
	if year >= 2003 {
		return nthMonday(year, time.September, 3)
	}
	return calendar.New(year, time.September, 15)
}

// mountainDay is August 11 since 2016, moved for the Tokyo Olympics.
// Years before its introduction report a zero date that is filtered below.
func mountainDay(year int) datedName {
	switch {
	case year == 2020:
		return datedName{calendar.New(2020, time.August, 10), "山の日"}
	case year == 2021:
		return datedName{calendar.New(2021, time.August, 8), "山の日"}
	case year >= 2016:
		return datedName{calendar.New(year, time.August, 11), "山の日"}
	default:
		return datedName{}
	}
}

// sportsDay is the second Monday of October (体育の日 until 2019), moved
// for the Tokyo Olympics.
func sportsDay(year int) datedName {
	switch {
	case year == 2020:
		return datedName{calendar.New(2020, time.July, 24), "スポーツの日"}
	case year == 2021:
		return datedName{calendar.New(2021, time.July, 23), "スポーツの日"}
	case year >= 2020:
		return datedName{nthMonday(year, time.October, 2), "スポーツの日"}
	default:
		return datedName{nthMonday(year, time.October, 2), "体育の日"}
	}
}

// addSubstituteHolidays marks the first non-holiday weekday after any
// holiday that falls on a Sunday (振替休日).
func (c *JapaneseCalendar) addSubstituteHolidays(from, to int) {
	for d := calendar.New(from, time.January, 1); d.Year <= to; d = d.Add(1) {
		if _, ok := c.byDate[d]; !ok {
			continue
		}
		if d.Weekday() != time.Sunday {
			continue
		}
		next := d.Add(1)
		for {
			if _, occupied := c.byDate[next]; !occupied {
				break
			}
			next = next.Add(1)
		}
		c.byDate[next] = "振替休日"
	}
}

// addCitizensHolidays marks a weekday sandwiched between two holidays as a
// holiday (国民の休日), notably producing Silver Week.
func (c *JapaneseCalendar) addCitizensHolidays(from, to int) {
	for d := calendar.New(from, time.January, 2); d.Year <= to; d = d.Add(1) {
		if _, ok := c.byDate[d]; ok {
			continue
		}
		if d.Weekday() == time.Sunday {
			continue
		}
		_, prev := c.byDate[d.Add(-1)]
		_, next := c.byDate[d.Add(1)]
		if prev && next {
			c.byDate[d] = "国民の休日"
		}
	}
}

// nthMonday returns the n-th Monday of the month.
func nthMonday(year int, month time.Month, n int) calendar.Date {
	first := calendar.New(year, month, 1)
	offset := (int(time.Monday) - int(first.Weekday()) + 7) % 7
	return first.Add(offset + (n-1)*7)
}

// vernalEquinoxDay approximates the March equinox day, valid 1980-2099.
func vernalEquinoxDay(year int) int {
	return int(20.8431 + 0.242194*float64(year-1980) - float64((year-1980)/4))
}

// autumnalEquinoxDay approximates the September equinox day, valid 1980-2099.
func autumnalEquinoxDay(year int) int {
	return int(23.2488 + 0.242194*float64(year-1980) - float64((year-1980)/4))
}
