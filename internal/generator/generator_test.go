package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/calendar"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/validate"
)

type stubHolidays struct {
	entries map[string]string
}

func (s stubHolidays) Lookup(d calendar.Date) (string, bool) {
	name, ok := s.entries[d.String()]
	return name, ok
}

func baseSettings() Settings {
	return Settings{
		Title:      "予定リスト",
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-07",
		DateFormat: "YYYY-MM-DD",
	}
}

func TestGenerate_WeekendExclusion(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.ExcludeWeekends = true

	doc, err := Generate(s, stubHolidays{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"} {
		if !strings.Contains(doc, "- "+day+"\n") {
			t.Errorf("expected line for %s:\n%s", day, doc)
		}
	}
	// 2024-01-06 and 2024-01-07 are Saturday and Sunday.
	for _, day := range []string{"2024-01-06", "2024-01-07"} {
		if strings.Contains(doc, day) {
			t.Errorf("expected %s to be excluded:\n%s", day, doc)
		}
	}
}

func TestGenerate_HolidayAnnotationAndExclusion(t *testing.T) {
	t.Parallel()

	holidays := stubHolidays{entries: map[string]string{"2024-01-01": "元日"}}

	s := baseSettings()
	s.EndDate = "2024-01-02"

	doc, err := Generate(s, holidays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, "- 2024-01-01（元日）\n") {
		t.Fatalf("expected annotated holiday line:\n%s", doc)
	}

	s.ExcludeHolidays = true
	doc, err = Generate(s, holidays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(doc, "2024-01-01") {
		t.Fatalf("expected holiday to be excluded:\n%s", doc)
	}
	if !strings.Contains(doc, "- 2024-01-02\n") {
		t.Fatalf("expected regular day to remain:\n%s", doc)
	}
}

func TestGenerate_HolidayNameIsEscaped(t *testing.T) {
	t.Parallel()

	holidays := stubHolidays{entries: map[string]string{"2024-01-01": `<b>休日</b>`}}

	s := baseSettings()
	s.EndDate = "2024-01-01"

	doc, err := Generate(s, holidays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, "（&lt;b&gt;休日&lt;/b&gt;）") {
		t.Fatalf("expected escaped holiday name:\n%s", doc)
	}
}

func TestGenerate_ColorPrecedence(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.StartDate = "2024-01-06"
	s.EndDate = "2024-01-06"
	s.Colorize = true
	s.WeekendColor = "#0000ff"
	s.HolidayColor = "#ff0000"

	// Saturday, not a holiday: weekend color applies.
	doc, err := Generate(s, stubHolidays{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, `<span style="color: #0000ff">2024-01-06</span>`) {
		t.Fatalf("expected weekend-colored line:\n%s", doc)
	}

	// Same Saturday as a holiday: holiday color wins.
	doc, err = Generate(s, stubHolidays{entries: map[string]string{"2024-01-06": "臨時の休日"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc, `<span style="color: #ff0000">2024-01-06（臨時の休日）</span>`) {
		t.Fatalf("expected holiday-colored line:\n%s", doc)
	}
}

func TestGenerate_EmptyRangeReturnsEmptyString(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.StartDate = ""
	s.EndDate = ""

	doc, err := Generate(s, stubHolidays{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != "" {
		t.Fatalf("expected empty output, got %q", doc)
	}
}

func TestGenerate_ReversedRange(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.StartDate = "2024-01-07"
	s.EndDate = "2024-01-01"

	doc, err := Generate(s, stubHolidays{})
	if doc != "" {
		t.Fatalf("expected no document, got %q", doc)
	}

	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected *RangeError, got %v", err)
	}
	if rangeErr.Message != validate.MsgDateOrder {
		t.Fatalf("message = %q, want %q", rangeErr.Message, validate.MsgDateOrder)
	}
}

func TestGenerate_RangeTooLong(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.StartDate = "2014-01-01"
	s.EndDate = "2024-12-31"

	_, err := Generate(s, stubHolidays{})
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) || rangeErr.Message != validate.MsgRangeTooLong {
		t.Fatalf("expected range-too-long error, got %v", err)
	}
}

func TestGenerate_HeadingFallbackAndSingleDay(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.Title = "   "
	s.StartDate = "2024-01-03"
	s.EndDate = "2024-01-03"

	doc, err := Generate(s, stubHolidays{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(doc, "# "+DefaultTitle+"\n\n") {
		t.Fatalf("expected placeholder heading:\n%s", doc)
	}
	lines := strings.Count(doc, "- ")
	if lines != 1 {
		t.Fatalf("expected exactly one list line, got %d:\n%s", lines, doc)
	}
}

func TestGenerate_AllExcludedEmitsHeadingOnly(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.StartDate = "2024-01-06"
	s.EndDate = "2024-01-07"
	s.ExcludeWeekends = true

	doc, err := Generate(s, stubHolidays{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != "# 予定リスト\n\n" {
		t.Fatalf("expected heading only, got %q", doc)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	holidays := stubHolidays{entries: map[string]string{"2024-01-01": "元日"}}

	s := baseSettings()
	s.Colorize = true
	s.WeekendColor = "#a0a0a0"
	s.HolidayColor = "#ff0000"
	s.DateFormat = "YYYY年M月D日（ddd）"

	first, err := Generate(s, holidays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Generate(s, holidays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected identical output for identical inputs")
	}
}

func TestGenerate_SanitizesTitleAndFormat(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.Title = `<script>alert("XSS")</script>Malicious Title`
	s.DateFormat = "<b></b>"
	s.EndDate = "2024-01-01"

	doc, err := Generate(s, stubHolidays{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(doc, "# Malicious Title\n\n") {
		t.Fatalf("expected sanitized heading:\n%s", doc)
	}
	// The stripped format falls back to the default pattern.
	if !strings.Contains(doc, "- 2024年1月1日（月）") {
		t.Fatalf("expected default-formatted line:\n%s", doc)
	}
}
