// Package validate implements field-level checks for generation settings.
// Every function returns a Result instead of an error; the messages are the
// Japanese strings surfaced to users as-is.
package validate

import (
	"strings"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/calendar"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/sanitize"
)

const (
	// MaxRangeDays caps the generated list at roughly ten years.
	MaxRangeDays = 3650
	// MaxFormatLength caps date format patterns in UTF-16 code units.
	MaxFormatLength = 50
)

// User-facing validation messages.
const (
	MsgDatesRequired  = "開始日と終了日を入力してください"
	MsgDatesInvalid   = "有効な日付を入力してください"
	MsgDateOrder      = "開始日は終了日以前の日付を指定してください"
	MsgRangeTooLong   = "期間が長すぎます（最大3650日）"
	MsgTitleRequired  = "タイトルを入力してください"
	MsgTitleTooLong   = "タイトルは200文字以内で入力してください"
	MsgFormatRequired = "日付フォーマットを入力してください"
	MsgFormatTooLong  = "日付フォーマットは50文字以内で入力してください"
	MsgFormatInvalid  = "日付フォーマットが正しくありません"
	MsgColorInvalid   = "カラーコードが正しくありません"
)

// Result reports the outcome of a single field check.
type Result struct {
	OK      bool   `json:"is_valid"`
	Message string `json:"error_message,omitempty"`
}

func pass() Result {
	return Result{OK: true}
}

func fail(message string) Result {
	return Result{Message: message}
}

// DateRange checks presence, parseability, ordering and span of a date
// range. Equal endpoints form a valid single-day range.
func DateRange(start, end string) Result {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return fail(MsgDatesRequired)
	}

	from, err := calendar.Parse(strings.TrimSpace(start))
	if err != nil {
		return fail(MsgDatesInvalid)
	}
	to, err := calendar.Parse(strings.TrimSpace(end))
	if err != nil {
		return fail(MsgDatesInvalid)
	}

	if !calendar.IsRangeOrdered(from, to) {
		return fail(MsgDateOrder)
	}
	if calendar.DaysBetween(from, to) > MaxRangeDays {
		return fail(MsgRangeTooLong)
	}
	return pass()
}

// Title checks the sanitized title for presence and length.
func Title(title string) Result {
	if sanitize.Title(title) == "" {
		return fail(MsgTitleRequired)
	}
	if sanitize.UTF16Length(strings.TrimSpace(title)) > sanitize.MaxTitleLength {
		return fail(MsgTitleTooLong)
	}
	return pass()
}

// DateFormat checks a format pattern after markup stripping. A pattern the
// formatter leaves untouched while containing no recognized tokens cannot
// be interpreted and is rejected, as are unbalanced bracket literals.
func DateFormat(format string) Result {
	cleaned := sanitize.StripMarkup(format)
	if cleaned == "" {
		return fail(MsgFormatRequired)
	}
	if sanitize.UTF16Length(cleaned) > MaxFormatLength {
		return fail(MsgFormatTooLong)
	}
	if !bracketsBalanced(cleaned) {
		return fail(MsgFormatInvalid)
	}

	probe := calendar.New(2024, 1, 15)
	if calendar.Format(probe, cleaned) == cleaned && !calendar.HasFormatTokens(cleaned) {
		return fail(MsgFormatInvalid)
	}
	return pass()
}

// ColorHex accepts only # followed by 3 or 6 hex digits. Lenient CSS color
// forms are handled by sanitize.ColorValue instead; the two tiers are
// intentionally separate.
func ColorHex(color string) Result {
	if !sanitize.IsHexColor(sanitize.StripMarkup(color)) {
		return fail(MsgColorInvalid)
	}
	return pass()
}

func bracketsBalanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
