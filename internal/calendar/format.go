package calendar

import (
	"fmt"
	"strings"
)

// Weekday names rendered for the dddd / ddd / dd tokens. The application is
// Japanese-facing, so the locale is fixed.
var (
	weekdayFull  = [7]string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"}
	weekdayShort = [7]string{"日", "月", "火", "水", "木", "金", "土"}
)

// formatTokens are matched longest-first at each position of the pattern.
// Civil dates carry no time of day, so the time tokens render midnight.
var formatTokens = []string{
	"YYYY", "YY",
	"dddd", "ddd", "dd",
	"MM", "M",
	"DD", "D",
	"HH", "H",
	"mm", "m",
	"ss", "s",
	"A", "a",
}

// Format renders the date through a dayjs-style token pattern. Text wrapped
// in square brackets is emitted literally with the brackets removed.
func Format(d Date, pattern string) string {
	var out strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		if runes[i] == '[' {
			end := indexRune(runes, i+1, ']')
			if end < 0 {
				out.WriteRune(runes[i])
				i++
				continue
			}
			out.WriteString(string(runes[i+1 : end]))
			i = end + 1
			continue
		}

		token, width := matchToken(runes[i:])
		if token == "" {
			out.WriteRune(runes[i])
			i++
			continue
		}
		out.WriteString(renderToken(d, token))
		i += width
	}

	return out.String()
}

// HasFormatTokens reports whether the pattern contains at least one
// recognized token outside bracketed literals.
func HasFormatTokens(pattern string) bool {
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		if runes[i] == '[' {
			end := indexRune(runes, i+1, ']')
			if end >= 0 {
				i = end + 1
				continue
			}
		}
		if token, _ := matchToken(runes[i:]); token != "" {
			return true
		}
		i++
	}
	return false
}

func matchToken(runes []rune) (string, int) {
	for _, token := range formatTokens {
		tr := []rune(token)
		if len(runes) < len(tr) {
			continue
		}
		if string(runes[:len(tr)]) == token {
			return token, len(tr)
		}
	}
	return "", 0
}

func renderToken(d Date, token string) string {
	switch token {
	case "YYYY":
		return fmt.Sprintf("%04d", d.Year)
	case "YY":
		return fmt.Sprintf("%02d", d.Year%100)
	case "MM":
		return fmt.Sprintf("%02d", int(d.Month))
	case "M":
		return fmt.Sprintf("%d", int(d.Month))
	case "DD":
		return fmt.Sprintf("%02d", d.Day)
	case "D":
		return fmt.Sprintf("%d", d.Day)
	case "dddd":
		return weekdayFull[int(d.Weekday())%7]
	case "ddd", "dd":
		return weekdayShort[int(d.Weekday())%7]
	case "HH", "mm", "ss":
		return "00"
	case "H", "m", "s":
		return "0"
	case "A", "a":
		return "午前"
	default:
		return token
	}
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
