// Package sanitize provides best-effort string scrubbing for user supplied
// title, date format and color inputs before they reach formatting or
// rendering paths. The functions are total and idempotent; malformed input
// degrades to a safe default instead of an error.
package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxTitleLength is the title cap in UTF-16 code units.
	MaxTitleLength = 200
	// MaxDateFormatLength is the date format cap in UTF-16 code units.
	MaxDateFormatLength = 100

	// DefaultDateFormat replaces date format input that failed sanitization.
	DefaultDateFormat = "YYYY年M月D日（ddd）"
	// DefaultColor replaces color input that failed sanitization.
	DefaultColor = "#000000"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	entityPattern     = regexp.MustCompile(`&[a-zA-Z][a-zA-Z0-9]*;|&#[0-9]+;|&#[xX][0-9a-fA-F]+;`)
	dangerousCall     = regexp.MustCompile(`(?i)\b(?:alert|eval)\s*\([^)]*\)`)
	javascriptScheme  = regexp.MustCompile(`(?i)javascript\s*:`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
	formatAllowed     = regexp.MustCompile(`^[A-Za-z0-9 \x{3000}-\x{303F}\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}\x{FF00}-\x{FFEF}\-/()（）「」\[\]【】・、。:_]+$`)
	hexColorPattern   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbColorPattern   = regexp.MustCompile(`(?i)^(rgba?)\(\s*(-?[\d.]+)\s*,\s*(-?[\d.]+)\s*,\s*(-?[\d.]+)\s*(?:,\s*(-?[\d.]+)\s*)?\)$`)
	hslColorPattern   = regexp.MustCompile(`(?i)^(hsla?)\(\s*(-?[\d.]+)\s*,\s*(-?[\d.]+)%\s*,\s*(-?[\d.]+)%\s*(?:,\s*(-?[\d.]+)\s*)?\)$`)
)

// namedColors is the fixed allow-list of CSS color keywords accepted by
// ColorValue. Matches are case-insensitive and normalized to lowercase.
var namedColors = map[string]struct{}{
	"black": {}, "white": {}, "red": {}, "green": {}, "blue": {},
	"yellow": {}, "orange": {}, "purple": {}, "pink": {}, "gray": {},
	"grey": {}, "brown": {}, "cyan": {}, "magenta": {}, "lime": {},
	"navy": {}, "teal": {}, "olive": {}, "maroon": {}, "silver": {},
	"gold": {}, "indigo": {}, "violet": {}, "crimson": {}, "coral": {},
	"salmon": {}, "khaki": {}, "plum": {}, "orchid": {}, "beige": {},
	"ivory": {}, "lavender": {}, "tan": {}, "aqua": {}, "fuchsia": {},
	"tomato": {}, "skyblue": {}, "lightgray": {}, "darkgray": {},
	"lightblue": {}, "darkblue": {}, "lightgreen": {}, "darkgreen": {},
}

// Title scrubs a document title: markup and entities collapse to spaces,
// script-like fragments are removed, and the result is capped at
// MaxTitleLength code units. All-whitespace input yields an empty string.
func Title(input string) string {
	cleaned := strings.TrimSpace(input)
	cleaned = tagPattern.ReplaceAllString(cleaned, " ")
	cleaned = entityPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.ReplaceAll(cleaned, "<", "")
	cleaned = strings.ReplaceAll(cleaned, ">", "")
	cleaned = dangerousCall.ReplaceAllString(cleaned, "")
	cleaned = javascriptScheme.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	// Trim again after the cap so truncation cannot expose trailing
	// whitespace, which would break idempotence.
	return strings.TrimSpace(truncateUTF16(cleaned, MaxTitleLength))
}

// DateFormat scrubs a dayjs-style format pattern. Input that is empty after
// scrubbing, retains angle brackets, or strays outside the character
// allow-list is replaced by DefaultDateFormat.
func DateFormat(input string) string {
	cleaned := strings.TrimSpace(input)
	cleaned = tagPattern.ReplaceAllString(cleaned, " ")
	cleaned = entityPattern.ReplaceAllString(cleaned, " ")
	cleaned = dangerousCall.ReplaceAllString(cleaned, "")
	cleaned = javascriptScheme.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" || strings.ContainsAny(cleaned, "<>") || !formatAllowed.MatchString(cleaned) {
		return DefaultDateFormat
	}
	return strings.TrimSpace(truncateUTF16(cleaned, MaxDateFormatLength))
}

// ColorValue scrubs a CSS color. Exactly one of hex, rgb()/rgba(),
// hsl()/hsla() or an allow-listed color keyword is accepted; channels are
// clamped into their legal ranges. Anything else yields DefaultColor.
func ColorValue(input string) string {
	cleaned := strings.TrimSpace(input)
	cleaned = tagPattern.ReplaceAllString(cleaned, "")
	cleaned = javascriptScheme.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if hexColorPattern.MatchString(cleaned) {
		return cleaned
	}
	if m := rgbColorPattern.FindStringSubmatch(cleaned); m != nil {
		return rebuildRGB(m)
	}
	if m := hslColorPattern.FindStringSubmatch(cleaned); m != nil {
		return rebuildHSL(m)
	}
	lower := strings.ToLower(cleaned)
	if _, ok := namedColors[lower]; ok {
		return lower
	}
	return DefaultColor
}

// StripMarkup removes tag-like substrings, entities, dangerous call
// patterns and the javascript: scheme without applying any fallback default.
// Validation uses it to inspect what the user actually typed.
func StripMarkup(input string) string {
	cleaned := strings.TrimSpace(input)
	cleaned = tagPattern.ReplaceAllString(cleaned, " ")
	cleaned = entityPattern.ReplaceAllString(cleaned, " ")
	cleaned = dangerousCall.ReplaceAllString(cleaned, "")
	cleaned = javascriptScheme.ReplaceAllString(cleaned, "")
	cleaned = whitespaceRun.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// IsHexColor reports whether value is exactly # followed by 3 or 6 hex
// digits. This is deliberately narrower than ColorValue: form-level hex
// fields are validated strictly while any CSS color survives sanitization.
func IsHexColor(value string) bool {
	return hexColorPattern.MatchString(value)
}

// UTF16Length counts UTF-16 code units, matching the length semantics of
// the web front end the inputs originate from.
func UTF16Length(s string) int {
	units := 0
	for _, r := range s {
		if r > 0xFFFF {
			units += 2
			continue
		}
		units++
	}
	return units
}

// EscapeHTML converts text for safe interpolation into inline HTML.
func EscapeHTML(text string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(text)
}

func rebuildRGB(m []string) string {
	fn := strings.ToLower(m[1])
	r := clampInt(m[2], 0, 255)
	g := clampInt(m[3], 0, 255)
	b := clampInt(m[4], 0, 255)

	if fn == "rgba" && m[5] != "" {
		a := clampFloat(m[5], 0, 1)
		return "rgba(" + itoa(r) + ", " + itoa(g) + ", " + itoa(b) + ", " + ftoa(a) + ")"
	}
	return "rgb(" + itoa(r) + ", " + itoa(g) + ", " + itoa(b) + ")"
}

func rebuildHSL(m []string) string {
	fn := strings.ToLower(m[1])
	h := clampInt(m[2], 0, 360)
	s := clampInt(m[3], 0, 100)
	l := clampInt(m[4], 0, 100)

	if fn == "hsla" && m[5] != "" {
		a := clampFloat(m[5], 0, 1)
		return "hsla(" + itoa(h) + ", " + itoa(s) + "%, " + itoa(l) + "%, " + ftoa(a) + ")"
	}
	return "hsl(" + itoa(h) + ", " + itoa(s) + "%, " + itoa(l) + "%)"
}

func clampInt(value string, min, max int) int {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return min
	}
	v := int(f)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(value string, min, max float64) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return min
	}
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// ftoa renders alpha channels in plain decimal notation. Scientific notation
// would not survive a second pass through the color patterns.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// truncateUTF16 caps a string at limit UTF-16 code units, matching the
// length semantics of the web front end the inputs originate from.
func truncateUTF16(s string, limit int) string {
	units := 0
	for i, r := range s {
		width := 1
		if r > 0xFFFF {
			width = 2
		}
		if units+width > limit {
			return s[:i]
		}
		units += width
	}
	return s
}
