package sanitize

import (
	"strings"
	"testing"
)

func TestTitle_StripsMarkupAndScripts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"script tag", `<script>alert("XSS")</script>Malicious Title`, "Malicious Title"},
		{"plain title", "予定リスト", "予定リスト"},
		{"surrounding whitespace", "  休暇予定  ", "休暇予定"},
		{"inner tags become spaces", "a<b>b</b>c", "a b c"},
		{"entities become spaces", "a&amp;b&#x3C;c", "a b c"},
		{"residual angle brackets", "1 > 2 < 3", "1 2 3"},
		{"javascript scheme", "javascript:alert(1)タイトル", "タイトル"},
		{"eval call", "eval(document.cookie)メモ", "メモ"},
		{"whitespace only", "   \t\n ", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Title(tc.input); got != tc.want {
				t.Fatalf("Title(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTitle_TruncatesLongInput(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("あ", MaxTitleLength+50)
	got := Title(long)
	if len([]rune(got)) != MaxTitleLength {
		t.Fatalf("expected %d runes, got %d", MaxTitleLength, len([]rune(got)))
	}
}

func TestDateFormat_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"angle brackets survive stripping", "YYYY<MM"},
		{"disallowed characters", "YYYY-MM-DD!"},
		{"emoji", "YYYY🎉MM"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DateFormat(tc.input); got != DefaultDateFormat {
				t.Fatalf("DateFormat(%q) = %q, want default %q", tc.input, got, DefaultDateFormat)
			}
		})
	}
}

func TestDateFormat_AcceptsAllowedPatterns(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{
		"YYYY-MM-DD",
		"YYYY年M月D日（ddd）",
		"M/D (ddd)",
		"【MM月DD日】",
		"YYYY・MM・DD",
		"[固定]YYYY",
	} {
		if got := DateFormat(pattern); got != pattern {
			t.Errorf("DateFormat(%q) = %q, want unchanged", pattern, got)
		}
	}
}

func TestColorValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"hex six", "#ff0000", "#ff0000"},
		{"hex three", "#f00", "#f00"},
		{"rgb", "rgb(255, 0, 0)", "rgb(255, 0, 0)"},
		{"rgb clamps channels", "rgb(300, -5, 128)", "rgb(255, 0, 128)"},
		{"rgba clamps alpha", "rgba(0, 0, 0, 1.5)", "rgba(0, 0, 0, 1)"},
		{"rgba tiny alpha stays decimal", "rgba(0, 0, 0, 0.00005)", "rgba(0, 0, 0, 0.00005)"},
		{"hsla tiny alpha stays decimal", "hsla(120, 50%, 50%, 0.00001)", "hsla(120, 50%, 50%, 0.00001)"},
		{"hsl", "hsl(120, 50%, 50%)", "hsl(120, 50%, 50%)"},
		{"hsl clamps hue", "hsl(400, 120%, -10%)", "hsl(360, 100%, 0%)"},
		{"named color lowercased", "RED", "red"},
		{"named color", "skyblue", "skyblue"},
		{"unknown name", "notacolor", DefaultColor},
		{"empty", "", DefaultColor},
		{"javascript scheme", "javascript:red", "red"},
		{"markup around hex", "<b>#fff</b>", "#fff"},
		{"arbitrary css", "url(evil)", DefaultColor},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ColorValue(tc.input); got != tc.want {
				t.Fatalf("ColorValue(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	got := EscapeHTML(`<a href="x">&'</a>`)
	want := "&lt;a href=&quot;x&quot;&gt;&amp;&#39;&lt;/a&gt;"
	if got != want {
		t.Fatalf("EscapeHTML = %q, want %q", got, want)
	}
}

func TestSanitizers_AreIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<script>alert("XSS")</script>タイトル`,
		"a<b>b</b>c alert(1) d",
		"YYYY年M月D日（ddd）",
		"rgb(300, -5, 0.5)",
		"rgba(12, 34, 56, 0.00005)",
		"hsla(400, 200%, 50%, 2)",
		"RED",
		"not a color",
		"",
	}

	for _, input := range inputs {
		if once, twice := Title(input), Title(Title(input)); once != twice {
			t.Errorf("Title not idempotent for %q: %q != %q", input, once, twice)
		}
		if once, twice := DateFormat(input), DateFormat(DateFormat(input)); once != twice {
			t.Errorf("DateFormat not idempotent for %q: %q != %q", input, once, twice)
		}
		if once, twice := ColorValue(input), ColorValue(ColorValue(input)); once != twice {
			t.Errorf("ColorValue not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
