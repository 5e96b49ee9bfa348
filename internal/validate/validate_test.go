package validate

import (
	"strings"
	"testing"
)

func TestDateRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		start   string
		end     string
		ok      bool
		message string
	}{
		{"valid range", "2024-01-01", "2024-01-07", true, ""},
		{"single day", "2024-01-01", "2024-01-01", true, ""},
		{"missing start", "", "2024-01-07", false, MsgDatesRequired},
		{"missing end", "2024-01-01", "", false, MsgDatesRequired},
		{"both missing", "", "", false, MsgDatesRequired},
		{"unparseable start", "01/01/2024", "2024-01-07", false, MsgDatesInvalid},
		{"unparseable end", "2024-01-01", "次の金曜日", false, MsgDatesInvalid},
		{"reversed", "2024-01-07", "2024-01-01", false, MsgDateOrder},
		{"exactly max span", "2024-01-01", "2033-12-29", true, ""},
		{"over max span", "2014-01-01", "2024-12-31", false, MsgRangeTooLong},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DateRange(tc.start, tc.end)
			if got.OK != tc.ok {
				t.Fatalf("DateRange(%q, %q).OK = %v, want %v", tc.start, tc.end, got.OK, tc.ok)
			}
			if got.Message != tc.message {
				t.Fatalf("message = %q, want %q", got.Message, tc.message)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	if got := Title("予定リスト"); !got.OK {
		t.Fatalf("expected valid title, got %q", got.Message)
	}
	if got := Title(""); got.OK || got.Message != MsgTitleRequired {
		t.Fatalf("expected required message, got %+v", got)
	}
	if got := Title("<script></script>"); got.OK || got.Message != MsgTitleRequired {
		t.Fatalf("expected markup-only title to be rejected, got %+v", got)
	}
	if got := Title(strings.Repeat("あ", 201)); got.OK || got.Message != MsgTitleTooLong {
		t.Fatalf("expected too-long message, got %+v", got)
	}
}

func TestDateFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		format  string
		ok      bool
		message string
	}{
		{"tokens", "YYYY年M月D日（ddd）", true, ""},
		{"iso", "YYYY-MM-DD", true, ""},
		{"bracket literal", "[メモ] MM/DD", true, ""},
		{"empty", "", false, MsgFormatRequired},
		{"markup only", "<b></b>", false, MsgFormatRequired},
		{"too long", strings.Repeat("Y", 51), false, MsgFormatTooLong},
		{"unbalanced open", "[[[MM", false, MsgFormatInvalid},
		{"unbalanced close", "MM]]]", false, MsgFormatInvalid},
		{"inert pattern", "めも", false, MsgFormatInvalid},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DateFormat(tc.format)
			if got.OK != tc.ok || got.Message != tc.message {
				t.Fatalf("DateFormat(%q) = %+v, want ok=%v message=%q", tc.format, got, tc.ok, tc.message)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"#fff", "#FF0000", "#1a2b3c"} {
		if got := ColorHex(valid); !got.OK {
			t.Errorf("expected %q to validate, got %q", valid, got.Message)
		}
	}

	// Stricter than the sanitizer on purpose: rgb() and color names pass
	// sanitization but fail the hex-only form check.
	for _, invalid := range []string{"", "fff", "#ff00", "#gggggg", "rgb(0, 0, 0)", "red"} {
		if got := ColorHex(invalid); got.OK || got.Message != MsgColorInvalid {
			t.Errorf("expected %q to be rejected, got %+v", invalid, got)
		}
	}
}
