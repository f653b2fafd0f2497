package normalize

import (
	"strings"
	"testing"
)

func TestClean_CollapsesWhitespace(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"spaces", "a    b", "a b"},
		{"tabs and newlines", "a\t\tb\n\nc\r\nd", "a b c d"},
		{"leading and trailing", "   hello world   ", "hello world"},
		{"mixed runs", " a \n b\t\tc ", "a b c"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Clean(tc.in)
			if got != tc.want {
				t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClean_StripsNonPrintable(t *testing.T) {
	in := "café \x00\x07 résumé 世界 done"
	got := Clean(in)
	want := "caf rsum done"
	if got != want {
		t.Errorf("Clean(%q) = %q, want %q", in, got, want)
	}

	for _, r := range got {
		if r < 0x20 || r > 0x7e {
			t.Errorf("Clean output contains non-printable rune %q", r)
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"plain text",
		"  messy \n\n text \t with é chars \x01 ",
		"a一b",
		strings.Repeat("word \n", 100),
		"",
	}

	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestClean_SeparatorImpliedByDroppedRune(t *testing.T) {
	// "a <CJK> b" must collapse to "a b", never "a  b"
	got := Clean("a 世 b")
	if got != "a b" {
		t.Errorf("expected %q, got %q", "a b", got)
	}
}
