package converter

import "testing"

func TestStripFormatting(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"\x034red", "red"},
		{"\x0312,4colored", "colored"},
		{"\x03bare introducer", "bare introducer"},
		{"\x02bold\x02 \x1funder\x1f \x16rev\x16 \x1dital\x1d \x0freset \x07bell", "bold under rev ital reset bell"},
		{"tabs\tsurvive\tstripping\x034", "tabs\tsurvive\tstripping"},
		// Three digits: only the first two belong to the color code.
		{"\x03123", "3"},
		// Introducer followed by a non-digit keeps the following text.
		{"Hello\x03(4world", "Hello(4world"},
	}
	for _, c := range cases {
		got := StripFormatting(c.in)
		if got != c.want {
			t.Fatalf("StripFormatting(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripFormattingIdempotent(t *testing.T) {
	in := "\x034,12a\x02b\x03c\x16d"
	once := StripFormatting(in)
	twice := StripFormatting(once)
	if once != twice {
		t.Fatalf("not idempotent: %q vs %q", once, twice)
	}
}
