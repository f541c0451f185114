package converter

import "testing"

func TestParseSourceLine_Classification(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		prefix  string
		message string
	}{
		{"channel message", "T 1700000000 <alice>\tHello there", "<alice>", "Hello there"},
		{"message with internal tab", "T 1700000000 <alice>\tcol1\tcol2", "<alice>", "col1\tcol2"},
		{"empty message", "T 1700000000 <alice>\t", "<alice>", ""},
		{"join", "T 1700000000 -->\tbob (b@host) has joined #chan", "-->", "bob (b@host) has joined #chan"},
		{"part", "T 1700000000 <--\tbob has quit (Ping timeout)", "<--", "bob has quit (Ping timeout)"},
		{"system", "T 1700000000 ---\tbob is now known as rob", "--", "bob is now known as rob"},
		{"action", "T 1700000000 *\talice waves", " *", "alice waves"},
		{"notice", "T 1700000000 -bob-\tyou have mail", "--", "-bob- you have mail"},
		{"status notice", "T 1700000000 -*status-\tlooking up host", "--", "-*status- looking up host"},
		{"outgoing ctcp", "T 1700000000 >bob<\tVERSION", "--", ">bob< VERSION"},
		{"private query", "T 1700000000  alice >>\thi bob", "<alice>", "hi bob"},
		{"private query no padding", "T 1700000000 alice>>\thi bob", "<alice>", "hi bob"},
		{"plugin output without tab", "T 1700000000 Stored key for #chan", "--", "Stored key for #chan"},
		{"tabbed line matching no rule", "T 1700000000 ???\tsomething odd", "--", "???\tsomething odd"},
		{"color codes stripped", "T 1700000000 <alice>\tHello\x034world", "<alice>", "Helloworld"},
		{"crlf tolerated", "T 1700000000 <alice>\thi\r\n", "<alice>", "hi"},
	}
	for _, c := range cases {
		ev, ok := ParseSourceLine(c.line)
		if !ok {
			t.Fatalf("%s: expected ok for %q", c.name, c.line)
		}
		if ev.Timestamp != 1700000000 {
			t.Fatalf("%s: timestamp = %d, want 1700000000", c.name, ev.Timestamp)
		}
		if ev.Prefix != c.prefix {
			t.Fatalf("%s: prefix = %q, want %q", c.name, ev.Prefix, c.prefix)
		}
		if ev.Message != c.message {
			t.Fatalf("%s: message = %q, want %q", c.name, ev.Message, c.message)
		}
	}
}

func TestParseSourceLine_Rejections(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"no marker", "1700000000 <alice>\thi"},
		{"wrong marker", "X 1700000000 <alice>\thi"},
		{"marker without space", "T1700000000 <alice>\thi"},
		{"disallowed control byte", "T 1700000000 <alice>\thi\x01there"},
		{"control byte in otherwise valid line", "T 1700000000 \x00<alice>\thi"},
		{"only two fields", "T 1700000000"},
		{"non-integer timestamp", "T not-a-number <alice>\thi"},
		{"float timestamp", "T 1700000000.5 <alice>\thi"},
		{"empty line", ""},
	}
	for _, c := range cases {
		if _, ok := ParseSourceLine(c.line); ok {
			t.Fatalf("%s: expected rejection for %q", c.name, c.line)
		}
	}
}

func TestEventRecord_FormatsUTC(t *testing.T) {
	ev, ok := ParseSourceLine("T 1700000000 <alice>\tHello\x034world")
	if !ok {
		t.Fatal("expected ok")
	}
	rec := ev.Record()
	want := "2023-11-14 22:13:20\t<alice>\tHelloworld"
	if rec.Line != want {
		t.Fatalf("line = %q, want %q", rec.Line, want)
	}
	if rec.Timestamp != 1700000000 {
		t.Fatalf("timestamp = %d, want 1700000000", rec.Timestamp)
	}
}
