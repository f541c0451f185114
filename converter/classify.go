package converter

import (
	"regexp"
	"strconv"
	"strings"
)

// Control bytes that may legitimately appear in a HexChat log line: the mIRC
// formatting codes plus tab/newline/carriage return. Anything else below 0x20
// marks the line as binary-contaminated and it is dropped wholesale.
const allowedControl = "\x02\x03\x07\x0f\x16\x1d\x1f\t\n\r"

// classifyRule pairs a remainder pattern with its prefix/message extractor.
// Rules are tried in order; the first match wins. The patterns are not all
// mutually exclusive, so the order matters.
type classifyRule struct {
	re      *regexp.Regexp
	extract func(m []string) (prefix, message string)
}

var classifyRules = []classifyRule{
	// Channel/regular message: <nick>\tmessage
	{regexp.MustCompile(`^<([^>]+)>\t(.*)$`), func(m []string) (string, string) {
		return "<" + m[1] + ">", m[2]
	}},
	// Join: -->\tnick (user@host) has joined #channel
	{regexp.MustCompile(`^-->\t(.+)$`), func(m []string) (string, string) {
		return "-->", m[1]
	}},
	// Part/quit: <--\tnick has quit/left
	{regexp.MustCompile(`^<--\t(.+)$`), func(m []string) (string, string) {
		return "<--", m[1]
	}},
	// Status/system: ---\tnick changes, topic, mode, disconnects
	{regexp.MustCompile(`^---\t(.+)$`), func(m []string) (string, string) {
		return "--", m[1]
	}},
	// Action: *\tnick does something
	{regexp.MustCompile(`^\*\t(.+)$`), func(m []string) (string, string) {
		return " *", m[1]
	}},
	// Notice from nick: -nick-\tmessage
	{regexp.MustCompile(`^-([^-]+)-\t(.+)$`), func(m []string) (string, string) {
		return "--", "-" + m[1] + "- " + m[2]
	}},
	// Status notice: -*status-\tmessage
	{regexp.MustCompile(`^-\*status-\t(.+)$`), func(m []string) (string, string) {
		return "--", "-*status- " + m[1]
	}},
	// Outgoing CTCP/message: >nick<\tmessage
	{regexp.MustCompile(`^>([^<]+)<\t(.+)$`), func(m []string) (string, string) {
		return "--", ">" + m[1] + "< " + m[2]
	}},
	// Private message (hexchat query): nick >>\tmessage
	{regexp.MustCompile(`^\s*(\S+)\s*>>\t(.+)$`), func(m []string) (string, string) {
		return "<" + m[1] + ">", m[2]
	}},
}

// classifyRemainder maps a cleaned remainder to its weechat prefix and
// message. Plugin output with no tab at all, and tabbed lines matching no
// rule, both fall through as generic status lines, so classification never
// fails once the line-level checks have passed.
func classifyRemainder(text string) (prefix, message string) {
	for _, rule := range classifyRules {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			return rule.extract(m)
		}
	}
	return "--", text
}

// ParseSourceLine classifies one HexChat log line. It reports ok=false for
// lines that are not timestamped entries, carry disallowed control bytes, or
// have an unparseable timestamp; such lines are dropped by the caller.
func ParseSourceLine(line string) (Event, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "T ") {
		return Event{}, false
	}
	for _, r := range line {
		if r < 0x20 && !strings.ContainsRune(allowedControl, r) {
			return Event{}, false
		}
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 {
		return Event{}, false
	}
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Event{}, false
	}
	clean := StripFormatting(parts[2])
	prefix, message := classifyRemainder(clean)
	return Event{Timestamp: ts, Prefix: prefix, Message: message}, true
}
