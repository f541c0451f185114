package converter

import (
	"regexp"
	"strings"
	"time"
)

var destHeaderRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\t`)

// ParseDestLine recovers the sort timestamp from one line of an existing
// weechat log. The leading calendar time is interpreted as UTC. Lines without
// a valid header are dropped as corrupted. The original line is kept verbatim
// as the record's serialized form.
func ParseDestLine(line string) (Record, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Record{}, false
	}
	m := destHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}
	t, err := time.ParseInLocation(displayLayout, m[1], time.UTC)
	if err != nil {
		return Record{}, false
	}
	return Record{Timestamp: t.Unix(), Line: line}, true
}
