package converter

import "time"

const displayLayout = "2006-01-02 15:04:05"

// Event is one classified HexChat log entry.
type Event struct {
	Timestamp int64  // unix seconds, UTC
	Prefix    string // weechat prefix column: speaker, -->, <--, --, " *"
	Message   string
}

// Record is one weechat-format line paired with its sort timestamp. Lines
// recovered from an existing weechat file keep their original text verbatim,
// so re-serializing them is lossless.
type Record struct {
	Timestamp int64
	Line      string
}

// Record renders the event as a weechat log line. The display time is the
// unix timestamp interpreted as UTC.
func (e Event) Record() Record {
	display := time.Unix(e.Timestamp, 0).UTC().Format(displayLayout)
	return Record{
		Timestamp: e.Timestamp,
		Line:      display + "\t" + e.Prefix + "\t" + e.Message,
	}
}
