package converter

import "regexp"

// mIRC formatting sequences embedded in HexChat log lines:
// \x03 color introducer with optional fg[,bg] 1-2 digit groups, plus the
// single-byte toggles for bold, reset, reverse, italic, underline and bell.
var (
	colorRe  = regexp.MustCompile(`\x03(\d{1,2}(,\d{1,2})?)?`)
	toggleRe = regexp.MustCompile(`[\x02\x0f\x16\x1d\x1f\x07]`)
)

// StripFormatting removes mIRC color and formatting codes. Tabs and all
// printable text are left untouched. Idempotent.
func StripFormatting(text string) string {
	text = colorRe.ReplaceAllString(text, "")
	text = toggleRe.ReplaceAllString(text, "")
	return text
}
