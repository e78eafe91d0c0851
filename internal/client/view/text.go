package view

import (
	"regexp"
	"strings"
	"time"
)

// PhonePattern matches local and international mobile numbers.
var PhonePattern = regexp.MustCompile(`(09\d{8,9}|\+959\d{8,9})`)

// Segment is a run of note text; Phone segments are dialable.
type Segment struct {
	Text  string
	Phone bool
}

// Segments splits text around phone numbers. Concatenating the segment
// texts gives back text.
func Segments(text string) []Segment {
	var out []Segment
	last := 0
	for _, m := range PhonePattern.FindAllStringIndex(text, -1) {
		if m[0] > last {
			out = append(out, Segment{Text: text[last:m[0]]})
		}
		out = append(out, Segment{Text: text[m[0]:m[1]], Phone: true})
		last = m[1]
	}
	if last < len(text) {
		out = append(out, Segment{Text: text[last:]})
	}
	return out
}

// TelURI returns the tel: link for a phone segment.
func TelURI(number string) string {
	return "tel:" + strings.Join(strings.Fields(number), "")
}

// Hyperlink wraps text in an OSC 8 terminal hyperlink.
func Hyperlink(uri, text string) string {
	return "\x1b]8;;" + uri + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}

const dateLayout = "02 Jan 2006 • 03:04 pm"

// FormatDate renders t in local time, or "N/A" for a zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format(dateLayout)
}

// FormatDatePtr is FormatDate for optional timestamps.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return FormatDate(*t)
}

// Preview returns the first line of content cut to n runes.
func Preview(content string, n int) string {
	line, _, _ := strings.Cut(content, "\n")
	r := []rune(line)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return line
}
