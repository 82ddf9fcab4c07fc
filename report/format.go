package report

import (
	"strconv"
	"strings"
)

// Separator is the digit group separator used in reports.
const Separator = '.'

// Group renders v in groups of three digits from the right, e.g. 1234567
// becomes "1.234.567" with sep '.'. Only the leftmost group may be shorter
// than three digits.
func Group(v uint64, sep rune) string {
	s := strconv.FormatUint(v, 10)
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteRune(sep)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Pad right-aligns s in a field of width columns. Longer strings are
// returned unchanged.
func Pad(s string, width int) string {
	if n := len(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

// Dots groups v with Separator and right-aligns it to width.
func Dots(v uint64, width int) string {
	return Pad(Group(v, Separator), width)
}
