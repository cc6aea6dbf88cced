package styles

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/padding"
)

// TruncateString truncates s to fit within maxWidth cells, adding an
// ellipsis when it does not fit.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadRight pads s with spaces to exactly width cells. Wider strings are
// returned unchanged.
func PadRight(s string, width int) string {
	if width < 1 {
		return s
	}
	return padding.String(s, uint(width))
}
