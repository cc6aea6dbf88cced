// Package overlay draws foreground content (toasts, the help box, badges)
// on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	Center Position = iota
	Top
	Bottom
	TopRight
	BottomRight
)

// Config controls overlay placement.
type Config struct {
	Width    int // viewport width
	Height   int // viewport height
	Position Position
	PadX     int // distance from the right edge for the *Right positions
	PadY     int // distance from the top or bottom edge
}

// Place renders fg on top of bg. Both may contain ANSI styling.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := calculatePosition(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], fgLine, x)
	}

	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of line starting at x with fg.
func splice(line, fg string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	var right string
	if end := x + ansi.StringWidth(fg); end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + fg + right
}

func calculatePosition(cfg Config, fgWidth, fgHeight int) (x, y int) {
	centerX := (cfg.Width - fgWidth) / 2
	rightX := cfg.Width - fgWidth - cfg.PadX

	switch cfg.Position {
	case Top:
		x, y = centerX, cfg.PadY
	case Bottom:
		x, y = centerX, cfg.Height-fgHeight-cfg.PadY
	case TopRight:
		x, y = rightX, cfg.PadY
	case BottomRight:
		x, y = rightX, cfg.Height-fgHeight-cfg.PadY
	default:
		x, y = centerX, (cfg.Height-fgHeight)/2
	}

	return max(x, 0), max(y, 0)
}
