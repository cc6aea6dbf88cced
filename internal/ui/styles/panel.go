package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cornerTopLeft     = "╭"
	cornerTopRight    = "╮"
	cornerBottomLeft  = "╰"
	cornerBottomRight = "╯"
	edgeHorizontal    = "─"
	edgeVertical      = "│"
)

// Panel is a rounded box with its title set into the top edge:
//
//	╭─ Favorites (3) (d remove) ─╮
//	│ Lisbon                     │
//	╰────────────────────────────╯
type Panel struct {
	Title string
	// Hint is drawn muted after the title when there is room for it.
	Hint string
	// Width and Height are outer sizes. Height 0 fits the content.
	Width   int
	Height  int
	Focused bool
}

// Render draws content inside the panel. Content is wrapped to the inner
// width and clipped to the inner height.
func (p Panel) Render(content string) string {
	var edgeColor lipgloss.TerminalColor = BorderDefaultColor
	if p.Focused {
		edgeColor = BorderFocusColor
	}
	edge := lipgloss.NewStyle().Foreground(edgeColor)
	inner := max(p.Width-2, 1)

	body := lipgloss.NewStyle().Width(inner)
	if p.Height > 0 {
		rows := max(p.Height-2, 1)
		body = body.Height(rows).MaxHeight(rows)
	}

	var b strings.Builder
	b.WriteString(p.top(inner, edge))
	for _, line := range strings.Split(body.Render(content), "\n") {
		b.WriteString("\n")
		b.WriteString(edge.Render(edgeVertical) + PadRight(line, inner) + edge.Render(edgeVertical))
	}
	b.WriteString("\n")
	b.WriteString(edge.Render(cornerBottomLeft + strings.Repeat(edgeHorizontal, inner) + cornerBottomRight))
	return b.String()
}

// top renders "╭─ Title (hint) ───╮". The title is truncated to fit and the
// hint is dropped before the title is.
func (p Panel) top(inner int, edge lipgloss.Style) string {
	// "─ " before the label and " ─" after it at minimum.
	room := inner - 4
	if p.Title == "" || room < 1 {
		return edge.Render(cornerTopLeft + strings.Repeat(edgeHorizontal, inner) + cornerTopRight)
	}

	title := TruncateString(p.Title, room)
	label := lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor).Render(title)
	used := lipgloss.Width(title)
	if p.Hint != "" {
		hint := " (" + p.Hint + ")"
		if used+lipgloss.Width(hint) <= room {
			label += MutedStyle.Render(hint)
			used += lipgloss.Width(hint)
		}
	}

	dashes := max(inner-3-used, 0)
	return edge.Render(cornerTopLeft+edgeHorizontal+" ") + label +
		edge.Render(" "+strings.Repeat(edgeHorizontal, dashes)+cornerTopRight)
}
