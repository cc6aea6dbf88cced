package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/ui/markdown"
	"github.com/zjrosen/wayfarer/internal/ui/overlay"
	"github.com/zjrosen/wayfarer/internal/ui/styles"
)

const (
	minFavoritesWidth = 24
	favoriteMarker    = "★"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	footerHeight := 0
	var footer string
	if m.showStatusBar {
		footer = m.renderStatusBar()
		footerHeight = lipgloss.Height(footer)
	}

	bodyHeight := max(m.height-lipgloss.Height(header)-footerHeight, 3)
	destWidth, favWidth := panelWidths(m.width)

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Panel{Title: m.destinationTitle(), Width: destWidth, Height: bodyHeight, Focused: true}.
			Render(m.destinationContent(destWidth-2)),
		styles.Panel{Title: fmt.Sprintf("Favorites (%d)", len(m.favs)), Width: favWidth, Height: bodyHeight}.
			Render(m.favoritesContent(favWidth-2)),
	)

	view := lipgloss.JoinVertical(lipgloss.Left, header, panels)
	if m.showStatusBar {
		view = lipgloss.JoinVertical(lipgloss.Left, view, footer)
	}

	if m.locating {
		view = overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.TopRight,
			PadX:     1,
		}, m.spinner.View()+" locating", view)
	}
	if m.showHelp {
		view = overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.Center,
		}, m.renderHelp(), view)
	}
	if m.modal != nil {
		view = m.modal.Overlay(view)
	}
	view = m.logs.Overlay(view)
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	return zone.Scan(view)
}

// panelWidths splits width between the destination and favorites panels.
func panelWidths(width int) (dest, fav int) {
	fav = max(width*2/5, minFavoritesWidth)
	if fav > width-10 {
		fav = width / 2
	}
	return width - fav, fav
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("wayfarer")
	if m.loading {
		title += " " + m.spinner.View()
	}
	return title
}

func (m Model) destinationTitle() string {
	if m.post == nil {
		return "Destination"
	}
	return fmt.Sprintf("Destination #%d", m.post.ID)
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func (m Model) destinationContent(width int) string {
	switch {
	case m.postErr != "":
		return styles.ErrorStyle.Render(wordwrap.String(m.postErr, max(width-4, 1)))
	case m.post == nil:
		return styles.MutedStyle.Render("Finding a destination...")
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(wordwrap.String(displayTitle(m.post.Title), max(width, 1))))
	if m.registry.Contains(m.post.ID) {
		b.WriteString(" " + styles.FavoriteMarkerStyle.Render(favoriteMarker))
	}
	b.WriteString("\n\n")
	b.WriteString(m.body)
	return b.String()
}

func (m Model) favoritesContent(width int) string {
	if len(m.favs) == 0 {
		return styles.MutedStyle.Render("No favorites yet. Press f to save one.")
	}

	rows := make([]string, 0, len(m.favs))
	for i, fav := range m.favs {
		indicator := "  "
		if i == m.cursor {
			indicator = styles.SelectionIndicatorStyle.Render("> ")
		}
		title := styles.PadRight(styles.TruncateString(displayTitle(fav.Title), max(width-2, 1)), max(width-2, 1))
		if i == m.cursor {
			title = styles.SelectedRowStyle.Render(title)
		}
		rows = append(rows, zone.Mark(favoriteZoneID(i), indicator+title))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderStatusBar() string {
	source := "system"
	if _, ok := m.theme.Explicit(); ok {
		source = "chosen"
	}
	parts := []string{fmt.Sprintf("theme: %s (%s)", m.mode, source)}

	if m.location != nil {
		parts = append(parts, "near "+styles.LocationStyle.Render(m.location.String()))
	}
	parts = append(parts, "? help")
	if m.debug && m.lastLog != "" {
		parts = append(parts, styles.MutedStyle.Render(strings.TrimSpace(m.lastLog)))
	}

	line := strings.Join(parts, " • ")
	return styles.StatusBarStyle.Render(styles.TruncateString(line, max(m.width-2, 1)))
}

func (m Model) renderHelp() string {
	var lines []string
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf(" %-8s %s", h.Key, h.Desc))
		}
	}
	width := min(40, max(m.width-4, 20))
	return styles.Panel{Title: "Keys", Hint: "? to close", Width: width, Focused: true}.Render(strings.Join(lines, "\n"))
}

// rebuildRenderer recreates the markdown renderer for the current width
// and mode, then re-renders the body.
func (m *Model) rebuildRenderer() {
	if m.width == 0 {
		return
	}
	destWidth, _ := panelWidths(m.width)
	wrap := max(destWidth-2, 10)

	r, err := markdown.New(wrap, markdown.StyleFor(m.markdownStyle, m.mode))
	if err != nil {
		log.ErrorErr(log.CatUI, "Creating markdown renderer failed", err)
		m.renderer = nil
	} else {
		m.renderer = r
	}
	m.renderBody()
}

func (m *Model) renderBody() {
	if m.post == nil {
		m.body = ""
		return
	}
	if m.renderer == nil {
		m.body = styles.DescriptionStyle.Render(m.post.Body)
		return
	}
	out, err := m.renderer.Render(m.post.Body)
	if err != nil {
		log.ErrorErr(log.CatUI, "Rendering destination failed", err, "id", m.post.ID)
		m.body = styles.DescriptionStyle.Render(m.post.Body)
		return
	}
	m.body = strings.TrimSpace(out)
}
