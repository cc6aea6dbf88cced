// Package markdown renders destination bodies for the TUI.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"github.com/zjrosen/wayfarer/internal/theme"
)

// noMarginStyle removes document margins from the base style.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with wayfarer's margins and word wrap.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// StyleFor maps a ui.markdown_style setting and the current theme mode to a
// glamour standard style. "auto" (or empty) follows the mode.
func StyleFor(setting string, mode theme.Mode) string {
	switch setting {
	case styles.DarkStyle, styles.LightStyle:
		return setting
	}
	if mode == theme.Light {
		return styles.LightStyle
	}
	return styles.DarkStyle
}

// New creates a renderer that wraps at width using a glamour standard style
// ("dark" or "light").
func New(width int, style string) (*Renderer, error) {
	if width < 1 {
		width = 1
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Style returns the glamour style name in use.
func (r *Renderer) Style() string {
	return r.style
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
