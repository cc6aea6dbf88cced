// Package presentation renders command results for the non-interactive
// subcommands, either as indented JSON or as plain text.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// bodyWidth is the wrap column for post bodies in text output.
const bodyWidth = 72

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	json   bool
}

// NewFormatter creates a new formatter. asJSON selects JSON output.
func NewFormatter(writer io.Writer, asJSON bool) *Formatter {
	return &Formatter{
		writer: writer,
		json:   asJSON,
	}
}

// FormatPost writes a single destination.
func (f *Formatter) FormatPost(p PostDTO) error {
	if f.json {
		return f.encode(p)
	}
	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	_, err := fmt.Fprintf(f.writer, "#%d %s\n\n%s\n", p.ID, title, wordwrap.String(p.Body, bodyWidth))
	return err
}

// FormatFavorites writes the favorites list, newest first.
func (f *Formatter) FormatFavorites(favs []FavoriteDTO) error {
	if f.json {
		return f.encode(favs)
	}
	if len(favs) == 0 {
		_, err := fmt.Fprintln(f.writer, "No favorites yet.")
		return err
	}
	var b strings.Builder
	for _, fav := range favs {
		fmt.Fprintf(&b, "%5d  %s  %s\n", fav.ID, fav.AddedAt.Local().Format("2006-01-02 15:04"), fav.Title)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatPosition writes a located position.
func (f *Formatter) FormatPosition(p PositionDTO) error {
	if f.json {
		return f.encode(p)
	}
	coords := fmt.Sprintf("%.4f, %.4f (±%.0fm)", p.Latitude, p.Longitude, p.Accuracy)
	if p.Place != "" {
		_, err := fmt.Fprintf(f.writer, "%s\n%s\n", p.Place, coords)
		return err
	}
	_, err := fmt.Fprintln(f.writer, coords)
	return err
}

// FormatTheme writes the effective theme.
func (f *Formatter) FormatTheme(t ThemeDTO) error {
	if f.json {
		return f.encode(t)
	}
	source := "system"
	if t.Explicit {
		source = "chosen"
	}
	_, err := fmt.Fprintf(f.writer, "%s (%s)\n", t.Mode, source)
	return err
}

// FormatMessage writes a one-line confirmation. JSON output wraps it as
// {"message": ...}.
func (f *Formatter) FormatMessage(msg string) error {
	if f.json {
		return f.encode(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(f.writer, msg)
	return err
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
