// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the explorer.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Destinations
	Next     key.Binding
	Open     key.Binding
	Favorite key.Binding
	Remove   key.Binding
	Clear    key.Binding

	// Theme and location
	ToggleTheme key.Binding
	FollowTheme key.Binding
	Locate      key.Binding

	// General
	ToggleStatus key.Binding
	Logs         key.Binding
	Help         key.Binding
	Escape       key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),

		Next: key.NewBinding(
			key.WithKeys("n", " "),
			key.WithHelp("n/space", "new destination"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open by id"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "add to favorites"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "remove favorite"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear favorites"),
		),

		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		FollowTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "follow system theme"),
		),
		Locate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "locate me"),
		),

		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "debug logs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Favorite, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},                                     // Navigation
		{k.Next, k.Open, k.Favorite, k.Remove, k.Clear},    // Destinations
		{k.ToggleTheme, k.FollowTheme, k.Locate},           // Theme and location
		{k.ToggleStatus, k.Logs, k.Help, k.Escape, k.Quit}, // General
	}
}

// All returns every binding, for conflict checks.
func (k KeyMap) All() []key.Binding {
	var all []key.Binding
	for _, group := range k.FullHelp() {
		all = append(all, group...)
	}
	return all
}
