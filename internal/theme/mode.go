// Package theme resolves and persists the light/dark preference.
//
// Resolution order is the explicit choice stored under kv.KeyTheme, then the
// system preference, then Light.
package theme

import "fmt"

// Mode is a theme mode.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts exactly "light" or "dark".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Light, Dark:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid theme mode %q (want light or dark)", s)
	}
}

// Valid reports whether m is Light or Dark.
func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string { return string(m) }
