// Package geo looks up the user's approximate position.
//
// A Locator gates a Provider behind a permission and maps every failure to
// one of three error kinds with a fixed user-facing message.
package geo

import (
	"fmt"
	"time"
)

// Position is a located point. Accuracy is a radius in meters.
type Position struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Timestamp time.Time

	// Place is a human-readable locality, such as "Lisbon, Portugal", when
	// the provider knows it.
	Place string
}

// String formats p for status lines.
func (p Position) String() string {
	coords := fmt.Sprintf("%.4f, %.4f", p.Latitude, p.Longitude)
	if p.Place == "" {
		return coords
	}
	return p.Place + " (" + coords + ")"
}
