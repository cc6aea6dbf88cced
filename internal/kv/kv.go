// Package kv defines the synchronous string-keyed store that backs
// favorites and the theme preference.
package kv

import "errors"

// Keys used by wayfarer.
const (
	KeyFavorites = "favorites"
	KeyTheme     = "theme"
)

// ErrQuotaExceeded is returned by Set when the value does not fit the
// store's quota.
var ErrQuotaExceeded = errors.New("kv: quota exceeded")

// Store is a synchronous key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}
