package geo

import "time"

// Options tune one Locate call.
type Options struct {
	HighAccuracy bool
	// MaximumAge accepts a cached position at most this old. Zero always
	// queries the provider.
	MaximumAge time.Duration
	// Timeout bounds the provider call. The permission prompt is not
	// included. Zero means no limit beyond the caller's context.
	Timeout time.Duration
}

// DefaultOptions is high accuracy, no cache, 10 second timeout.
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		MaximumAge:   0,
		Timeout:      10 * time.Second,
	}
}

// Option overrides a default.
type Option func(*Options)

func WithHighAccuracy(enabled bool) Option {
	return func(o *Options) { o.HighAccuracy = enabled }
}

func WithMaximumAge(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.MaximumAge = d
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}
