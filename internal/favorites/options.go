package favorites

import "time"

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides time.Now for favorite timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithDiagnostics sets the sink for failures that are not returned to the
// caller. Defaults to the favs log category.
func WithDiagnostics(d Diagnostics) Option {
	return func(r *Registry) {
		if d != nil {
			r.diag = d
		}
	}
}

// WithNotifyOnNoopRemove controls whether Remove of an absent id still
// rewrites the collection and notifies subscribers. Defaults to true.
func WithNotifyOnNoopRemove(notify bool) Option {
	return func(r *Registry) {
		r.notifyNoopRemove = notify
	}
}

// WithKey overrides the store key. Defaults to kv.KeyFavorites.
func WithKey(key string) Option {
	return func(r *Registry) {
		if key != "" {
			r.key = key
		}
	}
}
