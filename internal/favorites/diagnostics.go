package favorites

import "github.com/zjrosen/wayfarer/internal/log"

// Diagnostics receives failures the registry does not return to callers,
// such as a corrupt stored collection.
type Diagnostics interface {
	Report(op string, err error)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(op string, err error)

func (f DiagnosticsFunc) Report(op string, err error) { f(op, err) }

type logDiagnostics struct{}

func (logDiagnostics) Report(op string, err error) {
	log.ErrorErr(log.CatFavs, "favorites "+op+" failed", err)
}
