package geo

import "fmt"

// ErrorKind classifies a failed lookup.
type ErrorKind int

const (
	PermissionDenied ErrorKind = iota + 1
	PositionUnavailable
	Timeout
)

func (k ErrorKind) String() string {
	switch k {
	case PermissionDenied:
		return "permission denied"
	case PositionUnavailable:
		return "position unavailable"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is returned by Locate.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "geo: " + e.Kind.String()
	}
	return fmt.Sprintf("geo: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user for this kind of failure.
func (e *Error) Message() string {
	switch e.Kind {
	case PermissionDenied:
		return "Location access was denied."
	case PositionUnavailable:
		return "Location information is unavailable."
	case Timeout:
		return "The request to get your location timed out."
	default:
		return "An unknown error occurred while getting your location."
	}
}

// Is matches another *Error by Kind, so errors.Is(err, &geo.Error{Kind:
// geo.Timeout}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Err == nil
}
