package favorites

import "fmt"

// PersistError is returned when a mutation could not be written to the
// store. Subscribers are not notified and the stored collection is
// unchanged.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("favorites: %s: persisting collection: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
