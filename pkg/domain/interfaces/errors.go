package interfaces

import "errors"

// ErrNotFound is returned by any Repository implementation when a record
// does not exist. Callers distinguish it from store unavailability with
// errors.Is.
var ErrNotFound = errors.New("record not found")
