package memory

import "github.com/mweegram/tickful/pkg/domain/interfaces"

// ErrNotFound is returned when a record does not exist in the store
var ErrNotFound = interfaces.ErrNotFound
