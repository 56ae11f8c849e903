package store

import "errors"

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would violate an invariant,
// such as promoting a second user to admin.
var ErrConflict = errors.New("conflict")
