package repositories

import "errors"

// Sentinel errors shared by the Mongo repositories so handlers can map them
// to HTTP statuses without string matching.
var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("document not found")

	// ErrStatusConflict is returned by conditional status transitions when
	// the document is no longer in the expected state, e.g. two admins
	// moderating the same submission.
	ErrStatusConflict = errors.New("document is not in the expected status")
)
