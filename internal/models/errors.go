package models

import "errors"

// Callers match these with errors.Is; repositories and services wrap them
// with the offending entity and id.
var (
	// ErrValidation reports a missing or malformed required field.
	ErrValidation = errors.New("validation error")
	// ErrNotFound reports an id that does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation, a delete of a referenced
	// record, or a favorite with zero or several targets.
	ErrConflict = errors.New("conflict")
	// ErrReferential reports a foreign key pointing at a missing record.
	ErrReferential = errors.New("referenced record does not exist")
)
