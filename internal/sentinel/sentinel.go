package sentinel

import "errors"

// Store-level errors. Stores wrap these with context; handlers and services map
// them to domain errors with errors.Is.
var (
	// ErrNotFound means the row does not exist in the caller's tenant.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyUsed means a uniqueness rule rejected the write: a duplicate
	// email, team name, tenant name or a second check-in for the same day.
	ErrAlreadyUsed = errors.New("already used")
)
