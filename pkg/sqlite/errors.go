package sqlite

import "errors"

// Storage error kinds. Callers match them with errors.Is; the wrapped
// message carries the operation and the engine error.
var (
	// ErrStorageInit means the database directory or file could not be prepared.
	ErrStorageInit = errors.New("storage init error")
	// ErrStorageUnavailable means the handle is not open (never opened or already closed).
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageRead        = errors.New("storage read error")
	ErrStorageWrite       = errors.New("storage write error")
)
