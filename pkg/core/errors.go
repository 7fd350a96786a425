package core

import "errors"

// Common errors.
//
// ErrValidation, ErrNotFound and ErrConflict are deterministic outcomes of
// caller input and are returned for user-facing messaging. ErrStorageUnavailable
// wraps opaque adapter failures; callers may retry or degrade to last-known
// state, the repository does not retry internally.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("name conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrReadOnly           = errors.New("repository is in read-only mode")
)
