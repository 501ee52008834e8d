// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. For example, ErrAccountExists
// signals a uniqueness violation at registration time, while
// ErrDuplicateReference signals that a payment reference has already
// been credited and must not be credited again.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no document or session.
// Handlers translate this into a 400/404 or a redirect depending on the
// flow.
var ErrNotFound = errors.New("not found")

// ErrAccountExists is returned when registration collides with an
// existing username, email or phone number. Handlers translate this
// into an HTTP 400 response.
var ErrAccountExists = errors.New("account already exists")

// ErrDuplicateReference is returned when a payment reference has
// already been consumed. Handlers must not credit any balance when
// they see this error.
var ErrDuplicateReference = errors.New("payment reference already consumed")
