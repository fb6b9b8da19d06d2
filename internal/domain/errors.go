package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for business logic failures that cross the storage boundary; the
// handler layer maps each onto an HTTP status.
var (
	ErrUserAlreadyExists = errors.New("user with this uid already exists")
)
