package database

import (
	"errors"
	"fmt"
	"strings"
)

// Common database errors that can be checked using errors.Is()
var (
	// ErrInvalidInput is returned when invalid input is provided to a method.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrQueryFailed is returned when a query execution fails.
	ErrQueryFailed = errors.New("query execution failed")
)

// DBError represents a database error with additional context.
type DBError struct {
	err     error
	context string
}

// NewDBError creates a new DBError with the given error and context.
// The context should describe what operation was being performed.
func NewDBError(err error, context string) *DBError {
	return &DBError{err: err, context: context}
}

// Error returns the error message.
func (e *DBError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.context, e.err)
	}
	return e.context
}

// Unwrap returns the underlying error.
func (e *DBError) Unwrap() error {
	return e.err
}

// isUniqueIndexViolation reports whether the error came from SurrealDB
// rejecting a write because a unique index already contains the key.
// The driver surfaces this only as message text, e.g.
// "Database index `conversation_key` already contains ...".
func isUniqueIndexViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already contains")
}
