package models

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an unknown request/user id. No side effects occurred.
var ErrNotFound = errors.New("not found")

// ValidationError aborts an action before any side effect occurs
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// CapacityError reports a full author-slot bucket. Capacities come from the
// destination template's fixed column layout.
type CapacityError struct {
	Role     string
	Bucket   string
	Author   string
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("not enough room in the table: %s bucket of role %s is full (%d slots), cannot place author %q",
		e.Bucket, e.Role, e.Capacity, e.Author)
}

// RoleResolutionError reports an author whose full name matches no declared
// role-name list. Every declared author must map to at least one role.
type RoleResolutionError struct {
	Author string
}

func (e *RoleResolutionError) Error() string {
	return fmt.Sprintf("author %q matches no declared role", e.Author)
}
