package repository

import (
	"errors"
	"strings"
)

// Sentinel errors surfaced by repositories so services can map them to the
// right response without inspecting driver errors.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoActiveOrder     = errors.New("no active order for table")
)

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "SQLSTATE 23505")
}

// IsForeignKeyViolation reports whether err is a foreign-key violation.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "foreign key") || strings.Contains(msg, "SQLSTATE 23503")
}
