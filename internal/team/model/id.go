// Package model provides the Team aggregate, its value objects and domain events.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// ID is an opaque entity identifier. Two IDs are equal iff their string
// representations are equal; the aggregate never inspects the contents.
type ID string

// NewID generates a fresh unique identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID validates an externally supplied identifier.
func ParseID(s string) (ID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrInvalidID
	}
	return ID(trimmed), nil
}

// String returns the string representation of the identifier.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return id == ""
}
