// Package planid issues time-sortable identifiers for plans, tasks and
// sections. UUIDv7 keeps insertion order roughly monotonic, which keeps
// index pages warm on the id columns.
package planid

import (
	"github.com/google/uuid"
)

// New returns a UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to v4
		// rather than crashing an insert path.
		return uuid.New().String()
	}
	return id.String()
}

// IsValid reports whether the string parses as a UUID.
func IsValid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
