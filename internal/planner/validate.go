package planner

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidTitle rejects entries whose title is empty after trimming.
	ErrInvalidTitle = errors.New("planner: title must not be empty")

	// ErrInvalidDateRange rejects entries whose start is after their end.
	ErrInvalidDateRange = errors.New("planner: start must not be after end")

	// ErrNotFound is returned by updates and deletes naming an unknown ID.
	ErrNotFound = errors.New("planner: not found")

	// ErrParentCycle rejects a parent reference that would make an entry
	// its own ancestor.
	ErrParentCycle = errors.New("planner: parent reference forms a cycle")
)

// Validate checks the two invariants enforced before any store mutation.
func Validate(e Entry) error {
	if e.Start.After(e.End) {
		return ErrInvalidDateRange
	}
	if strings.TrimSpace(e.Title) == "" {
		return ErrInvalidTitle
	}
	return nil
}

// Conflicts reports whether two entries collide: they fall on the same
// calendar day and their open time intervals overlap. Back-to-back
// entries, where one ends exactly when the other starts, do not conflict.
// The check is symmetric.
func Conflicts(a, b Entry) bool {
	if !sameDay(a.Start, b.Start) {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
