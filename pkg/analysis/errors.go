package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientDrivers signals that a session contains fewer
	// drivers than the analysis needs.
	ErrInsufficientDrivers = errors.New("not enough drivers in session")
)

// MissingColumnError signals that the provider data lacks a column the
// analysis depends on.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %s is missing", e.Column)
}
