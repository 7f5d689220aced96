package model

import (
	"fmt"
)

// Status is a type for holding the lifecycle state of a stored record;
// records are never physically erased by default, deletion flips the
// status to StatusDeleted instead.
type Status int

// Constants for Status. The numeric values match the legacy `changed`
// column (1 = active, 3 = deleted), so databases written by earlier
// versions of the service keep working.
const (
	StatusActive  Status = 1
	StatusDeleted Status = 3
)

// String returns the canonical string representation for the status.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Valid reports whether the status is one of the defined constants.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDeleted:
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the status as a JSON string.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte("\"" + s.String() + "\""), nil
}

// UnmarshalJSON decodes the status from a JSON string.
func (s *Status) UnmarshalJSON(b []byte) error {
	// Expect a quoted string
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("status must be a JSON string")
	}
	ps, err := ParseStatus(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*s = ps
	return nil
}

// ParseStatus converts a string to a Status, returning an error for invalid values.
func ParseStatus(v string) (Status, error) {
	switch v {
	case "active":
		return StatusActive, nil
	case "deleted":
		return StatusDeleted, nil
	}
	return 0, fmt.Errorf("invalid status: %s", v)
}
