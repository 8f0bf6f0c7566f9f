package models

import "fmt"

// MissingFieldError reports that a record lacks data an operation needs
type MissingFieldError struct {
	Record string
	Field  string
	ID     int64
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s %d: missing %s", e.Record, e.ID, e.Field)
}
