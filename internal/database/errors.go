package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a single-row lookup matches nothing
var ErrNotFound = errors.New("record not found")

// ReferentialIntegrityError reports a foreign-key violation: an insert or
// update referencing a missing row, or a delete of a row still referenced.
type ReferentialIntegrityError struct {
	Err error
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("referential integrity violation: %v", e.Err)
}

func (e *ReferentialIntegrityError) Unwrap() error {
	return e.Err
}

// ConnectionError reports that the store could not be reached at startup
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s database: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// translateError maps driver errors onto the package's error kinds
func translateError(dialect Dialect, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case dialect.IsForeignKeyViolation(err):
		return &ReferentialIntegrityError{Err: err}
	default:
		return err
	}
}
