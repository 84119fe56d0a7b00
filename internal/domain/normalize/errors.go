package normalize

import (
	"errors"
	"fmt"
)

// Sentinel kinds for normalization errors.
var (
	ErrSchema        = errors.New("source table schema mismatch")
	ErrDuplicateYear = errors.New("duplicate final year")
)

// SchemaError reports a table narrower than the fixed schema.
type SchemaError struct {
	Columns int
	Want    int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source table has %d columns, want at least %d", e.Columns, e.Want)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// DuplicateYearError reports a repeated year under the reject policy.
type DuplicateYearError struct {
	Year int
}

func (e *DuplicateYearError) Error() string {
	return fmt.Sprintf("year %d appears more than once", e.Year)
}

func (e *DuplicateYearError) Unwrap() error { return ErrDuplicateYear }
