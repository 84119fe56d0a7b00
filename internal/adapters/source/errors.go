package source

import (
	"errors"
	"fmt"
)

// Sentinel kinds for fetch errors.
var (
	ErrFetch         = errors.New("source document unreachable")
	ErrTableNotFound = errors.New("source table not found")
)

// FetchError reports a document that could not be retrieved or parsed.
type FetchError struct {
	URL    string
	Status int // HTTP status when the server answered, zero otherwise
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Is makes errors.Is(err, ErrFetch) hold.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

func (e *FetchError) Unwrap() error { return e.Err }

// NotFoundError reports a document without a table matching the marker.
type NotFoundError struct {
	URL    string
	Marker string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no table with header %q in %s", e.Marker, e.URL)
}

func (e *NotFoundError) Unwrap() error { return ErrTableNotFound }
