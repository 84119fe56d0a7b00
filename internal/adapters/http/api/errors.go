package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// OpError tags an error with the handler operation that produced it.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *OpError) Unwrap() error { return e.Err }

// Wrap annotates err with op. It returns nil for a nil err.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// NewKind builds an error of kind with a detail message.
func NewKind(op string, kind error, detail string) error {
	return &OpError{Op: op, Err: fmt.Errorf("%w: %s", kind, detail)}
}
