package probe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnhealthy is returned when the dashboard does not answer /healthz.
	ErrUnhealthy = errors.New("dashboard unhealthy")
	// ErrVerification is returned when any invariant or lookup check fails.
	ErrVerification = errors.New("verification failed")
)

// VerificationError lists every failed check.
type VerificationError struct {
	Failures []string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%d check(s) failed: %s", len(e.Failures), strings.Join(e.Failures, "; "))
}

func (e *VerificationError) Unwrap() error { return ErrVerification }
