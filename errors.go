package nwkit

import (
	"errors"
	"fmt"

	"github.com/agiangrant/nwkit/callback"
)

var (
	// ErrNotInitialized is returned when the Application is used before
	// Initialize.
	ErrNotInitialized = errors.New("nwkit: application not initialized")

	// ErrLockPoisoned is returned when a guarded structure panicked earlier.
	ErrLockPoisoned = callback.ErrLockPoisoned

	// ErrHostRejected is matched by every *HostError.
	ErrHostRejected = errors.New("nwkit: host rejected request")

	// ErrDecode is matched by callback decode failures.
	ErrDecode = callback.ErrDecode
)

// HostError reports a request the native shell refused.
type HostError struct {
	Op  string
	Err error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("nwkit: %s: %v", e.Op, e.Err)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

func (e *HostError) Is(target error) bool {
	return target == ErrHostRejected
}

func hostError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &HostError{Op: op, Err: err}
}
