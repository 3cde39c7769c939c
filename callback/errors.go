package callback

import (
	"errors"
	"fmt"

	"github.com/agiangrant/nwkit/internal/guard"
)

var (
	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("decode failure")

	// ErrLockPoisoned is returned by Map after a panic inside its critical
	// section.
	ErrLockPoisoned = guard.ErrPoisoned
)

// DecodeError reports a payload the callback could not interpret.
type DecodeError struct {
	ID  ID
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("callback %s: decode payload: %v", e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
