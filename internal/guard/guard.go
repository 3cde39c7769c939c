// Package guard provides a mutex that reports poisoning as an error.
//
// A panic raised while the lock is held marks the mutex poisoned. The panic
// is recovered and returned to the caller, and every later acquisition fails
// with ErrPoisoned.
package guard

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPoisoned is returned when a previous critical section panicked.
var ErrPoisoned = errors.New("lock poisoned")

// Mutex is a sync.Mutex that remembers panics. The zero value is ready to use.
type Mutex struct {
	mu       sync.Mutex
	poisoned bool
}

// Do runs fn while holding the lock.
func (m *Mutex) Do(fn func()) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.poisoned {
		return ErrPoisoned
	}

	defer func() {
		if r := recover(); r != nil {
			m.poisoned = true
			err = fmt.Errorf("%w: %v", ErrPoisoned, r)
		}
	}()

	fn()
	return nil
}

// Poisoned reports whether a critical section has panicked.
func (m *Mutex) Poisoned() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.poisoned
}
