package guard

import (
	"errors"
	"testing"
)

func TestMutexDo(t *testing.T) {
	var m Mutex
	count := 0

	for i := 0; i < 3; i++ {
		if err := m.Do(func() { count++ }); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
	}

	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if m.Poisoned() {
		t.Error("mutex should not be poisoned")
	}
}

func TestMutexPoisonedByPanic(t *testing.T) {
	var m Mutex

	err := m.Do(func() { panic("boom") })
	if !errors.Is(err, ErrPoisoned) {
		t.Fatalf("Do() error = %v, want ErrPoisoned", err)
	}
	if !m.Poisoned() {
		t.Fatal("expected mutex to be poisoned")
	}

	ran := false
	err = m.Do(func() { ran = true })
	if !errors.Is(err, ErrPoisoned) {
		t.Errorf("Do() after poison error = %v, want ErrPoisoned", err)
	}
	if ran {
		t.Error("fn must not run on a poisoned mutex")
	}
}
