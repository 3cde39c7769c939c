package callback

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/agiangrant/nwkit/internal/host"
)

func newNop() *Callback[struct{}] {
	return NewWithoutResult(Ignore, func(struct{}) {})
}

func TestMapLiveness(t *testing.T) {
	var m Map
	rng := rand.New(rand.NewSource(1))

	live := make(map[ID]bool)
	var all []ID

	for step := 0; step < 500; step++ {
		if len(all) == 0 || rng.Intn(3) > 0 {
			id, err := m.Insert(newNop())
			if err != nil {
				t.Fatalf("Insert() error = %v", err)
			}
			live[id] = true
			all = append(all, id)
			continue
		}

		id := all[rng.Intn(len(all))]
		_, ok, err := m.Remove(id)
		if err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if ok != live[id] {
			t.Fatalf("Remove(%s) found = %v, want %v", id, ok, live[id])
		}
		delete(live, id)
	}

	for _, id := range all {
		_, ok, err := m.Get(id)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok != live[id] {
			t.Errorf("Get(%s) found = %v, want %v", id, ok, live[id])
		}
	}

	n, _ := m.Len()
	if n != len(live) {
		t.Errorf("Len() = %d, want %d", n, len(live))
	}
	ids, _ := m.IDs()
	if len(ids) != len(live) {
		t.Errorf("IDs() has %d entries, want %d", len(ids), len(live))
	}
}

func TestMapRemoveTwice(t *testing.T) {
	var m Map
	cb := newNop()
	id, _ := m.Insert(cb)

	got, ok, err := m.Remove(id)
	if err != nil || !ok || got != Invoker(cb) {
		t.Fatalf("first Remove() = %v, %v, %v", got, ok, err)
	}

	got, ok, err = m.Remove(id)
	if err != nil {
		t.Fatalf("second Remove() error = %v", err)
	}
	if ok || got != nil {
		t.Errorf("second Remove() = %v, %v, want nil, false", got, ok)
	}
}

func TestMapZeroValue(t *testing.T) {
	var m Map
	if _, ok, err := m.Remove(NewID()); ok || err != nil {
		t.Errorf("Remove() on empty map = %v, %v", ok, err)
	}
	if n, err := m.Len(); n != 0 || err != nil {
		t.Errorf("Len() = %d, %v", n, err)
	}
}

func TestMapInvoke(t *testing.T) {
	var m Map
	calls := 0
	id, _ := m.Insert(New(Raw, func(host.Value) error {
		calls++
		return nil
	}))

	for i := 0; i < 3; i++ {
		if ok, err := m.Invoke(id, host.Null); !ok || err != nil {
			t.Fatalf("Invoke() = %v, %v", ok, err)
		}
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	m.Remove(id)
	if ok, err := m.Invoke(id, host.Null); ok || err != nil {
		t.Errorf("Invoke() after remove = %v, %v", ok, err)
	}
}

func TestMapCallbackCanRemoveItself(t *testing.T) {
	var m Map
	var id ID
	cb := New(Raw, func(host.Value) error {
		_, _, err := m.Remove(id)
		return err
	})
	id, _ = m.Insert(cb)

	if _, err := m.Invoke(id, host.Null); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if n, _ := m.Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestMapConcurrent(t *testing.T) {
	var m Map
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id, err := m.Insert(newNop())
				if err != nil {
					t.Errorf("Insert() error = %v", err)
					return
				}
				if _, ok, _ := m.Remove(id); !ok {
					t.Errorf("Remove(%s) not found", id)
				}
			}
		}()
	}
	wg.Wait()

	if n, _ := m.Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestMapPoisoned(t *testing.T) {
	var m Map
	id, _ := m.Insert(newNop())

	m.mu.Do(func() { panic("corrupt") })

	if _, err := m.Insert(newNop()); !errors.Is(err, ErrLockPoisoned) {
		t.Errorf("Insert() error = %v, want ErrLockPoisoned", err)
	}
	if _, _, err := m.Remove(id); !errors.Is(err, ErrLockPoisoned) {
		t.Errorf("Remove() error = %v, want ErrLockPoisoned", err)
	}
	if _, err := m.IDs(); !errors.Is(err, ErrLockPoisoned) {
		t.Errorf("IDs() error = %v, want ErrLockPoisoned", err)
	}
}

// badID panics when the map asks for its ID.
type badID struct {
	Invoker
}

func (badID) ID() ID {
	panic("no id")
}

func TestMapInsertAll(t *testing.T) {
	var m Map
	a, b := newNop(), newNop()

	ids, err := m.InsertAll(a, b)
	if err != nil {
		t.Fatalf("InsertAll() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != a.ID() || ids[1] != b.ID() {
		t.Errorf("InsertAll() ids = %v", ids)
	}
	if n, _ := m.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
}

func TestMapInsertAllIsAtomic(t *testing.T) {
	var m Map
	kept := newNop()
	m.Insert(kept)

	_, err := m.InsertAll(newNop(), badID{newNop()}, newNop())
	if !errors.Is(err, ErrLockPoisoned) {
		t.Fatalf("InsertAll() error = %v, want ErrLockPoisoned", err)
	}
	if len(m.m) != 1 || m.m[kept.ID()] == nil {
		t.Errorf("failed batch changed the map: %d entries", len(m.m))
	}
}
