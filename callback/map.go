package callback

import (
	"sort"

	"github.com/agiangrant/nwkit/internal/guard"
	"github.com/agiangrant/nwkit/internal/host"
)

// Map is a registry of live callbacks keyed by ID. A callback stays
// reachable from the host until it is removed. The lock is held only while
// the map changes, never while a callback runs. The zero value is ready to
// use.
type Map struct {
	mu guard.Mutex
	m  map[ID]Invoker
}

// Insert registers cb under its ID.
func (m *Map) Insert(cb Invoker) (ID, error) {
	id := cb.ID()
	err := m.mu.Do(func() {
		if m.m == nil {
			m.m = make(map[ID]Invoker)
		}
		m.m[id] = cb
	})
	if err != nil {
		return NilID, err
	}
	return id, nil
}

// InsertAll registers every callback in cbs, or none of them when it fails.
func (m *Map) InsertAll(cbs ...Invoker) ([]ID, error) {
	var ids []ID
	err := m.mu.Do(func() {
		batch := make([]ID, len(cbs))
		for i, cb := range cbs {
			batch[i] = cb.ID()
		}
		if m.m == nil {
			m.m = make(map[ID]Invoker)
		}
		for i, cb := range cbs {
			m.m[batch[i]] = cb
		}
		ids = batch
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Remove unregisters id and returns the callback it held. Removing an
// unknown id reports false and no error.
func (m *Map) Remove(id ID) (Invoker, bool, error) {
	var (
		cb Invoker
		ok bool
	)
	err := m.mu.Do(func() {
		cb, ok = m.m[id]
		delete(m.m, id)
	})
	if err != nil {
		return nil, false, err
	}
	return cb, ok, nil
}

// Get looks up id without removing it.
func (m *Map) Get(id ID) (Invoker, bool, error) {
	var (
		cb Invoker
		ok bool
	)
	err := m.mu.Do(func() {
		cb, ok = m.m[id]
	})
	if err != nil {
		return nil, false, err
	}
	return cb, ok, nil
}

// Len returns the number of registered callbacks.
func (m *Map) Len() (int, error) {
	var n int
	err := m.mu.Do(func() {
		n = len(m.m)
	})
	return n, err
}

// IDs returns a sorted snapshot of the registered IDs.
func (m *Map) IDs() ([]ID, error) {
	var ids []ID
	err := m.mu.Do(func() {
		ids = make([]ID, 0, len(m.m))
		for id := range m.m {
			ids = append(ids, id)
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids, nil
}

// Invoke runs the callback registered under id. An unknown id reports false.
func (m *Map) Invoke(id ID, v host.Value) (bool, error) {
	cb, ok, err := m.Get(id)
	if err != nil || !ok {
		return false, err
	}
	return true, cb.Invoke(v)
}
