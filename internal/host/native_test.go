//go:build !js

package host

import (
	"runtime"
	"testing"
	"unsafe"
)

// newTestNative builds a Native without a shell library. Requests get no
// reply.
func newTestNative(t *testing.T) *Native {
	t.Helper()

	n := &Native{
		call: func(string) uintptr { return 0 },
		free: func(uintptr) {},
	}
	prev := loaded.Load()
	loaded.Store(n)
	t.Cleanup(func() { loaded.Store(prev) })
	return n
}

func cString(s string) (uintptr, []byte) {
	b := append([]byte(s), 0)
	return uintptr(unsafe.Pointer(&b[0])), b
}

func TestDispatchReachesLoadedNative(t *testing.T) {
	n := newTestNative(t)

	var got []int
	f := n.NewFunc(func(v Value) error {
		got = append(got, v.Get("x").Int())
		return nil
	}).(*nativeFunc)

	payload, buf := cString(`{"x":3}`)
	for i := 0; i < 2; i++ {
		if rc := dispatch(uintptr(f.id), payload); rc != 0 {
			t.Fatalf("dispatch() = %d, want 0", rc)
		}
	}
	runtime.KeepAlive(buf)

	if len(got) != 2 || got[0] != 3 {
		t.Errorf("func got %v, want [3 3]", got)
	}
}

func TestDispatchFollowsLatestLoad(t *testing.T) {
	first := newTestNative(t)
	firstCalls := 0
	ff := first.NewFunc(func(Value) error {
		firstCalls++
		return nil
	}).(*nativeFunc)

	second := newTestNative(t)
	second.nextID.Store(100)
	secondCalls := 0
	sf := second.NewFunc(func(Value) error {
		secondCalls++
		return nil
	}).(*nativeFunc)

	payload, buf := cString(`null`)
	defer runtime.KeepAlive(buf)

	if rc := dispatch(uintptr(sf.id), payload); rc != 0 || secondCalls != 1 {
		t.Errorf("dispatch() to latest = %d, calls %d", rc, secondCalls)
	}
	if rc := dispatch(uintptr(ff.id), payload); rc != 1 || firstCalls != 0 {
		t.Errorf("dispatch() to replaced library = %d, calls %d", rc, firstCalls)
	}
}

func TestDispatchAfterRelease(t *testing.T) {
	n := newTestNative(t)
	calls := 0
	f := n.NewFunc(func(Value) error {
		calls++
		return nil
	}).(*nativeFunc)
	f.Release()
	f.Release()

	payload, buf := cString(`{}`)
	defer runtime.KeepAlive(buf)

	if rc := dispatch(uintptr(f.id), payload); rc != 1 {
		t.Errorf("dispatch() after release = %d, want 1", rc)
	}
	if calls != 0 {
		t.Errorf("released func ran %d times", calls)
	}
}

func TestDispatchWithoutLibrary(t *testing.T) {
	prev := loaded.Load()
	loaded.Store(nil)
	t.Cleanup(func() { loaded.Store(prev) })

	payload, buf := cString(`{}`)
	defer runtime.KeepAlive(buf)

	if rc := dispatch(1, payload); rc != 1 {
		t.Errorf("dispatch() with nothing loaded = %d, want 1", rc)
	}
}
