package nwkit

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agiangrant/nwkit/callback"
	"github.com/agiangrant/nwkit/internal/host"
	"github.com/agiangrant/nwkit/internal/host/memhost"
)

func newTestApp(t *testing.T) (*Application, *memhost.Host) {
	t.Helper()

	h := memhost.New()
	logger := zerolog.Nop()
	a, err := Initialize(WithHost(h), WithLogger(&logger))
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { app.Store(nil) })
	return a, h
}

func callbackCount(t *testing.T, a *Application) int {
	t.Helper()
	n, err := a.Callbacks().Len()
	if err != nil {
		t.Fatalf("Len() error = %v", err)
	}
	return n
}

func TestCurrentBeforeAndAfterInitialize(t *testing.T) {
	app.Store(nil)
	if Current() != nil {
		t.Fatalf("Current() before Initialize = %v, want nil", Current())
	}

	a, _ := newTestApp(t)
	for i := 0; i < 3; i++ {
		if got := Current(); got != a {
			t.Errorf("Current() = %p, want %p", got, a)
		}
	}
}

func TestInitializeDefaultHostFailure(t *testing.T) {
	app.Store(nil)
	prev := defaultHost
	defaultHost = func() (host.Host, error) { return nil, errors.New("no shell library") }
	t.Cleanup(func() { defaultHost = prev })

	logger := zerolog.Nop()
	_, err := Initialize(WithLogger(&logger))
	if !errors.Is(err, ErrHostRejected) {
		t.Fatalf("Initialize() error = %v, want ErrHostRejected", err)
	}
	if Current() != nil {
		t.Errorf("failed Initialize published an application")
	}
}

func TestInitializeWithConfig(t *testing.T) {
	app.Store(nil)
	t.Cleanup(func() { app.Store(nil) })

	cfg := DefaultConfig()
	cfg.App.Name = "Notes"
	a, err := Initialize(WithHost(memhost.New()), WithConfig(cfg))
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if a.Config().App.Name != "Notes" {
		t.Errorf("Config().App.Name = %q, want Notes", a.Config().App.Name)
	}
	if a.Logger() == nil {
		t.Errorf("Logger() = nil")
	}
}

func TestReinitializeKeepsPreviousCallbacks(t *testing.T) {
	first, h := newTestApp(t)

	clicks := 0
	tray, err := NewTray().Callback(func(MouseEvent) error {
		clicks++
		return nil
	}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	logger := zerolog.Nop()
	second, err := Initialize(WithHost(h), WithLogger(&logger))
	if err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}

	if Current() != second {
		t.Errorf("Current() is not the new application")
	}
	if n := callbackCount(t, first); n != 1 {
		t.Errorf("previous application has %d callbacks, want 1", n)
	}
	if n := callbackCount(t, second); n != 0 {
		t.Errorf("new application has %d callbacks, want 0", n)
	}

	ev := host.ValueOf(map[string]any{"x": 1, "y": 2})
	if err := tray.(*memhost.Tray).Emit("click", ev); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestRegisterAndRemoveCallback(t *testing.T) {
	a, h := newTestApp(t)

	_, cb, err := NewMenuItem().Label("Quit").Callback(func(Value) error { return nil }).Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if n := callbackCount(t, a); n != 0 {
		t.Fatalf("Finalize registered %d callbacks", n)
	}

	if err := a.Register(cb, nil); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if n := callbackCount(t, a); n != 1 {
		t.Errorf("after Register Len() = %d, want 1", n)
	}

	ok, err := a.RemoveCallback(cb.ID())
	if err != nil || !ok {
		t.Fatalf("RemoveCallback() = %v, %v", ok, err)
	}
	if h.LiveFuncs() != 0 {
		t.Errorf("LiveFuncs() = %d after remove, want 0", h.LiveFuncs())
	}

	ok, err = a.RemoveCallback(cb.ID())
	if err != nil || ok {
		t.Errorf("second RemoveCallback() = %v, %v, want false, nil", ok, err)
	}
}

// brokenID poisons the registry when it is inserted.
type brokenID struct {
	callback.Invoker
}

func (brokenID) ID() callback.ID {
	panic("no id")
}

func TestRegisterRollsBack(t *testing.T) {
	a, h := newTestApp(t)

	_, good, err := NewMenuItem().Label("A").Callback(func(Value) error { return nil }).Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	bad := brokenID{callback.New(callback.Raw, func(Value) error { return nil })}

	if err := a.Register(good, bad); !errors.Is(err, ErrLockPoisoned) {
		t.Fatalf("Register() error = %v, want ErrLockPoisoned", err)
	}
	if h.LiveFuncs() != 0 {
		t.Errorf("LiveFuncs() = %d after failed Register, want 0", h.LiveFuncs())
	}
	if good.(*callback.Callback[Value]).Bound() {
		t.Errorf("callback still bound after failed Register")
	}
}

func TestBuildersBeforeInitialize(t *testing.T) {
	app.Store(nil)
	nop := func(Value) error { return nil }

	tests := []struct {
		name  string
		build func() error
	}{
		{"window", func() error {
			return NewWindow("index.html").Callback(func(Window) error { return nil }).Build()
		}},
		{"window finalize", func() error {
			_, err := NewWindow("index.html").Finalize()
			return err
		}},
		{"menu item", func() error {
			_, err := NewMenuItem().Label("A").Callback(nop).Build()
			return err
		}},
		{"menu item finalize", func() error {
			_, _, err := NewMenuItem().Label("A").Finalize()
			return err
		}},
		{"separator", func() error {
			_, err := MenuSeparator()
			return err
		}},
		{"menubar", func() error {
			_, err := NewMenubar("App").Build(true)
			return err
		}},
		{"tray", func() error {
			_, err := NewTray().Callback(func(MouseEvent) error { return nil }).Build()
			return err
		}},
		{"shortcut", func() error {
			_, err := NewShortcut().Key("Ctrl+K").Active(nop).Build()
			return err
		}},
		{"shortcut finalize", func() error {
			_, _, _, err := NewShortcut().Key("Ctrl+K").Finalize()
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.build(); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("error = %v, want ErrNotInitialized", err)
			}
			if Current() != nil {
				t.Errorf("builder initialized the application")
			}
		})
	}
}

func TestHostRejectionRollsBack(t *testing.T) {
	nop := func(Value) error { return nil }

	tests := []struct {
		name  string
		op    string
		build func() error
	}{
		{"window", memhost.OpOpenWindow, func() error {
			return NewWindow("index.html").Callback(func(Window) error { return nil }).Build()
		}},
		{"menu item", memhost.OpNewMenuItem, func() error {
			_, err := NewMenuItem().Callback(nop).Build()
			return err
		}},
		{"tray", memhost.OpNewTray, func() error {
			_, err := NewTray().Callback(func(MouseEvent) error { return nil }).Build()
			return err
		}},
		{"shortcut", memhost.OpNewShortcut, func() error {
			_, err := NewShortcut().Active(nop).Failed(func(string) error { return nil }).Build()
			return err
		}},
		{"global shortcut", memhost.OpRegisterKey, func() error {
			_, err := NewShortcut().Key("Ctrl+K").Active(nop).Global(true).Build()
			return err
		}},
		{"context menu listener", memhost.OpAddListener, func() error {
			_, err := Current().OnContextMenu(func(MouseEvent) error { return nil })
			return err
		}},
		{"user media", memhost.OpGetUserMedia, func() error {
			return Current().GetUserMedia(NewVideoConstraints(), nil, func(MediaStream) {})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, h := newTestApp(t)
			h.Reject(tt.op, errors.New("denied"))

			err := tt.build()
			if !errors.Is(err, ErrHostRejected) {
				t.Fatalf("error = %v, want ErrHostRejected", err)
			}
			var herr *HostError
			if !errors.As(err, &herr) || herr.Op == "" {
				t.Errorf("error = %#v, want *HostError with an op", err)
			}
			if n := callbackCount(t, a); n != 0 {
				t.Errorf("registry holds %d callbacks after rejection", n)
			}
			if h.LiveFuncs() != 0 {
				t.Errorf("LiveFuncs() = %d after rejection, want 0", h.LiveFuncs())
			}
		})
	}
}

func TestPoisonedMediaSlot(t *testing.T) {
	a, _ := newTestApp(t)
	a.mediaMu.Do(func() { panic("corrupt") })

	if err := a.SetMediaStream(nil); !errors.Is(err, ErrLockPoisoned) {
		t.Errorf("SetMediaStream() error = %v, want ErrLockPoisoned", err)
	}
	if _, err := a.StopMediaStream(TrackAll, nil); !errors.Is(err, ErrLockPoisoned) {
		t.Errorf("StopMediaStream() error = %v, want ErrLockPoisoned", err)
	}
}
