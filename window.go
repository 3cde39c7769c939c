package nwkit

import (
	"github.com/agiangrant/nwkit/callback"
	"github.com/agiangrant/nwkit/internal/host"
)

// WindowBuilder configures a window to open. Methods return a modified copy.
type WindowBuilder struct {
	url    string
	opts   host.Options
	onOpen func(Window) error
}

// NewWindow starts a builder for a window showing url.
func NewWindow(url string) WindowBuilder {
	return WindowBuilder{url: url, opts: host.NewOptions()}
}

// NewWindowFromConfig starts a builder from the window section of c.
func NewWindowFromConfig(c WindowConfig) WindowBuilder {
	b := NewWindow(c.URL)
	if c.Title != "" {
		b = b.Title(c.Title)
	}
	if c.Width > 0 {
		b = b.Width(c.Width)
	}
	if c.Height > 0 {
		b = b.Height(c.Height)
	}
	return b
}

func (b WindowBuilder) set(key string, value any) WindowBuilder {
	b.opts = b.opts.Set(key, value)
	return b
}

// URL returns the page the window will show.
func (b WindowBuilder) URL() string { return b.url }

// Options returns the options collected so far.
func (b WindowBuilder) Options() Options { return b.opts }

func (b WindowBuilder) Title(title string) WindowBuilder { return b.set("title", title) }
func (b WindowBuilder) Width(width int) WindowBuilder    { return b.set("width", width) }
func (b WindowBuilder) Height(height int) WindowBuilder  { return b.set("height", height) }
func (b WindowBuilder) MinWidth(w int) WindowBuilder     { return b.set("min_width", w) }
func (b WindowBuilder) MinHeight(h int) WindowBuilder    { return b.set("min_height", h) }
func (b WindowBuilder) MaxWidth(w int) WindowBuilder     { return b.set("max_width", w) }
func (b WindowBuilder) MaxHeight(h int) WindowBuilder    { return b.set("max_height", h) }

// Position places the window at x, y.
func (b WindowBuilder) Position(x, y int) WindowBuilder {
	return b.set("x", x).set("y", y)
}

// Center opens the window in the middle of the screen.
func (b WindowBuilder) Center() WindowBuilder { return b.set("position", "center") }

// AtMouse opens the window at the mouse position.
func (b WindowBuilder) AtMouse() WindowBuilder { return b.set("position", "mouse") }

func (b WindowBuilder) Frame(frame bool) WindowBuilder         { return b.set("frame", frame) }
func (b WindowBuilder) Resizable(resizable bool) WindowBuilder { return b.set("resizable", resizable) }
func (b WindowBuilder) AlwaysOnTop(on bool) WindowBuilder      { return b.set("always_on_top", on) }
func (b WindowBuilder) Show(show bool) WindowBuilder           { return b.set("show", show) }
func (b WindowBuilder) ShowInTaskbar(show bool) WindowBuilder  { return b.set("show_in_taskbar", show) }
func (b WindowBuilder) Fullscreen(on bool) WindowBuilder       { return b.set("fullscreen", on) }
func (b WindowBuilder) Kiosk(on bool) WindowBuilder            { return b.set("kiosk", on) }
func (b WindowBuilder) Transparent(on bool) WindowBuilder      { return b.set("transparent", on) }
func (b WindowBuilder) Icon(path string) WindowBuilder         { return b.set("icon", path) }

// ID lets the shell remember the window size and position across runs.
func (b WindowBuilder) ID(id string) WindowBuilder { return b.set("id", id) }

// NewInstance opens the window in a separate renderer process.
func (b WindowBuilder) NewInstance(on bool) WindowBuilder { return b.set("new_instance", on) }

// InjectJSStart runs the script before any page script.
func (b WindowBuilder) InjectJSStart(path string) WindowBuilder {
	return b.set("inject_js_start", path)
}

// InjectJSEnd runs the script after the page has loaded.
func (b WindowBuilder) InjectJSEnd(path string) WindowBuilder {
	return b.set("inject_js_end", path)
}

// Callback sets the handler that receives the window once it is open.
func (b WindowBuilder) Callback(fn func(Window) error) WindowBuilder {
	b.onOpen = fn
	return b
}

func (b WindowBuilder) callback(a *Application) callback.Invoker {
	if b.onOpen == nil {
		return nil
	}
	return callback.New(windowDecoder(a.host), b.onOpen)
}

// Build opens the window and registers its callback.
func (b WindowBuilder) Build() error {
	a, err := current()
	if err != nil {
		return err
	}
	_, err = b.open(a, true)
	return err
}

// Finalize opens the window and returns its callback unregistered, or nil
// when none was set. Pass it to Application.Register to keep it alive.
func (b WindowBuilder) Finalize() (callback.Invoker, error) {
	a, err := current()
	if err != nil {
		return nil, err
	}
	return b.open(a, false)
}

func (b WindowBuilder) open(a *Application, register bool) (callback.Invoker, error) {
	cb := b.callback(a)
	onOpen := a.bindFunc(cb)

	err := a.commit("open window", register, invokers(cb), func() error {
		return a.host.OpenWindow(b.url, b.opts, onOpen)
	})
	if err != nil {
		return nil, err
	}
	return cb, nil
}

// CreateWindow opens url without a callback.
func (a *Application) CreateWindow(url string, opts Options) error {
	return a.commit("open window", false, nil, func() error {
		return a.host.OpenWindow(url, opts, nil)
	})
}

// CreateWindowWithCallback opens url and registers fn to receive the window.
func (a *Application) CreateWindowWithCallback(url string, opts Options, fn func(Window) error) error {
	b := WindowBuilder{url: url, opts: opts, onOpen: fn}
	_, err := b.open(a, true)
	return err
}
