package memhost

import (
	"fmt"
	"sync"

	"github.com/agiangrant/nwkit/internal/host"
)

// Func is a callable reference created by Host.NewFunc.
type Func struct {
	id       int
	fn       func(host.Value) error
	mu       sync.Mutex
	released bool
	calls    int
}

// Call invokes the Go closure the way the shell would.
func (f *Func) Call(v host.Value) error {
	f.mu.Lock()
	if f.released {
		f.mu.Unlock()
		return ErrReleased
	}
	f.calls++
	f.mu.Unlock()

	if v == nil {
		v = host.Null
	}
	return f.fn(v)
}

// Release implements host.Func.
func (f *Func) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = true
}

// Released reports whether Release was called.
func (f *Func) Released() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}

// Calls returns how many times the shell invoked f.
func (f *Func) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FuncOption returns the Func stored under key, or nil.
func FuncOption(opts host.Options, key string) *Func {
	v, _ := opts.Get(key)
	f, _ := v.(*Func)
	return f
}

// Window is an in-memory window.
type Window struct {
	URL     string
	Options host.Options
	Menu    *Menu
	Closed  bool
	onOpen  *Func
}

// SetMenu implements host.Window.
func (w *Window) SetMenu(menu host.Menu) error {
	m, ok := menu.(*Menu)
	if !ok {
		return fmt.Errorf("set menu: foreign menu %T", menu)
	}
	w.Menu = m
	return nil
}

// Close implements host.Window.
func (w *Window) Close(bool) error {
	w.Closed = true
	return nil
}

// OnOpen returns the callback passed to OpenWindow, or nil.
func (w *Window) OnOpen() *Func {
	return w.onOpen
}

// FireOpen delivers the window to its open callback.
func (w *Window) FireOpen() error {
	if w.onOpen == nil {
		return nil
	}
	return w.onOpen.Call(host.ValueOf(w))
}

// Body is the document body of the current window.
type Body struct {
	host      *Host
	mu        sync.Mutex
	listeners map[string][]*Func
}

// AddEventListener implements host.EventTarget.
func (b *Body) AddEventListener(event string, fn host.Func) error {
	b.host.mu.Lock()
	err := b.host.rejected(OpAddListener)
	b.host.mu.Unlock()
	if err != nil {
		return err
	}

	f, ok := fn.(*Func)
	if !ok {
		return fmt.Errorf("add listener: foreign func %T", fn)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[event] = append(b.listeners[event], f)
	return nil
}

// RemoveEventListener implements host.EventTarget.
func (b *Body) RemoveEventListener(event string, fn host.Func) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.listeners[event]
	for i, f := range list {
		if host.Func(f) == fn {
			b.listeners[event] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	return nil
}

// Listeners counts the listeners attached for event.
func (b *Body) Listeners(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[event])
}

// Dispatch calls every listener of event with v and returns the first error.
func (b *Body) Dispatch(event string, v host.Value) error {
	b.mu.Lock()
	list := append([]*Func(nil), b.listeners[event]...)
	b.mu.Unlock()

	var first error
	for _, f := range list {
		if err := f.Call(v); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Menu is an in-memory menu.
type Menu struct {
	Type       host.MenuType
	Items      []*MenuItem
	MacBuiltin string
	MacOptions host.Options
	Popups     [][2]int
}

// Append implements host.Menu.
func (m *Menu) Append(item host.MenuItem) error {
	it, ok := item.(*MenuItem)
	if !ok {
		return fmt.Errorf("append: foreign menu item %T", item)
	}
	m.Items = append(m.Items, it)
	return nil
}

// CreateMacBuiltin implements host.Menu.
func (m *Menu) CreateMacBuiltin(appName string, opts host.Options) error {
	m.MacBuiltin = appName
	m.MacOptions = opts
	return nil
}

// Popup implements host.Menu.
func (m *Menu) Popup(x, y int) error {
	m.Popups = append(m.Popups, [2]int{x, y})
	return nil
}

// Labels lists the labels of the menu items in order.
func (m *Menu) Labels() []string {
	labels := make([]string, len(m.Items))
	for i, it := range m.Items {
		labels[i] = it.Label
	}
	return labels
}

// MenuItem is an in-memory menu item.
type MenuItem struct {
	Options host.Options
	Label   string
	Enabled bool
	Checked bool
}

// SetLabel implements host.MenuItem.
func (it *MenuItem) SetLabel(label string) error {
	it.Label = label
	return nil
}

// SetEnabled implements host.MenuItem.
func (it *MenuItem) SetEnabled(enabled bool) error {
	it.Enabled = enabled
	return nil
}

// SetChecked implements host.MenuItem.
func (it *MenuItem) SetChecked(checked bool) error {
	it.Checked = checked
	return nil
}

// Click fires the item's click callback.
func (it *MenuItem) Click() error {
	f := FuncOption(it.Options, "click")
	if f == nil {
		return nil
	}
	return f.Call(host.Null)
}

// Tray is an in-memory tray icon.
type Tray struct {
	Options host.Options
	Menu    *Menu
	Tooltip string
	Title   string
	Icon    string
	Removed bool

	// Ops records the setter calls in order.
	Ops []string

	handlers map[string][]*Func
}

// SetMenu implements host.Tray.
func (t *Tray) SetMenu(menu host.Menu) error {
	m, ok := menu.(*Menu)
	if !ok {
		return fmt.Errorf("set menu: foreign menu %T", menu)
	}
	t.Menu = m
	t.Ops = append(t.Ops, "menu")
	return nil
}

// SetTooltip implements host.Tray.
func (t *Tray) SetTooltip(tooltip string) error {
	t.Tooltip = tooltip
	t.Ops = append(t.Ops, "tooltip")
	return nil
}

// SetTitle implements host.Tray.
func (t *Tray) SetTitle(title string) error {
	t.Title = title
	t.Ops = append(t.Ops, "title")
	return nil
}

// SetIcon implements host.Tray.
func (t *Tray) SetIcon(icon string) error {
	t.Icon = icon
	t.Ops = append(t.Ops, "icon")
	return nil
}

// On implements host.Tray.
func (t *Tray) On(event string, fn host.Func) error {
	f, ok := fn.(*Func)
	if !ok {
		return fmt.Errorf("on %s: foreign func %T", event, fn)
	}
	t.handlers[event] = append(t.handlers[event], f)
	t.Ops = append(t.Ops, "on:"+event)
	return nil
}

// Remove implements host.Tray.
func (t *Tray) Remove() error {
	t.Removed = true
	return nil
}

// Emit fires a tray event.
func (t *Tray) Emit(event string, v host.Value) error {
	for _, f := range t.handlers[event] {
		if err := f.Call(v); err != nil {
			return err
		}
	}
	return nil
}

// Shortcut is an in-memory shortcut.
type Shortcut struct {
	Options    host.Options
	Registered bool
	// Unregistered counts UnregisterGlobalHotKey calls.
	Unregistered int
	key          string
}

// Key implements host.Shortcut.
func (s *Shortcut) Key() string {
	return s.key
}

// Activate fires the active callback.
func (s *Shortcut) Activate() error {
	if f := FuncOption(s.Options, "active"); f != nil {
		return f.Call(host.Null)
	}
	return nil
}

// Fail fires the failed callback with msg.
func (s *Shortcut) Fail(msg string) error {
	if f := FuncOption(s.Options, "failed"); f != nil {
		return f.Call(host.ValueOf(msg))
	}
	return nil
}

// UserMediaRequest is a pending GetUserMedia call.
type UserMediaRequest struct {
	Constraints host.Options
	then        *Func
}

// Resolve delivers stream to the request callback. A nil stream delivers null.
func (r *UserMediaRequest) Resolve(stream *Stream) error {
	if r.then == nil {
		return nil
	}
	if stream == nil {
		return r.then.Call(host.Null)
	}
	return r.then.Call(host.ValueOf(stream))
}

// Stream is an in-memory media stream.
type Stream struct {
	id     string
	tracks []host.MediaStreamTrack
}

// NewStream returns a stream holding tracks.
func NewStream(id string, tracks ...host.MediaStreamTrack) *Stream {
	return &Stream{id: id, tracks: tracks}
}

// ID implements host.MediaStream.
func (s *Stream) ID() string {
	return s.id
}

// GetTracks implements host.MediaStream.
func (s *Stream) GetTracks() []host.MediaStreamTrack {
	return append([]host.MediaStreamTrack(nil), s.tracks...)
}

// Track is an in-memory media track.
type Track struct {
	kind    string
	mu      sync.Mutex
	stopped bool
}

// NewTrack returns a live track of kind.
func NewTrack(kind string) *Track {
	return &Track{kind: kind}
}

// Kind implements host.MediaStreamTrack.
func (t *Track) Kind() string {
	return t.kind
}

// Stop implements host.MediaStreamTrack.
func (t *Track) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

// Stopped reports whether the track was stopped.
func (t *Track) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
