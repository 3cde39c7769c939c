// Package memhost is an in-process host. It records every object it creates
// and lets callers fire the events a real shell would deliver. Tests and the
// check command run against it.
package memhost

import (
	"errors"
	"fmt"
	"sync"

	"github.com/agiangrant/nwkit/internal/host"
)

// ErrReleased is returned when a released Func is called.
var ErrReleased = errors.New("func released")

// Operations accepted by Host.Reject.
const (
	OpOpenWindow    = "window.open"
	OpNewMenu       = "menu.new"
	OpNewMenuItem   = "menuitem.new"
	OpNewTray       = "tray.new"
	OpNewShortcut   = "shortcut.new"
	OpRegisterKey   = "shortcut.register"
	OpGetUserMedia  = "media.getUserMedia"
	OpAddListener   = "body.addEventListener"
	OpCurrentWindow = "window.get"
)

// Host implements host.Host in memory.
type Host struct {
	mu      sync.Mutex
	funcs   []*Func
	reject  map[string]error
	current *Window
	body    *Body

	windows   []*Window
	menus     []*Menu
	items     []*MenuItem
	trays     []*Tray
	shortcuts []*Shortcut
	requests  []*UserMediaRequest
}

// New returns an empty host with a current window and a document body.
func New() *Host {
	h := &Host{
		reject:  make(map[string]error),
		current: &Window{URL: "index.html"},
	}
	h.body = &Body{host: h, listeners: make(map[string][]*Func)}
	return h
}

// Reject makes op fail with err until cleared with a nil err.
func (h *Host) Reject(op string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err == nil {
		delete(h.reject, op)
		return
	}
	h.reject[op] = err
}

func (h *Host) rejected(op string) error {
	if err, ok := h.reject[op]; ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// NewFunc implements host.Host.
func (h *Host) NewFunc(fn func(host.Value) error) host.Func {
	h.mu.Lock()
	defer h.mu.Unlock()

	f := &Func{id: len(h.funcs) + 1, fn: fn}
	h.funcs = append(h.funcs, f)
	return f
}

// OpenWindow implements host.Host. The new window keeps onOpen; call
// Window.FireOpen to deliver it.
func (h *Host) OpenWindow(url string, opts host.Options, onOpen host.Func) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rejected(OpOpenWindow); err != nil {
		return err
	}

	w := &Window{URL: url, Options: opts}
	w.onOpen, _ = onOpen.(*Func)
	h.windows = append(h.windows, w)
	return nil
}

// CurrentWindow implements host.Host.
func (h *Host) CurrentWindow() (host.Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rejected(OpCurrentWindow); err != nil {
		return nil, err
	}
	return h.current, nil
}

// Body implements host.Host.
func (h *Host) Body() (host.EventTarget, error) {
	return h.body, nil
}

// NewMenu implements host.Host.
func (h *Host) NewMenu(t host.MenuType) (host.Menu, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rejected(OpNewMenu); err != nil {
		return nil, err
	}

	m := &Menu{Type: t}
	h.menus = append(h.menus, m)
	return m, nil
}

// NewMenuItem implements host.Host.
func (h *Host) NewMenuItem(opts host.Options) (host.MenuItem, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rejected(OpNewMenuItem); err != nil {
		return nil, err
	}

	item := &MenuItem{Options: opts, Enabled: true}
	if v, ok := opts.Get("label"); ok {
		item.Label, _ = v.(string)
	}
	if v, ok := opts.Get("enabled"); ok {
		item.Enabled, _ = v.(bool)
	}
	if v, ok := opts.Get("checked"); ok {
		item.Checked, _ = v.(bool)
	}
	h.items = append(h.items, item)
	return item, nil
}

// NewTray implements host.Host.
func (h *Host) NewTray(opts host.Options) (host.Tray, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rejected(OpNewTray); err != nil {
		return nil, err
	}

	t := &Tray{Options: opts, handlers: make(map[string][]*Func)}
	if v, ok := opts.Get("title"); ok {
		t.Title, _ = v.(string)
	}
	if v, ok := opts.Get("icon"); ok {
		t.Icon, _ = v.(string)
	}
	h.trays = append(h.trays, t)
	return t, nil
}

// NewShortcut implements host.Host.
func (h *Host) NewShortcut(opts host.Options) (host.Shortcut, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rejected(OpNewShortcut); err != nil {
		return nil, err
	}

	s := &Shortcut{Options: opts}
	if v, ok := opts.Get("key"); ok {
		s.key, _ = v.(string)
	}
	h.shortcuts = append(h.shortcuts, s)
	return s, nil
}

// RegisterGlobalHotKey implements host.Host.
func (h *Host) RegisterGlobalHotKey(s host.Shortcut) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	sc, ok := s.(*Shortcut)
	if !ok {
		return fmt.Errorf("register: foreign shortcut %T", s)
	}
	if err := h.rejected(OpRegisterKey); err != nil {
		return err
	}
	sc.Registered = true
	return nil
}

// UnregisterGlobalHotKey implements host.Host.
func (h *Host) UnregisterGlobalHotKey(s host.Shortcut) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	sc, ok := s.(*Shortcut)
	if !ok {
		return fmt.Errorf("unregister: foreign shortcut %T", s)
	}
	sc.Registered = false
	sc.Unregistered++
	return nil
}

// GetUserMedia implements host.Host. The request stays pending until
// UserMediaRequest.Resolve.
func (h *Host) GetUserMedia(constraints host.Options, then host.Func) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rejected(OpGetUserMedia); err != nil {
		return err
	}
	f, _ := then.(*Func)
	h.requests = append(h.requests, &UserMediaRequest{Constraints: constraints, then: f})
	return nil
}

// Window implements host.Host.
func (h *Host) Window(v host.Value) (host.Window, bool) {
	w, ok := v.Object().(*Window)
	return w, ok
}

// MediaStream implements host.Host.
func (h *Host) MediaStream(v host.Value) (host.MediaStream, bool) {
	s, ok := v.Object().(*Stream)
	return s, ok
}

// Current returns the window the application runs in.
func (h *Host) Current() *Window {
	return h.current
}

// DocumentBody returns the document body of the current window.
func (h *Host) DocumentBody() *Body {
	return h.body
}

// Windows returns the windows opened so far.
func (h *Host) Windows() []*Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Window(nil), h.windows...)
}

// Menus returns the menus created so far.
func (h *Host) Menus() []*Menu {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Menu(nil), h.menus...)
}

// MenuItems returns the menu items created so far.
func (h *Host) MenuItems() []*MenuItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*MenuItem(nil), h.items...)
}

// Trays returns the tray icons created so far.
func (h *Host) Trays() []*Tray {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Tray(nil), h.trays...)
}

// Shortcuts returns the shortcuts created so far.
func (h *Host) Shortcuts() []*Shortcut {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Shortcut(nil), h.shortcuts...)
}

// UserMediaRequests returns the pending and resolved media requests.
func (h *Host) UserMediaRequests() []*UserMediaRequest {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*UserMediaRequest(nil), h.requests...)
}

// LiveFuncs counts funcs that have not been released.
func (h *Host) LiveFuncs() int {
	h.mu.Lock()
	funcs := append([]*Func(nil), h.funcs...)
	h.mu.Unlock()

	n := 0
	for _, f := range funcs {
		if !f.Released() {
			n++
		}
	}
	return n
}
