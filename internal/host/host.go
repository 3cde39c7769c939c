// Package host defines the boundary between nwkit and the native UI shell.
//
// The shell creates windows, menus, tray icons and shortcuts, and calls back
// into Go through Func references. Everything the rest of the module knows
// about the shell goes through the interfaces in this package. The default
// implementation is chosen by build tags: syscall/js under js/wasm and
// purego everywhere else.
package host

import "errors"

var (
	// ErrNotCallable is returned by Value.Call when the member is not a function.
	ErrNotCallable = errors.New("value is not callable")

	// ErrUnsupported is returned when the shell does not provide a capability.
	ErrUnsupported = errors.New("not supported by host")
)

// MenuType selects the kind of native menu.
type MenuType string

const (
	MenuTypeContextMenu MenuType = "contextmenu"
	MenuTypeMenubar     MenuType = "menubar"
)

// MenuItemType selects the kind of native menu item.
type MenuItemType string

const (
	MenuItemNormal    MenuItemType = "normal"
	MenuItemCheckbox  MenuItemType = "checkbox"
	MenuItemSeparator MenuItemType = "separator"
)

// Func is a host-callable reference to a Go closure. The shell may call it
// any number of times until Release.
type Func interface {
	// Release makes the reference uncallable. Calling Release twice is a no-op.
	Release()
}

// Window is a native window.
type Window interface {
	// SetMenu attaches a menubar to the window.
	SetMenu(menu Menu) error

	// Close closes the window. force skips the close event.
	Close(force bool) error
}

// EventTarget is a DOM node that accepts event listeners.
type EventTarget interface {
	AddEventListener(event string, fn Func) error
	RemoveEventListener(event string, fn Func) error
}

// Menu is a native menu container.
type Menu interface {
	// Append adds item at the end of the menu.
	Append(item MenuItem) error

	// CreateMacBuiltin populates the standard application menus on macOS.
	// Other platforms ignore it.
	CreateMacBuiltin(appName string, opts Options) error

	// Popup shows the menu at the given window coordinates.
	Popup(x, y int) error
}

// MenuItem is a native menu entry.
type MenuItem interface {
	SetLabel(label string) error
	SetEnabled(enabled bool) error
	SetChecked(checked bool) error
}

// Tray is a native tray icon.
type Tray interface {
	SetMenu(menu Menu) error
	SetTooltip(tooltip string) error
	SetTitle(title string) error
	SetIcon(icon string) error

	// On subscribes fn to a tray event such as "click".
	On(event string, fn Func) error

	// Remove takes the icon off the tray.
	Remove() error
}

// Shortcut is a native keyboard shortcut.
type Shortcut interface {
	Key() string
}

// MediaStreamTrack is a live audio or video track.
type MediaStreamTrack interface {
	// Kind reports "audio" or "video".
	Kind() string

	// Stop ends the track. Stopping an ended track does nothing.
	Stop()
}

// MediaStream is a set of live tracks.
type MediaStream interface {
	ID() string

	// GetTracks lists the tracks of the stream. An entry is nil when the
	// shell returned something that is not a track.
	GetTracks() []MediaStreamTrack
}

// Host is the native shell.
type Host interface {
	// NewFunc makes fn callable from the shell until the returned Func is
	// released.
	NewFunc(fn func(Value) error) Func

	// OpenWindow opens url. onOpen, when not nil, receives the new window.
	OpenWindow(url string, opts Options, onOpen Func) error

	// CurrentWindow returns the window the application runs in.
	CurrentWindow() (Window, error)

	// Body returns the document body of the current window.
	Body() (EventTarget, error)

	NewMenu(t MenuType) (Menu, error)
	NewMenuItem(opts Options) (MenuItem, error)
	NewTray(opts Options) (Tray, error)
	NewShortcut(opts Options) (Shortcut, error)

	RegisterGlobalHotKey(s Shortcut) error
	UnregisterGlobalHotKey(s Shortcut) error

	// GetUserMedia requests a media stream. then receives the stream, or a
	// null value when the request fails.
	GetUserMedia(constraints Options, then Func) error

	// Window interprets a payload as a window.
	Window(v Value) (Window, bool)

	// MediaStream interprets a payload as a media stream.
	MediaStream(v Value) (MediaStream, bool)
}
