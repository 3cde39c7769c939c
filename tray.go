package nwkit

import (
	"github.com/agiangrant/nwkit/callback"
	"github.com/agiangrant/nwkit/internal/host"
)

// TrayBuilder configures a tray icon. Methods return a modified copy.
type TrayBuilder struct {
	opts     host.Options
	menu     Menu
	submenus []MenuItem
	tooltip  *string
	onClick  func(MouseEvent) error
}

// NewTray starts a builder for a tray icon.
func NewTray() TrayBuilder {
	return TrayBuilder{opts: host.NewOptions()}
}

// NewTrayFromConfig starts a builder from the tray section of c.
func NewTrayFromConfig(c TrayConfig) TrayBuilder {
	b := NewTray()
	if c.Title != "" {
		b = b.Title(c.Title)
	}
	if c.Tooltip != "" {
		b = b.Tooltip(c.Tooltip)
	}
	if c.Icon != "" {
		b = b.Icon(c.Icon)
	}
	return b
}

func (b TrayBuilder) set(key string, value any) TrayBuilder {
	b.opts = b.opts.Set(key, value)
	return b
}

// Options returns the options collected so far.
func (b TrayBuilder) Options() Options { return b.opts }

func (b TrayBuilder) Title(title string) TrayBuilder { return b.set("title", title) }
func (b TrayBuilder) Icon(path string) TrayBuilder   { return b.set("icon", path) }

// AltIcon is shown while the icon is pressed on macOS.
func (b TrayBuilder) AltIcon(path string) TrayBuilder { return b.set("alticon", path) }

// IconsAreTemplates lets macOS recolor the icons for dark menu bars.
func (b TrayBuilder) IconsAreTemplates(on bool) TrayBuilder {
	return b.set("iconsAreTemplates", on)
}

// Tooltip is set on the tray after it is created.
func (b TrayBuilder) Tooltip(tooltip string) TrayBuilder {
	b = b.set("tooltip", tooltip)
	b.tooltip = &tooltip
	return b
}

// Menu sets the menu shown when the icon is clicked. On Windows and Linux it
// opens on right click.
func (b TrayBuilder) Menu(menu Menu) TrayBuilder {
	b.menu = menu
	b.submenus = nil
	return b
}

// Submenus builds a menu holding items when the tray is built.
func (b TrayBuilder) Submenus(items ...MenuItem) TrayBuilder {
	b.menu = nil
	b.submenus = append([]MenuItem(nil), items...)
	return b
}

// Callback sets the click handler.
func (b TrayBuilder) Callback(fn func(MouseEvent) error) TrayBuilder {
	b.onClick = fn
	return b
}

// Build creates the tray icon and registers its click handler.
func (b TrayBuilder) Build() (Tray, error) {
	a, err := current()
	if err != nil {
		return nil, err
	}
	tray, _, err := b.create(a, true)
	return tray, err
}

// Finalize creates the tray icon and returns the click handler unregistered,
// or nil when none was set.
func (b TrayBuilder) Finalize() (Tray, callback.Invoker, error) {
	a, err := current()
	if err != nil {
		return nil, nil, err
	}
	return b.create(a, false)
}

func (b TrayBuilder) create(a *Application, register bool) (Tray, callback.Invoker, error) {
	var cb callback.Invoker
	if b.onClick != nil {
		cb = callback.New(DecodeMouseEvent, b.onClick)
	}
	onClick := a.bindFunc(cb)

	var tray Tray
	err := a.commit("create tray", register, invokers(cb), func() error {
		menu := b.menu
		if b.submenus != nil {
			m, err := a.host.NewMenu(host.MenuTypeContextMenu)
			if err != nil {
				return err
			}
			for _, it := range b.submenus {
				if err := m.Append(it); err != nil {
					return err
				}
			}
			menu = m
		}

		t, err := a.host.NewTray(b.opts)
		if err != nil {
			return err
		}
		if err := b.wire(t, menu, onClick); err != nil {
			t.Remove()
			return err
		}
		tray = t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return tray, cb, nil
}

func (b TrayBuilder) wire(t Tray, menu Menu, onClick host.Func) error {
	if menu != nil {
		if err := t.SetMenu(menu); err != nil {
			return err
		}
	}
	if b.tooltip != nil {
		if err := t.SetTooltip(*b.tooltip); err != nil {
			return err
		}
	}
	if onClick != nil {
		return t.On("click", onClick)
	}
	return nil
}
