package nwkit

import (
	"github.com/agiangrant/nwkit/callback"
	"github.com/agiangrant/nwkit/internal/host"
)

// MenuItemBuilder configures a menu item. Methods return a modified copy.
type MenuItemBuilder struct {
	opts    host.Options
	onClick func(Value) error
}

// NewMenuItem starts a builder for a normal menu item.
func NewMenuItem() MenuItemBuilder {
	return MenuItemBuilder{opts: host.NewOptions()}
}

func (b MenuItemBuilder) set(key string, value any) MenuItemBuilder {
	b.opts = b.opts.Set(key, value)
	return b
}

// Options returns the options collected so far.
func (b MenuItemBuilder) Options() Options { return b.opts }

func (b MenuItemBuilder) Type(t MenuItemType) MenuItemBuilder   { return b.set("type", string(t)) }
func (b MenuItemBuilder) Label(label string) MenuItemBuilder    { return b.set("label", label) }
func (b MenuItemBuilder) Icon(icon string) MenuItemBuilder      { return b.set("icon", icon) }
func (b MenuItemBuilder) Tooltip(tip string) MenuItemBuilder    { return b.set("tooltip", tip) }
func (b MenuItemBuilder) Enabled(enabled bool) MenuItemBuilder  { return b.set("enabled", enabled) }
func (b MenuItemBuilder) Checked(checked bool) MenuItemBuilder  { return b.set("checked", checked) }
func (b MenuItemBuilder) Submenu(submenu Menu) MenuItemBuilder  { return b.set("submenu", submenu) }
func (b MenuItemBuilder) Key(key string) MenuItemBuilder        { return b.set("key", key) }
func (b MenuItemBuilder) Modifiers(mods string) MenuItemBuilder { return b.set("modifiers", mods) }

// Submenus builds a context menu holding items and uses it as the submenu.
// The menu is created when the item is built.
func (b MenuItemBuilder) Submenus(items ...MenuItem) MenuItemBuilder {
	return b.set("submenus", append([]MenuItem(nil), items...))
}

// Callback sets the click handler. It receives the raw event payload.
func (b MenuItemBuilder) Callback(fn func(Value) error) MenuItemBuilder {
	b.onClick = fn
	return b
}

// Build creates the item and registers its click handler.
func (b MenuItemBuilder) Build() (MenuItem, error) {
	a, err := current()
	if err != nil {
		return nil, err
	}
	item, _, err := b.create(a, true)
	return item, err
}

// Finalize creates the item and returns the click handler unregistered, or
// nil when none was set.
func (b MenuItemBuilder) Finalize() (MenuItem, callback.Invoker, error) {
	a, err := current()
	if err != nil {
		return nil, nil, err
	}
	return b.create(a, false)
}

func (b MenuItemBuilder) create(a *Application, register bool) (MenuItem, callback.Invoker, error) {
	var cb callback.Invoker
	if b.onClick != nil {
		cb = callback.New(callback.Raw, b.onClick)
	}

	opts := b.opts
	if f := a.bindFunc(cb); f != nil {
		opts = opts.Set("click", f)
	}

	var item MenuItem
	err := a.commit("create menu item", register, invokers(cb), func() error {
		if v, ok := opts.Get("submenus"); ok {
			sub, err := a.host.NewMenu(host.MenuTypeContextMenu)
			if err != nil {
				return err
			}
			for _, it := range v.([]MenuItem) {
				if err := sub.Append(it); err != nil {
					return err
				}
			}
			opts = withoutKey(opts, "submenus").Set("submenu", sub)
		}

		var err error
		item, err = a.host.NewMenuItem(opts)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return item, cb, nil
}

func withoutKey(o host.Options, key string) host.Options {
	out := host.NewOptions()
	for _, k := range o.Keys() {
		if k == key {
			continue
		}
		v, _ := o.Get(k)
		out = out.Set(k, v)
	}
	return out
}

// MenuSeparator creates a separator item.
func MenuSeparator() (MenuItem, error) {
	return NewMenuItem().Type(MenuItemSeparator).Build()
}

// MenubarBuilder collects the top-level items of an application menubar.
// Methods return a modified copy.
type MenubarBuilder struct {
	appName string
	mac     host.Options
	items   []MenuItem
}

// NewMenubar starts a menubar for appName. On macOS the standard application
// menus are titled with appName.
func NewMenubar(appName string) MenubarBuilder {
	return MenubarBuilder{appName: appName, mac: host.NewOptions()}
}

// NewMenubarFromConfig starts a menubar from the app and menubar sections of c.
func NewMenubarFromConfig(c Config) MenubarBuilder {
	return NewMenubar(c.App.Name).
		MacHideEdit(c.Menubar.MacHideEdit).
		MacHideWindow(c.Menubar.MacHideWindow)
}

// MacHideEdit leaves out the builtin Edit menu on macOS.
func (b MenubarBuilder) MacHideEdit(hide bool) MenubarBuilder {
	b.mac = b.mac.Set("hideEdit", hide)
	return b
}

// MacHideWindow leaves out the builtin Window menu on macOS.
func (b MenubarBuilder) MacHideWindow(hide bool) MenubarBuilder {
	b.mac = b.mac.Set("hideWindow", hide)
	return b
}

// Append adds item after the items appended so far.
func (b MenubarBuilder) Append(item MenuItem) MenubarBuilder {
	items := make([]MenuItem, len(b.items), len(b.items)+1)
	copy(items, b.items)
	b.items = append(items, item)
	return b
}

// Len returns the number of appended items.
func (b MenubarBuilder) Len() int { return len(b.items) }

// Build creates the menubar with the items in the order they were appended.
// When attach is true it becomes the menu of the current window.
func (b MenubarBuilder) Build(attach bool) (Menu, error) {
	a, err := current()
	if err != nil {
		return nil, err
	}

	var menu Menu
	err = a.commit("create menubar", false, nil, func() error {
		m, err := a.host.NewMenu(host.MenuTypeMenubar)
		if err != nil {
			return err
		}
		if err := m.CreateMacBuiltin(b.appName, b.mac); err != nil {
			return err
		}
		for _, item := range b.items {
			if err := m.Append(item); err != nil {
				return err
			}
		}
		if attach {
			w, err := a.host.CurrentWindow()
			if err != nil {
				return err
			}
			if err := w.SetMenu(m); err != nil {
				return err
			}
		}
		menu = m
		return nil
	})
	return menu, err
}
