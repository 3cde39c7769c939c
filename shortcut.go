package nwkit

import (
	"github.com/agiangrant/nwkit/callback"
	"github.com/agiangrant/nwkit/internal/host"
)

// ShortcutBuilder configures a keyboard shortcut. The active and failed
// handlers are independent and both optional. Methods return a modified copy.
type ShortcutBuilder struct {
	opts     host.Options
	global   bool
	onActive func(Value) error
	onFailed func(string) error
}

// NewShortcut starts a builder for a shortcut.
func NewShortcut() ShortcutBuilder {
	return ShortcutBuilder{opts: host.NewOptions()}
}

// Options returns the options collected so far.
func (b ShortcutBuilder) Options() Options { return b.opts }

// Key sets the key combination, for example "Ctrl+Shift+A".
func (b ShortcutBuilder) Key(key string) ShortcutBuilder {
	b.opts = b.opts.Set("key", key)
	return b
}

// Active sets the handler called when the shortcut is pressed.
func (b ShortcutBuilder) Active(fn func(Value) error) ShortcutBuilder {
	b.onActive = fn
	return b
}

// Failed sets the handler called when the key is invalid or cannot be
// registered. It receives the shell's message.
func (b ShortcutBuilder) Failed(fn func(msg string) error) ShortcutBuilder {
	b.onFailed = fn
	return b
}

// Global registers the shortcut as a global hot key once it is built.
func (b ShortcutBuilder) Global(global bool) ShortcutBuilder {
	b.global = global
	return b
}

// Build creates the shortcut and registers its handlers.
func (b ShortcutBuilder) Build() (Shortcut, error) {
	a, err := current()
	if err != nil {
		return nil, err
	}
	sc, _, _, err := b.create(a, true)
	return sc, err
}

// Finalize creates the shortcut and returns the active and failed handlers
// unregistered. Either is nil when it was not set.
func (b ShortcutBuilder) Finalize() (Shortcut, callback.Invoker, callback.Invoker, error) {
	a, err := current()
	if err != nil {
		return nil, nil, nil, err
	}
	return b.create(a, false)
}

func decodeMessage(v host.Value) (string, error) {
	return v.String(), nil
}

func (b ShortcutBuilder) create(a *Application, register bool) (Shortcut, callback.Invoker, callback.Invoker, error) {
	var active, failed callback.Invoker
	if b.onActive != nil {
		active = callback.New(callback.Raw, b.onActive)
	}
	if b.onFailed != nil {
		failed = callback.New(decodeMessage, b.onFailed)
	}

	opts := b.opts
	if f := a.bindFunc(active); f != nil {
		opts = opts.Set("active", f)
	}
	if f := a.bindFunc(failed); f != nil {
		opts = opts.Set("failed", f)
	}

	var sc Shortcut
	err := a.commit("create shortcut", register, invokers(active, failed), func() error {
		s, err := a.host.NewShortcut(opts)
		if err != nil {
			return err
		}
		if b.global {
			if err := a.host.RegisterGlobalHotKey(s); err != nil {
				// The shell may hold a partial registration.
				if uerr := a.host.UnregisterGlobalHotKey(s); uerr != nil {
					a.logger.Debug().Err(uerr).Str("key", s.Key()).Msg("unregister failed shortcut")
				}
				return err
			}
		}
		sc = s
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return sc, active, failed, nil
}

// RegisterGlobalHotKey makes sc fire even when the app has no focus.
func (a *Application) RegisterGlobalHotKey(sc Shortcut) error {
	return hostError("register hot key", a.host.RegisterGlobalHotKey(sc))
}

// UnregisterGlobalHotKey undoes RegisterGlobalHotKey.
func (a *Application) UnregisterGlobalHotKey(sc Shortcut) error {
	return hostError("unregister hot key", a.host.UnregisterGlobalHotKey(sc))
}
