// Package nwkit binds Go event handlers to a native UI shell: windows,
// menus, tray icons, global shortcuts, DOM context menus and media devices.
//
// Call Initialize once, then use the builders. Every handler a builder
// attaches is kept in the Application's callback map until it is removed,
// because the shell may call it at any time and any number of times.
package nwkit

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/agiangrant/nwkit/callback"
	"github.com/agiangrant/nwkit/internal/guard"
	"github.com/agiangrant/nwkit/internal/host"
)

// Application owns the host connection, the callback map and the current
// media stream.
type Application struct {
	host      host.Host
	callbacks callback.Map
	logger    *zerolog.Logger
	config    Config

	mediaMu guard.Mutex
	stream  MediaStream
}

// Option configures Initialize.
type Option func(*Application)

// WithHost uses h instead of the platform default host.
func WithHost(h Host) Option {
	return func(a *Application) {
		a.host = h
	}
}

// WithLogger sets the logger. The default is built from the log section of
// the config and writes to stderr.
func WithLogger(l *zerolog.Logger) Option {
	return func(a *Application) {
		a.logger = l
	}
}

// WithConfig sets the configuration.
func WithConfig(c Config) Option {
	return func(a *Application) {
		a.config = c
	}
}

var (
	app atomic.Pointer[Application]

	defaultHost = host.Default
)

// Initialize builds the Application and makes it current.
//
// Initializing again replaces the current Application. The previous one stays
// usable by whoever holds it and keeps its own callbacks, which the shell can
// still call.
func Initialize(opts ...Option) (*Application, error) {
	a := &Application{config: DefaultConfig()}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = a.config.Log.NewLogger(os.Stderr)
	}

	if a.host == nil {
		h, err := defaultHost()
		if err != nil {
			return nil, hostError("load host", err)
		}
		a.host = h
	}

	if prev := app.Swap(a); prev != nil {
		n, _ := prev.callbacks.Len()
		a.logger.Warn().
			Int("previous_callbacks", n).
			Msg("application re-initialized, previous instance keeps its callbacks")
	}

	a.logger.Debug().
		Str("app", a.config.App.Name).
		Str("platform", string(CurrentPlatform())).
		Msg("application initialized")

	return a, nil
}

// Current returns the Application made current by Initialize, or nil.
func Current() *Application {
	return app.Load()
}

func current() (*Application, error) {
	a := app.Load()
	if a == nil {
		return nil, ErrNotInitialized
	}
	return a, nil
}

// Callbacks returns the map of registered callbacks.
func (a *Application) Callbacks() *callback.Map {
	return &a.callbacks
}

// Host returns the native shell.
func (a *Application) Host() Host {
	return a.host
}

// Logger returns the application logger.
func (a *Application) Logger() *zerolog.Logger {
	return a.logger
}

// Config returns the configuration passed to Initialize.
func (a *Application) Config() Config {
	return a.config
}

// Register inserts callbacks returned by the Finalize methods. Nil entries
// are skipped. Either all of them are registered or, on error, none are and
// their host references are released.
func (a *Application) Register(cbs ...callback.Invoker) error {
	cbs = invokers(cbs...)
	for _, cb := range cbs {
		cb.Bind(a.host)
	}
	_, err := a.insert("register", cbs)
	return err
}

// RemoveCallback unregisters id and releases its host reference. It reports
// whether id was registered.
func (a *Application) RemoveCallback(id callback.ID) (bool, error) {
	cb, ok, err := a.callbacks.Remove(id)
	if err != nil || !ok {
		return false, err
	}
	cb.Release()
	a.logger.Debug().Stringer("callback", id).Msg("callback removed")
	return true, nil
}

func (a *Application) decodeHook() callback.Option {
	return callback.WithDecodeErrorHook(func(err error) {
		a.logger.Warn().Err(err).Msg("callback payload dropped")
	})
}

// commit runs the tail of every build: register the bound callbacks, then
// create the native object. When create fails the callbacks are removed and
// released again.
func (a *Application) commit(op string, register bool, cbs []callback.Invoker, create func() error) error {
	var inserted []callback.ID

	if register {
		ids, err := a.insert(op, cbs)
		if err != nil {
			return err
		}
		inserted = ids
	}

	if err := create(); err != nil {
		a.unwind(inserted, cbs)
		a.logger.Error().Err(err).Str("op", op).Msg("host rejected request")
		return hostError(op, err)
	}
	return nil
}

// insert registers cbs as one batch. On failure nothing is registered and
// cbs are released.
func (a *Application) insert(op string, cbs []callback.Invoker) ([]callback.ID, error) {
	ids, err := a.callbacks.InsertAll(cbs...)
	if err != nil {
		a.unwind(nil, cbs)
		a.logger.Error().Err(err).Str("op", op).Msg("callback registry unavailable")
		return nil, err
	}
	for _, id := range ids {
		a.logger.Debug().Stringer("callback", id).Str("op", op).Msg("callback registered")
	}
	return ids, nil
}

func (a *Application) unwind(inserted []callback.ID, cbs []callback.Invoker) {
	for _, id := range inserted {
		a.callbacks.Remove(id)
	}
	for _, cb := range cbs {
		cb.Release()
	}
}

// invokers drops nil callbacks.
func invokers(cbs ...callback.Invoker) []callback.Invoker {
	out := cbs[:0:0]
	for _, cb := range cbs {
		if cb != nil {
			out = append(out, cb)
		}
	}
	return out
}

// bindFunc binds cb to the host, or returns nil when there is no callback.
func (a *Application) bindFunc(cb callback.Invoker) host.Func {
	if cb == nil {
		return nil
	}
	return cb.Bind(a.host)
}
