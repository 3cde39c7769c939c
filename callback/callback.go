// Package callback holds Go closures that a native host calls back into.
//
// A Callback owns one closure and the decoder for its payload. Once bound to
// a host it stays callable, any number of times, until it is released. A Map
// keeps callbacks alive by ID so that code which registered them can remove
// them later.
package callback

import (
	"sync"

	"github.com/agiangrant/nwkit/internal/host"
)

// Invoker is what a Map stores: a callback with its payload type erased.
type Invoker interface {
	ID() ID

	// Invoke decodes v and runs the closure.
	Invoke(v host.Value) error

	// Bind returns the host-callable reference for the callback. The
	// reference is created on the first call and reused afterwards.
	Bind(h host.Host) host.Func

	// Release releases the host reference. It is safe to call more than once.
	Release()
}

// Decoder converts a host payload into T.
type Decoder[T any] func(host.Value) (T, error)

// Option configures a Callback.
type Option func(*options)

type options struct {
	onDecodeError func(error)
}

// WithDecodeErrorHook observes decode failures that a fire-and-forget
// callback swallows.
func WithDecodeErrorHook(fn func(error)) Option {
	return func(o *options) {
		o.onDecodeError = fn
	}
}

// Callback is a closure taking a T, callable from the host.
type Callback[T any] struct {
	id     ID
	decode Decoder[T]
	fn     func(T) error
	silent bool
	opts   options

	mu  sync.Mutex
	ref host.Func
}

// New returns a result-bearing callback. Decode failures are returned from
// Invoke as *DecodeError, and so are the errors of fn.
func New[T any](decode Decoder[T], fn func(T) error, opts ...Option) *Callback[T] {
	return newCallback(decode, fn, false, opts)
}

// NewWithoutResult returns a fire-and-forget callback. A payload that cannot
// be decoded skips fn and Invoke returns nil.
func NewWithoutResult[T any](decode Decoder[T], fn func(T), opts ...Option) *Callback[T] {
	return newCallback(decode, func(v T) error {
		fn(v)
		return nil
	}, true, opts)
}

func newCallback[T any](decode Decoder[T], fn func(T) error, silent bool, opts []Option) *Callback[T] {
	c := &Callback[T]{
		id:     NewID(),
		decode: decode,
		fn:     fn,
		silent: silent,
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// ID returns the identity fixed at construction.
func (c *Callback[T]) ID() ID {
	return c.id
}

// Invoke runs the closure once with the decoded payload.
func (c *Callback[T]) Invoke(v host.Value) error {
	if v == nil {
		v = host.Null
	}

	arg, err := c.decode(v)
	if err != nil {
		derr := &DecodeError{ID: c.id, Err: err}
		if !c.silent {
			return derr
		}
		if c.opts.onDecodeError != nil {
			c.opts.onDecodeError(derr)
		}
		return nil
	}

	return c.fn(arg)
}

// Bind implements Invoker.
func (c *Callback[T]) Bind(h host.Host) host.Func {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ref == nil {
		c.ref = h.NewFunc(c.Invoke)
	}
	return c.ref
}

// Bound reports whether the callback holds a host reference.
func (c *Callback[T]) Bound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ref != nil
}

// Release implements Invoker. A later Bind creates a new reference.
func (c *Callback[T]) Release() {
	c.mu.Lock()
	ref := c.ref
	c.ref = nil
	c.mu.Unlock()

	if ref != nil {
		ref.Release()
	}
}
