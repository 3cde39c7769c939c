//go:build js && wasm

package host

import (
	"errors"
	"fmt"
	"sync"
	"syscall/js"
)

// JS is the host for code running inside the shell's page, where the nw
// global is available.
type JS struct {
	nw js.Value
}

// Default returns the host backed by the nw global.
func Default() (Host, error) {
	nw := js.Global().Get("nw")
	if nw.IsUndefined() {
		return nil, errors.New("nw not found in global scope: not running inside the shell")
	}
	return &JS{nw: nw}, nil
}

type jsFunc struct {
	fn   js.Func
	once sync.Once
}

func (f *jsFunc) Release() {
	f.once.Do(f.fn.Release)
}

// NewFunc implements Host.
func (h *JS) NewFunc(fn func(Value) error) Func {
	return &jsFunc{fn: js.FuncOf(func(this js.Value, args []js.Value) any {
		v := js.Null()
		if len(args) > 0 {
			v = args[0]
		}
		if err := fn(jsValue{v}); err != nil {
			js.Global().Get("console").Call("error", "nwkit: "+err.Error())
		}
		return nil
	})}
}

// toJS converts options and handles into JS values.
func toJS(v any) any {
	switch x := v.(type) {
	case *jsFunc:
		return x.fn.Value
	case *jsObject:
		return x.v
	case *jsTrack:
		return x.v
	case Options:
		return toJS(x.m)
	case map[string]any:
		obj := js.Global().Get("Object").New()
		for k, e := range x {
			obj.Set(k, toJS(e))
		}
		return obj
	case []any:
		arr := js.Global().Get("Array").New(len(x))
		for i, e := range x {
			arr.SetIndex(i, toJS(e))
		}
		return arr
	}
	return v
}

// try runs fn and turns a thrown JS exception into an error.
func try(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jerr, ok := r.(js.Error); ok {
				err = fmt.Errorf("%s: %s", op, jerr.Error())
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

// OpenWindow implements Host.
func (h *JS) OpenWindow(url string, opts Options, onOpen Func) error {
	return try("window.open", func() {
		if onOpen == nil {
			h.nw.Get("Window").Call("open", url, toJS(opts))
			return
		}
		h.nw.Get("Window").Call("open", url, toJS(opts), toJS(onOpen))
	})
}

// CurrentWindow implements Host.
func (h *JS) CurrentWindow() (Window, error) {
	var w js.Value
	err := try("window.get", func() {
		w = h.nw.Get("Window").Call("get")
	})
	if err != nil {
		return nil, err
	}
	return &jsObject{w}, nil
}

// Body implements Host.
func (h *JS) Body() (EventTarget, error) {
	body := js.Global().Get("document").Get("body")
	if body.IsUndefined() || body.IsNull() {
		return nil, errors.New("document has no body")
	}
	return &jsObject{body}, nil
}

func (h *JS) construct(class string, opts any) (*jsObject, error) {
	var v js.Value
	err := try("new "+class, func() {
		v = h.nw.Get(class).New(toJS(opts))
	})
	if err != nil {
		return nil, err
	}
	return &jsObject{v}, nil
}

// NewMenu implements Host.
func (h *JS) NewMenu(t MenuType) (Menu, error) {
	return h.construct("Menu", map[string]any{"type": string(t)})
}

// NewMenuItem implements Host.
func (h *JS) NewMenuItem(opts Options) (MenuItem, error) {
	return h.construct("MenuItem", opts)
}

// NewTray implements Host.
func (h *JS) NewTray(opts Options) (Tray, error) {
	return h.construct("Tray", opts)
}

// NewShortcut implements Host.
func (h *JS) NewShortcut(opts Options) (Shortcut, error) {
	return h.construct("Shortcut", opts)
}

// RegisterGlobalHotKey implements Host.
func (h *JS) RegisterGlobalHotKey(s Shortcut) error {
	return try("registerGlobalHotKey", func() {
		h.nw.Get("App").Call("registerGlobalHotKey", toJS(s))
	})
}

// UnregisterGlobalHotKey implements Host.
func (h *JS) UnregisterGlobalHotKey(s Shortcut) error {
	return try("unregisterGlobalHotKey", func() {
		h.nw.Get("App").Call("unregisterGlobalHotKey", toJS(s))
	})
}

// GetUserMedia implements Host. A rejected request calls then with null.
func (h *JS) GetUserMedia(constraints Options, then Func) error {
	media := js.Global().Get("navigator").Get("mediaDevices")
	if media.IsUndefined() {
		return fmt.Errorf("getUserMedia: %w", ErrUnsupported)
	}

	return try("getUserMedia", func() {
		promise := media.Call("getUserMedia", toJS(constraints))
		if then == nil {
			return
		}
		ok := toJS(then).(js.Value)

		var fail js.Func
		fail = js.FuncOf(func(this js.Value, args []js.Value) any {
			ok.Invoke(js.Null())
			fail.Release()
			return nil
		})
		promise.Call("then", ok, fail)
	})
}

// Window implements Host.
func (h *JS) Window(v Value) (Window, bool) {
	jv, ok := v.Object().(js.Value)
	if !ok || jv.Type() != js.TypeObject {
		return nil, false
	}
	return &jsObject{jv}, true
}

// MediaStream implements Host.
func (h *JS) MediaStream(v Value) (MediaStream, bool) {
	jv, ok := v.Object().(js.Value)
	if !ok || jv.Type() != js.TypeObject {
		return nil, false
	}
	if class := js.Global().Get("MediaStream"); !class.IsUndefined() && !jv.InstanceOf(class) {
		return nil, false
	}
	return &jsObject{jv}, true
}

// jsObject is a shell object. The methods that apply depend on its class.
type jsObject struct {
	v js.Value
}

func (o *jsObject) call(method string, args ...any) error {
	return try(method, func() {
		for i, a := range args {
			args[i] = toJS(a)
		}
		o.v.Call(method, args...)
	})
}

func (o *jsObject) set(prop string, value any) error {
	return try("set "+prop, func() {
		o.v.Set(prop, toJS(value))
	})
}

func (o *jsObject) SetMenu(menu Menu) error    { return o.set("menu", menu) }
func (o *jsObject) Close(force bool) error     { return o.call("close", force) }
func (o *jsObject) Append(item MenuItem) error { return o.call("append", item) }
func (o *jsObject) Popup(x, y int) error       { return o.call("popup", x, y) }

func (o *jsObject) AddEventListener(event string, fn Func) error {
	return o.call("addEventListener", event, fn)
}

func (o *jsObject) RemoveEventListener(event string, fn Func) error {
	return o.call("removeEventListener", event, fn)
}

func (o *jsObject) CreateMacBuiltin(appName string, opts Options) error {
	if js.Global().Get("process").Get("platform").String() != "darwin" {
		return nil
	}
	return o.call("createMacBuiltin", appName, opts)
}

func (o *jsObject) SetLabel(label string) error     { return o.set("label", label) }
func (o *jsObject) SetEnabled(enabled bool) error   { return o.set("enabled", enabled) }
func (o *jsObject) SetChecked(checked bool) error   { return o.set("checked", checked) }
func (o *jsObject) SetTooltip(tooltip string) error { return o.set("tooltip", tooltip) }
func (o *jsObject) SetTitle(title string) error     { return o.set("title", title) }
func (o *jsObject) SetIcon(icon string) error       { return o.set("icon", icon) }
func (o *jsObject) On(event string, fn Func) error  { return o.call("on", event, fn) }
func (o *jsObject) Remove() error                   { return o.call("remove") }
func (o *jsObject) Key() string                     { return o.v.Get("key").String() }
func (o *jsObject) ID() string                      { return o.v.Get("id").String() }

func (o *jsObject) GetTracks() []MediaStreamTrack {
	list := o.v.Call("getTracks")
	class := js.Global().Get("MediaStreamTrack")

	tracks := make([]MediaStreamTrack, list.Length())
	for i := range tracks {
		t := list.Index(i)
		if t.Type() != js.TypeObject || (!class.IsUndefined() && !t.InstanceOf(class)) {
			continue
		}
		tracks[i] = &jsTrack{t}
	}
	return tracks
}

type jsTrack struct {
	v js.Value
}

func (t *jsTrack) Kind() string { return t.v.Get("kind").String() }
func (t *jsTrack) Stop()        { t.v.Call("stop") }

// jsValue is a JS payload.
type jsValue struct {
	v js.Value
}

func (v jsValue) object() bool {
	return v.v.Type() == js.TypeObject || v.v.Type() == js.TypeFunction
}

func (v jsValue) Get(key string) Value {
	if !v.object() {
		return Null
	}
	return jsValue{v.v.Get(key)}
}

func (v jsValue) Index(i int) Value {
	if !v.object() || i < 0 || i >= v.Len() {
		return Null
	}
	return jsValue{v.v.Index(i)}
}

func (v jsValue) Len() int {
	switch v.v.Type() {
	case js.TypeString:
		return v.v.Length()
	case js.TypeObject:
		if l := v.v.Get("length"); l.Type() == js.TypeNumber {
			return l.Int()
		}
	}
	return 0
}

func (v jsValue) String() string {
	if v.IsNull() {
		return ""
	}
	return v.v.String()
}

func (v jsValue) Int() int {
	if v.v.Type() != js.TypeNumber {
		return 0
	}
	return v.v.Int()
}

func (v jsValue) Float() float64 {
	if v.v.Type() != js.TypeNumber {
		return 0
	}
	return v.v.Float()
}

func (v jsValue) Bool() bool {
	if v.v.Type() != js.TypeBoolean {
		return false
	}
	return v.v.Bool()
}

func (v jsValue) IsNull() bool {
	return v.v.IsNull() || v.v.IsUndefined()
}

func (v jsValue) Call(method string, args ...any) (Value, error) {
	if !v.object() || v.v.Get(method).Type() != js.TypeFunction {
		return Null, fmt.Errorf("%s: %w", method, ErrNotCallable)
	}
	var out js.Value
	err := try(method, func() {
		for i, a := range args {
			args[i] = toJS(a)
		}
		out = v.v.Call(method, args...)
	})
	if err != nil {
		return Null, err
	}
	return jsValue{out}, nil
}

func (v jsValue) Object() any {
	return v.v
}
