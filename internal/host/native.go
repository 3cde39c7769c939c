//go:build !js

package host

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/purego"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// The shell library exports three functions:
//
//	uintptr nwshell_call(const char *request)
//	void    nwshell_free(uintptr reply)
//	void    nwshell_set_dispatch(uintptr fn)
//
// Requests and replies are JSON. A reply is {"result": ...} or
// {"error": "..."}. The shell calls the dispatch function with a func id and
// a JSON payload whenever one of our funcs fires. Host objects travel as
// {"$object": id, "$class": name} and funcs as {"$func": id}.

var (
	nativeOnce sync.Once
	native     *Native
	nativeErr  error
)

// Default loads the shell library once and returns it as a Host.
func Default() (Host, error) {
	nativeOnce.Do(func() {
		native, nativeErr = LoadNative(libraryPath())
	})
	if nativeErr != nil {
		return nil, nativeErr
	}
	return native, nil
}

// libraryPath returns the path to the shell library
func libraryPath() string {
	if path := os.Getenv("NWKIT_SHELL_LIB"); path != "" {
		return path
	}

	var libName string
	switch runtime.GOOS {
	case "darwin":
		libName = "libnwshell.dylib"
	case "windows":
		libName = "nwshell.dll"
	default:
		libName = "libnwshell.so"
	}

	searchPaths := []string{libName, filepath.Join("lib", libName)}
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		searchPaths = append(searchPaths,
			filepath.Join(execDir, libName),
			filepath.Join(execDir, "..", "lib", libName),
		)
		if runtime.GOOS == "darwin" {
			searchPaths = append(searchPaths, filepath.Join(execDir, "..", "Frameworks", libName))
		}
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}

	// Let the dynamic loader search for it
	return libName
}

// Native is the host backed by the shell library.
type Native struct {
	call func(request string) uintptr
	free func(reply uintptr)

	funcs  sync.Map // uint64 -> *nativeFunc
	nextID atomic.Uint64
}

var (
	loaded atomic.Pointer[Native]

	// purego callbacks are never freed, so there is exactly one.
	dispatchOnce sync.Once
	dispatchPtr  uintptr
)

func dispatchCallback() uintptr {
	dispatchOnce.Do(func() {
		dispatchPtr = purego.NewCallback(dispatch)
	})
	return dispatchPtr
}

// LoadNative opens the shell library at path.
func LoadNative(path string) (*Native, error) {
	handle, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("load shell library %s: %w", path, err)
	}

	n := &Native{}
	var setDispatch func(fn uintptr)
	for name, fn := range map[string]any{
		"nwshell_call":         &n.call,
		"nwshell_free":         &n.free,
		"nwshell_set_dispatch": &setDispatch,
	} {
		sym, err := getSymbol(handle, name)
		if err != nil {
			return nil, fmt.Errorf("load shell library %s: %w", path, err)
		}
		purego.RegisterFunc(fn, sym)
	}

	// Shell callbacks go to the most recently loaded library.
	loaded.Store(n)
	setDispatch(dispatchCallback())
	log.Debug().Str("path", path).Msg("shell library loaded")
	return n, nil
}

func dispatch(id uintptr, payload uintptr) uintptr {
	n := loaded.Load()
	if n == nil {
		return 1
	}
	if err := n.Dispatch(uint64(id), goString(payload)); err != nil {
		log.Warn().Err(err).Uint64("func", uint64(id)).Msg("callback failed")
		return 1
	}
	return 0
}

// Dispatch delivers a JSON payload to the func with the given id.
func (n *Native) Dispatch(id uint64, payload string) error {
	v, ok := n.funcs.Load(id)
	if !ok {
		return fmt.Errorf("func %d: %w", id, errReleasedFunc)
	}
	f := v.(*nativeFunc)
	return f.fn(n.value(gjson.Parse(payload)))
}

var errReleasedFunc = errors.New("func released")

func (n *Native) request(op string, fields map[string]any) (gjson.Result, error) {
	req := `{}`
	req, err := sjson.Set(req, "op", op)
	if err != nil {
		return gjson.Result{}, err
	}
	for k, v := range fields {
		if req, err = sjson.Set(req, k, wire(v)); err != nil {
			return gjson.Result{}, fmt.Errorf("%s: encode %s: %w", op, k, err)
		}
	}

	ptr := n.call(req)
	if ptr == 0 {
		return gjson.Result{}, fmt.Errorf("%s: shell returned no reply", op)
	}
	reply := gjson.Parse(goString(ptr))
	n.free(ptr)

	if e := reply.Get("error"); e.Exists() {
		if e.String() == "unsupported" {
			return gjson.Result{}, fmt.Errorf("%s: %w", op, ErrUnsupported)
		}
		return gjson.Result{}, fmt.Errorf("%s: %s", op, e.String())
	}
	return reply.Get("result"), nil
}

func (n *Native) construct(class string, args ...any) (*nativeObject, error) {
	res, err := n.request("new", map[string]any{"class": class, "args": args})
	if err != nil {
		return nil, err
	}
	obj, ok := n.object(res)
	if !ok {
		return nil, fmt.Errorf("new %s: reply is not an object", class)
	}
	return obj, nil
}

func (n *Native) invoke(target int64, method string, args ...any) (gjson.Result, error) {
	return n.request("call", map[string]any{
		"target": target,
		"method": method,
		"args":   args,
	})
}

func (n *Native) object(res gjson.Result) (*nativeObject, bool) {
	id := res.Get("$object")
	if !id.Exists() {
		return nil, false
	}
	return &nativeObject{n: n, id: id.Int(), class: res.Get("$class").String()}, true
}

// wire converts Go values into their JSON form, replacing funcs and host
// objects with references.
func wire(v any) any {
	switch x := v.(type) {
	case *nativeFunc:
		return map[string]any{"$func": x.id}
	case *nativeObject:
		return map[string]any{"$object": x.id}
	case Options:
		return wire(x.m)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = wire(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = wire(e)
		}
		return out
	}
	return v
}

type nativeFunc struct {
	n  *Native
	id uint64
	fn func(Value) error

	once sync.Once
}

func (f *nativeFunc) Release() {
	f.once.Do(func() {
		f.n.funcs.Delete(f.id)
		if _, err := f.n.request("release", map[string]any{"func": f.id}); err != nil {
			log.Debug().Err(err).Uint64("func", f.id).Msg("release func")
		}
	})
}

// NewFunc implements Host.
func (n *Native) NewFunc(fn func(Value) error) Func {
	f := &nativeFunc{n: n, id: n.nextID.Add(1), fn: fn}
	n.funcs.Store(f.id, f)
	return f
}

// OpenWindow implements Host.
func (n *Native) OpenWindow(url string, opts Options, onOpen Func) error {
	args := []any{url, opts}
	if onOpen != nil {
		args = append(args, onOpen)
	}
	_, err := n.request("window.open", map[string]any{"args": args})
	return err
}

// CurrentWindow implements Host.
func (n *Native) CurrentWindow() (Window, error) {
	res, err := n.request("window.get", nil)
	if err != nil {
		return nil, err
	}
	obj, ok := n.object(res)
	if !ok {
		return nil, errors.New("window.get: reply is not a window")
	}
	return obj, nil
}

// Body implements Host.
func (n *Native) Body() (EventTarget, error) {
	res, err := n.request("document.body", nil)
	if err != nil {
		return nil, err
	}
	obj, ok := n.object(res)
	if !ok {
		return nil, errors.New("document.body: reply is not an object")
	}
	return obj, nil
}

// NewMenu implements Host.
func (n *Native) NewMenu(t MenuType) (Menu, error) {
	return n.construct("Menu", map[string]any{"type": string(t)})
}

// NewMenuItem implements Host.
func (n *Native) NewMenuItem(opts Options) (MenuItem, error) {
	return n.construct("MenuItem", opts)
}

// NewTray implements Host.
func (n *Native) NewTray(opts Options) (Tray, error) {
	return n.construct("Tray", opts)
}

// NewShortcut implements Host.
func (n *Native) NewShortcut(opts Options) (Shortcut, error) {
	return n.construct("Shortcut", opts)
}

// RegisterGlobalHotKey implements Host.
func (n *Native) RegisterGlobalHotKey(s Shortcut) error {
	_, err := n.request("app.registerGlobalHotKey", map[string]any{"args": []any{s}})
	return err
}

// UnregisterGlobalHotKey implements Host.
func (n *Native) UnregisterGlobalHotKey(s Shortcut) error {
	_, err := n.request("app.unregisterGlobalHotKey", map[string]any{"args": []any{s}})
	return err
}

// GetUserMedia implements Host.
func (n *Native) GetUserMedia(constraints Options, then Func) error {
	_, err := n.request("media.getUserMedia", map[string]any{"args": []any{constraints, then}})
	return err
}

// Window implements Host.
func (n *Native) Window(v Value) (Window, bool) {
	obj, ok := v.Object().(*nativeObject)
	if !ok || obj.class != "Window" {
		return nil, false
	}
	return obj, true
}

// MediaStream implements Host.
func (n *Native) MediaStream(v Value) (MediaStream, bool) {
	obj, ok := v.Object().(*nativeObject)
	if !ok || obj.class != "MediaStream" {
		return nil, false
	}
	return obj, true
}

// nativeObject is any object living in the shell. The methods that apply
// depend on class.
type nativeObject struct {
	n     *Native
	id    int64
	class string
}

func (o *nativeObject) do(method string, args ...any) error {
	_, err := o.n.invoke(o.id, method, args...)
	return err
}

func (o *nativeObject) set(prop string, value any) error {
	return o.do("$set", prop, value)
}

func (o *nativeObject) SetMenu(menu Menu) error    { return o.set("menu", menu) }
func (o *nativeObject) Close(force bool) error     { return o.do("close", force) }
func (o *nativeObject) Append(item MenuItem) error { return o.do("append", item) }
func (o *nativeObject) Popup(x, y int) error       { return o.do("popup", x, y) }

func (o *nativeObject) AddEventListener(event string, fn Func) error {
	return o.do("addEventListener", event, fn)
}

func (o *nativeObject) RemoveEventListener(event string, fn Func) error {
	return o.do("removeEventListener", event, fn)
}

func (o *nativeObject) CreateMacBuiltin(appName string, opts Options) error {
	if runtime.GOOS != "darwin" {
		return nil
	}
	return o.do("createMacBuiltin", appName, opts)
}

func (o *nativeObject) SetLabel(label string) error     { return o.set("label", label) }
func (o *nativeObject) SetEnabled(enabled bool) error   { return o.set("enabled", enabled) }
func (o *nativeObject) SetChecked(checked bool) error   { return o.set("checked", checked) }
func (o *nativeObject) SetTooltip(tooltip string) error { return o.set("tooltip", tooltip) }
func (o *nativeObject) SetTitle(title string) error     { return o.set("title", title) }
func (o *nativeObject) SetIcon(icon string) error       { return o.set("icon", icon) }
func (o *nativeObject) On(event string, fn Func) error  { return o.do("on", event, fn) }
func (o *nativeObject) Remove() error                   { return o.do("remove") }

func (o *nativeObject) Key() string {
	res, err := o.n.invoke(o.id, "$get", "key")
	if err != nil {
		return ""
	}
	return res.String()
}

func (o *nativeObject) ID() string {
	res, err := o.n.invoke(o.id, "$get", "id")
	if err != nil || !res.Exists() {
		return strconv.FormatInt(o.id, 10)
	}
	return res.String()
}

func (o *nativeObject) GetTracks() []MediaStreamTrack {
	res, err := o.n.invoke(o.id, "getTracks")
	if err != nil {
		log.Warn().Err(err).Int64("stream", o.id).Msg("get tracks")
		return nil
	}

	var tracks []MediaStreamTrack
	res.ForEach(func(_, t gjson.Result) bool {
		obj, ok := o.n.object(t)
		if !ok || obj.class != "MediaStreamTrack" {
			tracks = append(tracks, nil)
			return true
		}
		tracks = append(tracks, &nativeTrack{nativeObject: obj, kind: t.Get("kind").String()})
		return true
	})
	return tracks
}

// nativeTrack carries the kind reported with the track so Kind needs no
// round trip.
type nativeTrack struct {
	*nativeObject
	kind string
}

func (t *nativeTrack) Kind() string {
	return t.kind
}

func (t *nativeTrack) Stop() {
	if err := t.do("stop"); err != nil {
		log.Warn().Err(err).Int64("track", t.id).Msg("stop track")
	}
}
