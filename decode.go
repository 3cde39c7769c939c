package nwkit

import (
	"errors"
	"fmt"

	"github.com/agiangrant/nwkit/callback"
	"github.com/agiangrant/nwkit/internal/host"
)

// MouseEvent is the payload of tray clicks and DOM mouse events.
type MouseEvent struct {
	X, Y    int
	Button  int
	Ctrl    bool
	Shift   bool
	Alt     bool
	Meta    bool
	Payload Value
}

// PreventDefault stops the default shell action for a DOM event. Tray
// events have no default action and return nil.
func (e MouseEvent) PreventDefault() error {
	if e.Payload == nil {
		return nil
	}
	_, err := e.Payload.Call("preventDefault")
	if errors.Is(err, host.ErrNotCallable) {
		return nil
	}
	return err
}

var errNullPayload = errors.New("null payload")

// DecodeMouseEvent reads a mouse event. DOM events carry clientX/clientY;
// tray clicks carry x/y.
func DecodeMouseEvent(v Value) (MouseEvent, error) {
	if v.IsNull() {
		return MouseEvent{}, fmt.Errorf("mouse event: %w", errNullPayload)
	}

	e := MouseEvent{
		X:       v.Get("x").Int(),
		Y:       v.Get("y").Int(),
		Button:  v.Get("button").Int(),
		Ctrl:    v.Get("ctrlKey").Bool(),
		Shift:   v.Get("shiftKey").Bool(),
		Alt:     v.Get("altKey").Bool(),
		Meta:    v.Get("metaKey").Bool(),
		Payload: v,
	}
	if x := v.Get("clientX"); !x.IsNull() {
		e.X = x.Int()
	}
	if y := v.Get("clientY"); !y.IsNull() {
		e.Y = y.Int()
	}
	return e, nil
}

func windowDecoder(h host.Host) callback.Decoder[Window] {
	return func(v host.Value) (Window, error) {
		w, ok := h.Window(v)
		if !ok {
			return nil, fmt.Errorf("payload is not a window")
		}
		return w, nil
	}
}

// mediaStreamDecoder maps a null payload to a nil stream so that a failed
// request still reaches the handler.
func mediaStreamDecoder(h host.Host) callback.Decoder[MediaStream] {
	return func(v host.Value) (MediaStream, error) {
		if v.IsNull() {
			return nil, nil
		}
		s, ok := h.MediaStream(v)
		if !ok {
			return nil, fmt.Errorf("payload is not a media stream")
		}
		return s, nil
	}
}
