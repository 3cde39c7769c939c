package nwkit

import (
	"errors"
	"testing"

	"github.com/agiangrant/nwkit/internal/host"
)

func TestDecodeMouseEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    MouseEvent
	}{
		{
			name:    "tray click",
			payload: map[string]any{"x": 4, "y": 9},
			want:    MouseEvent{X: 4, Y: 9},
		},
		{
			name:    "dom event",
			payload: map[string]any{"clientX": 30.0, "clientY": 40.0, "button": 2, "ctrlKey": true},
			want:    MouseEvent{X: 30, Y: 40, Button: 2, Ctrl: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMouseEvent(host.ValueOf(tt.payload))
			if err != nil {
				t.Fatalf("DecodeMouseEvent() error = %v", err)
			}
			got.Payload = nil
			if got != tt.want {
				t.Errorf("DecodeMouseEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeMouseEventNull(t *testing.T) {
	if _, err := DecodeMouseEvent(host.Null); err == nil {
		t.Errorf("DecodeMouseEvent(null) succeeded")
	}
}

func TestPreventDefaultWithoutMethod(t *testing.T) {
	ev, _ := DecodeMouseEvent(host.ValueOf(map[string]any{"x": 1}))
	if err := ev.PreventDefault(); err != nil {
		t.Errorf("PreventDefault() error = %v", err)
	}
	if err := (MouseEvent{}).PreventDefault(); err != nil {
		t.Errorf("zero PreventDefault() error = %v", err)
	}
}

func TestHostErrorMatching(t *testing.T) {
	cause := errors.New("denied")
	err := hostError("create tray", cause)

	if !errors.Is(err, ErrHostRejected) {
		t.Errorf("errors.Is(err, ErrHostRejected) = false")
	}
	if !errors.Is(err, cause) {
		t.Errorf("HostError does not unwrap to its cause")
	}
	if err.Error() != "nwkit: create tray: denied" {
		t.Errorf("Error() = %q", err.Error())
	}
	if hostError("x", nil) != nil {
		t.Errorf("hostError(nil) != nil")
	}
}
