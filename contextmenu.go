package nwkit

import (
	"github.com/agiangrant/nwkit/callback"
	"github.com/agiangrant/nwkit/internal/host"
)

// OnContextMenu calls fn for every contextmenu event on the document body of
// the current window. Remove the returned ID to stop listening.
func (a *Application) OnContextMenu(fn func(MouseEvent) error) (callback.ID, error) {
	cb := callback.New(DecodeMouseEvent, fn)
	f := cb.Bind(a.host)

	err := a.commit("listen contextmenu", true, []callback.Invoker{cb}, func() error {
		body, err := a.host.Body()
		if err != nil {
			return err
		}
		return body.AddEventListener("contextmenu", f)
	})
	if err != nil {
		return callback.NilID, err
	}
	return cb.ID(), nil
}

// CreateContextMenu builds a popup menu from items and shows it in place of
// the default context menu of the current window.
func (a *Application) CreateContextMenu(items ...MenuItem) (callback.ID, error) {
	menu, err := a.host.NewMenu(host.MenuTypeContextMenu)
	if err != nil {
		return callback.NilID, hostError("create context menu", err)
	}
	for _, it := range items {
		if err := menu.Append(it); err != nil {
			return callback.NilID, hostError("create context menu", err)
		}
	}

	return a.OnContextMenu(func(ev MouseEvent) error {
		if err := ev.PreventDefault(); err != nil {
			return err
		}
		return menu.Popup(ev.X, ev.Y)
	})
}
