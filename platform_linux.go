//go:build linux

package nwkit

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

const statusNotifierWatcher = "org.kde.StatusNotifierWatcher"

var (
	trayOnce sync.Once
	trayOK   bool
)

func trayAvailable() bool {
	trayOnce.Do(func() {
		trayOK = watcherRunning()
	})
	return trayOK
}

// watcherRunning reports whether some process owns the StatusNotifier
// watcher name. Without a session bus there is no tray.
func watcherRunning() bool {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return false
	}
	defer conn.Close()

	var owned bool
	err = conn.BusObject().
		Call("org.freedesktop.DBus.NameHasOwner", 0, statusNotifierWatcher).
		Store(&owned)
	if err != nil {
		return false
	}
	return owned
}
