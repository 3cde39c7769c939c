//go:build darwin

package nwkit

// The macOS menu bar always has room for status items.
func trayAvailable() bool {
	return true
}
