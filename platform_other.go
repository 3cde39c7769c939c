//go:build !darwin && !linux

package nwkit

func trayAvailable() bool {
	return IsWindows()
}
