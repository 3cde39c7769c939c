package nwkit

import "runtime"

// Platform represents the operating system the shell runs on.
type Platform string

const (
	PlatformMacOS   Platform = "darwin"
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformWeb     Platform = "js"
	PlatformUnknown Platform = "unknown"
)

// CurrentPlatform returns the platform the app is running on
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformMacOS
	case "linux":
		return PlatformLinux
	case "windows":
		return PlatformWindows
	case "js":
		return PlatformWeb
	default:
		return PlatformUnknown
	}
}

// IsDesktop returns true if running on macOS, Linux, or Windows
func IsDesktop() bool {
	p := CurrentPlatform()
	return p == PlatformMacOS || p == PlatformLinux || p == PlatformWindows
}

// IsMacOS returns true if running on macOS
func IsMacOS() bool {
	return CurrentPlatform() == PlatformMacOS
}

// IsWindows returns true if running on Windows
func IsWindows() bool {
	return CurrentPlatform() == PlatformWindows
}

// SupportsSystemTray returns true if tray icons can be shown. On Linux this
// asks the session bus whether a StatusNotifier watcher is running.
func SupportsSystemTray() bool {
	return trayAvailable()
}

// SupportsMultiWindow returns true if the platform supports multiple windows
func SupportsMultiWindow() bool {
	return IsDesktop()
}

// SupportsMacBuiltinMenus returns true if menubars get the standard
// application, edit and window menus.
func SupportsMacBuiltinMenus() bool {
	return IsMacOS()
}
