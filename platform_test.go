package nwkit

import (
	"runtime"
	"testing"
)

func TestCurrentPlatform(t *testing.T) {
	p := CurrentPlatform()
	if p != PlatformUnknown && string(p) != runtime.GOOS {
		t.Errorf("CurrentPlatform() = %s, GOOS = %s", p, runtime.GOOS)
	}

	desktop := p == PlatformMacOS || p == PlatformLinux || p == PlatformWindows
	if IsDesktop() != desktop || SupportsMultiWindow() != desktop {
		t.Errorf("IsDesktop() = %v, SupportsMultiWindow() = %v, want %v", IsDesktop(), SupportsMultiWindow(), desktop)
	}
	if SupportsMacBuiltinMenus() != (p == PlatformMacOS) {
		t.Errorf("SupportsMacBuiltinMenus() = %v on %s", SupportsMacBuiltinMenus(), p)
	}
	if IsMacOS() && !SupportsSystemTray() {
		t.Errorf("SupportsSystemTray() = false on macOS")
	}
}
