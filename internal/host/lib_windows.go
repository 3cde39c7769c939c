//go:build windows

package host

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
)

var (
	dllMu sync.Mutex
	dlls  = make(map[uintptr]*windows.DLL)
)

// openLibrary loads a dynamic library on Windows
func openLibrary(path string) (uintptr, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL failed: %w", err)
	}

	dllMu.Lock()
	defer dllMu.Unlock()
	dlls[uintptr(dll.Handle)] = dll
	return uintptr(dll.Handle), nil
}

// getSymbol retrieves a symbol from the loaded library on Windows
func getSymbol(handle uintptr, name string) (uintptr, error) {
	dllMu.Lock()
	dll := dlls[handle]
	dllMu.Unlock()

	if dll == nil {
		return 0, fmt.Errorf("library not loaded")
	}
	proc, err := dll.FindProc(name)
	if err != nil {
		return 0, fmt.Errorf("FindProc(%s) failed: %w", name, err)
	}
	return proc.Addr(), nil
}
