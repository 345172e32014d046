//go:build windows

package console

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	user32            = windows.NewLazySystemDLL("user32.dll")
	attachConsole     = kernel32.NewProc("AttachConsole")
	allocConsole      = kernel32.NewProc("AllocConsole")
	getConsoleWindow  = kernel32.NewProc("GetConsoleWindow")
	setConsoleTitleW  = kernel32.NewProc("SetConsoleTitleW")
	showWindowProc    = user32.NewProc("ShowWindow")
	setForegroundProc = user32.NewProc("SetForegroundWindow")
)

const (
	attachParentProcess = ^uint32(0) // -1 as uint32
	swShow              = 5
)

var (
	attached  bool
	allocated bool
)

func validHandle(h windows.Handle) bool {
	return h != 0 && h != windows.InvalidHandle
}

// Attach tries to attach to the parent console or create a new one.
// Returns true if a console is available for output.
func Attach() bool {
	if attached {
		return true
	}

	// Already have one (started from a terminal with a console subsystem build)
	if h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE); err == nil && validHandle(h) {
		attached = true
		return true
	}

	ok, _, _ := attachConsole.Call(uintptr(attachParentProcess))
	if ok == 0 {
		ok, _, _ = allocConsole.Call()
		if ok == 0 {
			return false
		}
		allocated = true
	}

	if h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE); err == nil && validHandle(h) {
		os.Stdout = os.NewFile(uintptr(h), "/dev/stdout")
	}
	if h, err := windows.GetStdHandle(windows.STD_ERROR_HANDLE); err == nil && validHandle(h) {
		os.Stderr = os.NewFile(uintptr(h), "/dev/stderr")
	}
	if h, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE); err == nil && validHandle(h) {
		os.Stdin = os.NewFile(uintptr(h), "/dev/stdin")
	}

	if allocated {
		if hwnd, _, _ := getConsoleWindow.Call(); hwnd != 0 {
			showWindowProc.Call(hwnd, swShow)
			setForegroundProc.Call(hwnd)
		}
	}

	attached = true
	return true
}

// Allocated reports whether Attach had to create a fresh console window,
// which closes as soon as the process exits.
func Allocated() bool {
	return allocated
}

// SetTitle sets the console window title
func SetTitle(title string) error {
	if !attached {
		return nil
	}

	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}

	r1, _, callErr := setConsoleTitleW.Call(uintptr(unsafe.Pointer(titlePtr)))
	if r1 == 0 {
		return fmt.Errorf("SetConsoleTitle failed: %v", callErr)
	}
	return nil
}
