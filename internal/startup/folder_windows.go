//go:build windows

package startup

import (
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// shellStartupFolder reads WScript.Shell's SpecialFolders("Startup"), which
// honors folder redirection. Returns "" on any failure.
func shellStartupFolder() string {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitialize(0); err != nil {
		return ""
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return ""
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return ""
	}
	defer shell.Release()

	folder, err := oleutil.GetProperty(shell, "SpecialFolders", "Startup")
	if err != nil {
		return ""
	}
	defer folder.Clear()

	return folder.ToString()
}
