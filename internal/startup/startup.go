package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/distantorigin/discord-monitor/internal/logging"
	"github.com/distantorigin/discord-monitor/internal/paths"
)

// ScriptName is the batch file placed in the Startup folder
const ScriptName = "discord-monitor-startup.bat"

// ErrNoStartupFolder is returned when neither the shell nor APPDATA knows
// where the Startup folder is.
var ErrNoStartupFolder = errors.New("startup folder not found")

// Script returns the batch file that starts exe in silent startup mode
func Script(exe string) string {
	return "@echo off\r\nstart \"\" \"" + exe + "\" --startup --silent\r\n"
}

// Registrar adds or removes the startup script
type Registrar struct {
	Folder     string
	Executable string
}

// NewRegistrar asks the shell for the Startup folder, falling back to the
// conventional location under APPDATA.
func NewRegistrar(r paths.Roots, exe string) Registrar {
	folder := shellStartupFolder()
	if folder == "" {
		folder = r.StartupFolder()
	}
	return Registrar{Folder: folder, Executable: exe}
}

// ScriptPath returns where the script lives, or "" without a folder
func (r Registrar) ScriptPath() string {
	return paths.Join(r.Folder, ScriptName)
}

// Installed reports whether the script is present
func (r Registrar) Installed() bool {
	p := r.ScriptPath()
	return p != "" && paths.IsFile(p)
}

// Install writes the script, replacing any previous one
func (r Registrar) Install() error {
	p := r.ScriptPath()
	if p == "" {
		return ErrNoStartupFolder
	}
	if r.Executable == "" {
		return errors.New("executable path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("failed to create startup folder: %w", err)
	}
	if err := os.WriteFile(p, []byte(Script(r.Executable)), 0644); err != nil {
		return fmt.Errorf("failed to write startup script: %w", err)
	}

	logging.Info("Installed startup script", logrus.Fields{"path": p, "executable": r.Executable})
	return nil
}

// Uninstall removes the script. removed is false when there was nothing to
// remove.
func (r Registrar) Uninstall() (removed bool, err error) {
	p := r.ScriptPath()
	if p == "" {
		return false, ErrNoStartupFolder
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove startup script: %w", err)
	}

	logging.Info("Removed startup script", logrus.Fields{"path": p})
	return true, nil
}
