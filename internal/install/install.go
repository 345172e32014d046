package install

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/distantorigin/discord-monitor/internal/logging"
	"github.com/distantorigin/discord-monitor/internal/paths"
	"github.com/distantorigin/discord-monitor/internal/version"
)

// DefaultExecutable is the host app's executable name
const DefaultExecutable = "Discord.exe"

// ErrNotFound is returned when no root holds a usable installation
var ErrNotFound = errors.New("discord installation not found")

// Install is one versioned Discord installation directory
type Install struct {
	Dir        string
	Version    version.Version
	Executable string
}

// ResourcesDir returns the resources directory of the installation
func (i Install) ResourcesDir() string {
	return filepath.Join(i.Dir, "resources")
}

// ArchivePath returns the path of the packed resource archive (app.asar)
func (i Install) ArchivePath() string {
	return filepath.Join(i.ResourcesDir(), "app.asar")
}

// BackupPath returns the path of the relocated original archive (_app.asar).
// It only exists once the mod installer has run.
func (i Install) BackupPath() string {
	return filepath.Join(i.ResourcesDir(), "_app.asar")
}

// Locator finds the active Discord installation among candidate roots
type Locator struct {
	// Roots are probed in order; the first root holding a usable install wins.
	Roots      []string
	Executable string
}

// NewLocator returns a locator for the standard Discord roots
func NewLocator(r paths.Roots, executable string) Locator {
	if executable == "" {
		executable = DefaultExecutable
	}
	return Locator{
		Roots:      DefaultRoots(r),
		Executable: executable,
	}
}

// DefaultRoots returns the Discord install roots in priority order,
// skipping roots whose environment variable is unset.
func DefaultRoots(r paths.Roots) []string {
	var roots []string
	for _, base := range []string{r.LocalAppData, r.AppData} {
		if root := paths.Join(base, "Discord"); root != "" {
			roots = append(roots, root)
		}
	}
	return roots
}

// Locate returns the newest installation of the first root that has one.
// A root whose newest install lacks the executable is skipped, not merged
// with later roots.
func (l Locator) Locate() (Install, error) {
	for _, root := range l.Roots {
		inst, ok := l.newestIn(root)
		if !ok {
			continue
		}

		exe, _ := paths.FindActual(filepath.Join(inst.Dir, l.Executable))
		if !paths.IsFile(exe) {
			logging.Debug("Newest install has no executable", logrus.Fields{"dir": inst.Dir})
			continue
		}
		inst.Executable = exe

		logging.Debug("Located Discord", logrus.Fields{"dir": inst.Dir, "version": inst.Version.String()})
		return inst, nil
	}

	return Install{}, ErrNotFound
}

// newestIn picks the install directory with the greatest version under root.
// Unparseable names rank as 0.0.0; ties keep the first entry seen.
func (l Locator) newestIn(root string) (Install, bool) {
	if !paths.IsDir(root) {
		return Install{}, false
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		logging.Warn("Failed to read install root", logrus.Fields{"root": root, "error": err})
		return Install{}, false
	}

	var best Install
	found := false
	for _, entry := range entries {
		if !entry.IsDir() || !version.IsInstallDir(entry.Name()) {
			continue
		}

		v, _ := version.ParseInstallDir(entry.Name())
		if !found || v.GreaterThan(best.Version) {
			best = Install{Dir: filepath.Join(root, entry.Name()), Version: v}
			found = true
		}
	}

	return best, found
}
