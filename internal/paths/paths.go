package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Roots holds the per-user base directories everything else is derived from.
// On Windows these come from LOCALAPPDATA and APPDATA.
type Roots struct {
	LocalAppData string
	AppData      string
}

// FromEnv reads the roots from the process environment
func FromEnv() Roots {
	return Roots{
		LocalAppData: os.Getenv("LOCALAPPDATA"),
		AppData:      os.Getenv("APPDATA"),
	}
}

// Join joins elem onto root. An empty root yields an empty path so that
// callers can skip candidates whose environment variable is unset.
func Join(root string, elem ...string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(append([]string{root}, elem...)...)
}

// StartupFolder returns the conventional per-user Startup folder under APPDATA
func (r Roots) StartupFolder() string {
	return Join(r.AppData, "Microsoft", "Windows", "Start Menu", "Programs", "Startup")
}

// FindActual finds the actual case of a file on case-insensitive filesystems.
// If nothing matches, the original path is returned.
func FindActual(targetPath string) (string, error) {
	if _, err := os.Stat(targetPath); err == nil {
		return targetPath, nil
	}

	dir := filepath.Dir(targetPath)
	filename := filepath.Base(targetPath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return targetPath, nil
	}

	for _, entry := range entries {
		if strings.EqualFold(entry.Name(), filename) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return targetPath, nil
}

// Exists reports whether anything exists at p
func Exists(p string) bool {
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}

// IsDir reports whether p is an existing directory
func IsDir(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// IsFile reports whether p is an existing regular file
func IsFile(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// FileSize returns the size of the file at p in bytes
func FileSize(p string) (int64, error) {
	info, err := os.Stat(p)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
