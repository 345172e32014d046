package testing

import (
	"path/filepath"
	"strings"
	"testing"
)

// BundleMinSize mirrors the loader bundle threshold used by the classifier
const BundleMinSize = 10 * 1024

// asarHeader imitates the pickle header that prefixes real archives so
// fixtures contain non-text bytes.
var asarHeader = []byte{0x04, 0x00, 0x00, 0x00, 0xa8, 0x02, 0x00, 0x00, 0xa4, 0x02, 0x00, 0x00, 0x9e, 0x02, 0x00, 0x00}

// Env is a fake per-user environment rooted in a temp directory
type Env struct {
	LocalAppData string
	AppData      string
}

// NewEnv creates LOCALAPPDATA and APPDATA lookalikes under a temp dir
func NewEnv(t *testing.T) Env {
	t.Helper()
	base := t.TempDir()
	env := Env{
		LocalAppData: filepath.Join(base, "Local"),
		AppData:      filepath.Join(base, "Roaming"),
	}
	MkdirAll(t, env.LocalAppData)
	MkdirAll(t, env.AppData)
	return env
}

// MakeInstall creates <root>/<dirName>, optionally with Discord.exe inside,
// and returns the install directory.
func MakeInstall(t *testing.T, root, dirName string, withExe bool) string {
	t.Helper()
	dir := filepath.Join(root, dirName)
	MkdirAll(t, filepath.Join(dir, "resources"))
	if withExe {
		WriteFile(t, filepath.Join(dir, "Discord.exe"), "MZ")
	}
	return dir
}

// WriteArchive writes resources/app.asar of an install and returns its path
func WriteArchive(t *testing.T, installDir string, content []byte) string {
	t.Helper()
	path := filepath.Join(installDir, "resources", "app.asar")
	WriteBytes(t, path, content)
	return path
}

// WriteBackup writes resources/_app.asar of an install and returns its path
func WriteBackup(t *testing.T, installDir string) string {
	t.Helper()
	path := filepath.Join(installDir, "resources", "_app.asar")
	WriteBytes(t, path, append(append([]byte{}, asarHeader...), []byte("original discord archive")...))
	return path
}

// EscapeJS doubles backslashes the way they appear inside a JS string literal
func EscapeJS(path string) string {
	return strings.ReplaceAll(path, `\`, `\\`)
}

// PatchedArchive builds archive bytes like the ones the Vencord installer
// writes: a binary header followed by a require() of the loader bundle.
func PatchedArchive(loaderPath string) []byte {
	data := append([]byte{}, asarHeader...)
	data = append(data, []byte(`{"files":{"index.js":{"size":120,"offset":"0"},"package.json":{"size":48,"offset":"120"}}}`)...)
	data = append(data, []byte("// Vencord patcher\nrequire(\""+EscapeJS(loaderPath)+"\");\n")...)
	data = append(data, []byte(`{"name":"discord","main":"index.js"}`)...)
	return data
}

// PlainArchive builds archive bytes with no trace of the mod
func PlainArchive() []byte {
	data := append([]byte{}, asarHeader...)
	data = append(data, []byte(`{"files":{"app_bootstrap":{"files":{}}}}`)...)
	data = append(data, []byte(`require("./app_bootstrap/index.js");`)...)
	return data
}
