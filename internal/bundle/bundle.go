// Package bundle resolves where the Vencord loader bundle lives on disk.
//
// The installer patches Discord's app.asar with a require() of the bundle,
// so that reference is the source of truth. When it is missing or stale the
// resolver falls back to the locations older and newer installers used.
package bundle

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/distantorigin/discord-monitor/internal/logging"
	"github.com/distantorigin/discord-monitor/internal/paths"
)

// MinSize is the smallest loader bundle considered real. patcher.js is about
// 40 KiB and vencord.asar several hundred; anything below is a stub.
const MinSize = 10 * 1024

// ErrNotFound is returned when neither the archive nor the fallbacks yield a bundle
var ErrNotFound = errors.New("vencord bundle not found")

var loaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`require\s*\(\s*"([^"]+\.(?:asar|js))"\s*\)`),
	regexp.MustCompile(`require\s*\(\s*'([^']+\.(?:asar|js))'\s*\)`),
}

// Source tells where a resolved bundle path came from
type Source int

const (
	SourceArchive Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceArchive {
		return "app.asar"
	}
	return "fallback"
}

// Resolution is a bundle path that exists on disk
type Resolution struct {
	Path   string
	Source Source
}

// ExtractLoaderRef finds the loader path in raw archive bytes. Double-quoted
// references are searched first across the whole blob, then single-quoted.
// Escaped backslashes are collapsed so the result is a usable path.
func ExtractLoaderRef(data []byte) (string, bool) {
	for _, pattern := range loaderPatterns {
		match := pattern.FindSubmatch(data)
		if match == nil {
			continue
		}
		ref := strings.ToValidUTF8(string(match[1]), "\uFFFD")
		return strings.ReplaceAll(ref, `\\`, `\`), true
	}
	return "", false
}

// Candidates returns the well-known bundle locations in probe order:
// APPDATA and LOCALAPPDATA Vencord dirs (flat asar, then dist/patcher.js),
// then APPDATA\VencordData. Unset roots are skipped.
func Candidates(r paths.Roots) []string {
	var candidates []string
	add := func(base string) {
		if base == "" {
			return
		}
		candidates = append(candidates,
			paths.Join(base, "vencord.asar"),
			paths.Join(base, "dist", "patcher.js"),
		)
	}

	add(paths.Join(r.AppData, "Vencord"))
	add(paths.Join(r.LocalAppData, "Vencord"))
	add(paths.Join(r.AppData, "VencordData"))

	return candidates
}

// Resolver locates the loader bundle for an installation
type Resolver struct {
	Candidates []string
}

// NewResolver returns a resolver using the standard fallback locations
func NewResolver(r paths.Roots) Resolver {
	return Resolver{Candidates: Candidates(r)}
}

// Resolve returns the bundle referenced by the archive at archivePath if it
// exists, otherwise the first existing fallback. Archive read failures are
// treated like a missing reference.
func (r Resolver) Resolve(archivePath string) (Resolution, error) {
	if ref, ok := r.fromArchive(archivePath); ok {
		if paths.IsFile(ref) {
			return Resolution{Path: ref, Source: SourceArchive}, nil
		}
		logging.Debug("Archive references a missing bundle", logrus.Fields{"path": ref})
	}

	for _, candidate := range r.Candidates {
		if paths.IsFile(candidate) {
			return Resolution{Path: candidate, Source: SourceFallback}, nil
		}
	}

	return Resolution{}, ErrNotFound
}

func (r Resolver) fromArchive(archivePath string) (string, bool) {
	data, err := os.ReadFile(archivePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Warn("Failed to read app.asar", logrus.Fields{"path": archivePath, "error": err})
		}
		return "", false
	}
	return ExtractLoaderRef(data)
}
