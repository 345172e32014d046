package state

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/distantorigin/discord-monitor/internal/bundle"
	"github.com/distantorigin/discord-monitor/internal/install"
	"github.com/distantorigin/discord-monitor/internal/logging"
	"github.com/distantorigin/discord-monitor/internal/paths"
)

// DefaultToken is the identifier the mod leaves inside a patched app.asar
const DefaultToken = "Vencord"

// Verdict is the installation state of the mod
type Verdict int

const (
	// Absent means Discord is missing or its archive carries no trace of the mod.
	Absent Verdict = iota
	// Broken means the mod is referenced but the installation is incomplete.
	Broken
	// Valid means the mod is referenced, backed up, and its bundle is intact.
	Valid
)

func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Broken:
		return "broken"
	default:
		return "absent"
	}
}

// Present reports whether the mod is referenced at all
func (v Verdict) Present() bool {
	return v != Absent
}

// Locator finds the Discord installation
type Locator interface {
	Locate() (install.Install, error)
}

// BundleResolver finds the loader bundle referenced by an archive
type BundleResolver interface {
	Resolve(archivePath string) (bundle.Resolution, error)
}

// Report is a verdict together with the evidence behind it
type Report struct {
	Verdict Verdict
	Install install.Install
	Bundle  bundle.Resolution
	// BundleSize is only set when a bundle was resolved.
	BundleSize int64
	Reason     string
	// Err holds an unexpected I/O failure, if one decided the verdict.
	Err error
}

// Classifier derives the verdict from the filesystem on every call
type Classifier struct {
	Locator       Locator
	Resolver      BundleResolver
	Token         string
	MinBundleSize int64
}

// NewClassifier returns a classifier with the default token and size threshold
func NewClassifier(l Locator, r BundleResolver) *Classifier {
	return &Classifier{
		Locator:       l,
		Resolver:      r,
		Token:         DefaultToken,
		MinBundleSize: bundle.MinSize,
	}
}

// Classify returns the current verdict
func (c *Classifier) Classify() Verdict {
	return c.Inspect().Verdict
}

// Inspect classifies the installation and explains the result
func (c *Classifier) Inspect() Report {
	report := c.inspect()
	fields := logrus.Fields{"verdict": report.Verdict.String(), "reason": report.Reason}
	if report.Err != nil {
		fields["error"] = report.Err
		logging.Warn("Classified installation", fields)
	} else {
		logging.Debug("Classified installation", fields)
	}
	return report
}

func (c *Classifier) inspect() Report {
	inst, err := c.Locator.Locate()
	if err != nil {
		return Report{Verdict: Absent, Reason: "discord not installed"}
	}
	report := Report{Install: inst}

	data, err := os.ReadFile(inst.ArchivePath())
	if err != nil {
		report.Verdict = Absent
		if errors.Is(err, os.ErrNotExist) {
			report.Reason = "app.asar missing"
		} else {
			report.Reason = "app.asar unreadable"
			report.Err = fmt.Errorf("failed to read app.asar: %w", err)
		}
		return report
	}

	if !ContainsToken(data, c.Token) {
		report.Verdict = Absent
		report.Reason = "app.asar does not reference the mod"
		return report
	}

	// Present from here on; the rest decides valid or broken.
	report.Verdict = Broken

	if !paths.Exists(inst.BackupPath()) {
		report.Reason = "_app.asar backup missing"
		return report
	}

	res, err := c.Resolver.Resolve(inst.ArchivePath())
	if err != nil {
		report.Reason = "loader bundle not found"
		return report
	}
	report.Bundle = res

	size, err := paths.FileSize(res.Path)
	if err != nil {
		report.Reason = "loader bundle unreadable"
		report.Err = fmt.Errorf("failed to stat bundle: %w", err)
		return report
	}
	report.BundleSize = size

	if size < c.MinBundleSize {
		report.Reason = fmt.Sprintf("loader bundle too small (%d bytes)", size)
		return report
	}

	report.Verdict = Valid
	report.Reason = "ok"
	return report
}

// ContainsToken reports whether data mentions token, either ignoring ASCII
// case or in its exact spelling.
func ContainsToken(data []byte, token string) bool {
	if token == "" {
		return false
	}
	if bytes.Contains(data, []byte(token)) {
		return true
	}
	return bytes.Contains(asciiLower(data), asciiLower([]byte(token)))
}

// asciiLower folds A-Z only, leaving every other byte untouched so binary
// content keeps its length.
func asciiLower(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}
