package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/distantorigin/discord-monitor/internal/branch"
	"github.com/distantorigin/discord-monitor/internal/bundle"
	"github.com/distantorigin/discord-monitor/internal/install"
	"github.com/distantorigin/discord-monitor/internal/paths"
	"github.com/distantorigin/discord-monitor/internal/process"
	"github.com/distantorigin/discord-monitor/internal/state"
)

const (
	// AppDirName is the per-user data directory under LOCALAPPDATA
	AppDirName = "discord-monitor"

	FileName       = "config.yaml"
	LogFileName    = "discord-monitor.log"
	InstallerName  = "VencordInstallerCli.exe"
	DefaultURL     = "https://github.com/Vencord/Installer/releases/latest/download/" + InstallerName
	DefaultTimeout = 120 * time.Second
	MinTimeout     = time.Second
)

// Config holds every tunable the tool reads at startup
type Config struct {
	HostExecutable string        `yaml:"host_executable"`
	ModToken       string        `yaml:"mod_token"`
	InstallerURL   string        `yaml:"installer_url"`
	InstallerPath  string        `yaml:"installer_path"`
	Branch         string        `yaml:"branch"`
	RepairTimeout  time.Duration `yaml:"repair_timeout"`
	KillTimeout    time.Duration `yaml:"kill_timeout"`
	MinBundleSize  int64         `yaml:"min_bundle_size"`
	Sounds         bool          `yaml:"sounds"`
	LogLevel       string        `yaml:"log_level"`

	// Derived from the environment, never read from the file
	Roots   paths.Roots `yaml:"-"`
	DataDir string      `yaml:"-"`
	LogPath string      `yaml:"-"`
}

// DataDir returns the tool's per-user directory. When LOCALAPPDATA is unset
// it falls back to the home directory's AppData\Local.
func DataDir(r paths.Roots) string {
	if r.LocalAppData != "" {
		return filepath.Join(r.LocalAppData, AppDirName)
	}
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, "AppData", "Local", AppDirName)
}

// DefaultPath returns where Load looks when no --config is given
func DefaultPath(r paths.Roots) string {
	return filepath.Join(DataDir(r), FileName)
}

// Default returns the baseline configuration for the given roots
func Default(r paths.Roots) Config {
	dir := DataDir(r)
	return Config{
		HostExecutable: install.DefaultExecutable,
		ModToken:       state.DefaultToken,
		InstallerURL:   DefaultURL,
		InstallerPath:  filepath.Join(dir, InstallerName),
		Branch:         branch.Auto,
		RepairTimeout:  DefaultTimeout,
		KillTimeout:    process.DefaultKillTimeout,
		MinBundleSize:  bundle.MinSize,
		Sounds:         true,
		LogLevel:       "info",
		Roots:          r,
		DataDir:        dir,
		LogPath:        filepath.Join(dir, LogFileName),
	}
}

// Load overlays the YAML file at path onto base. A missing file is not an
// error; base is returned unchanged.
func Load(path string, base Config) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := base
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Fields tagged "-" survive the overlay, but an emptied string does not
	if strings.TrimSpace(cfg.InstallerPath) == "" {
		cfg.InstallerPath = base.InstallerPath
	}
	if strings.TrimSpace(cfg.HostExecutable) == "" {
		cfg.HostExecutable = base.HostExecutable
	}
	if strings.TrimSpace(cfg.InstallerURL) == "" {
		cfg.InstallerURL = base.InstallerURL
	}
	cfg.Branch = branch.Normalize(cfg.Branch)

	return cfg, nil
}

// Validate reports the first setting the tool cannot run with
func (c Config) Validate() error {
	if !branch.IsKnown(c.Branch) {
		return fmt.Errorf("unknown branch %q (want one of %s)", c.Branch, strings.Join(branch.Known(), ", "))
	}
	// A bare YAML integer decodes as nanoseconds
	if c.RepairTimeout < MinTimeout {
		return fmt.Errorf("repair_timeout must be at least %v (write a duration such as \"120s\"), got %v", MinTimeout, c.RepairTimeout)
	}
	if c.KillTimeout < MinTimeout {
		return fmt.Errorf("kill_timeout must be at least %v (write a duration such as \"5s\"), got %v", MinTimeout, c.KillTimeout)
	}
	if c.MinBundleSize < 0 {
		return fmt.Errorf("min_bundle_size must not be negative, got %d", c.MinBundleSize)
	}
	if c.ModToken == "" {
		return errors.New("mod_token must not be empty")
	}
	if _, err := logrus.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}
