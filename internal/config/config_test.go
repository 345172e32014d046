package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distantorigin/discord-monitor/internal/paths"
	testutil "github.com/distantorigin/discord-monitor/testing"
)

func testRoots(t *testing.T) paths.Roots {
	t.Helper()
	base := t.TempDir()
	return paths.Roots{
		LocalAppData: filepath.Join(base, "Local"),
		AppData:      filepath.Join(base, "Roaming"),
	}
}

func TestDefault(t *testing.T) {
	r := testRoots(t)
	cfg := Default(r)

	dir := filepath.Join(r.LocalAppData, "discord-monitor")
	assert.Equal(t, "Discord.exe", cfg.HostExecutable)
	assert.Equal(t, "Vencord", cfg.ModToken)
	assert.Equal(t, "https://github.com/Vencord/Installer/releases/latest/download/VencordInstallerCli.exe", cfg.InstallerURL)
	assert.Equal(t, filepath.Join(dir, "VencordInstallerCli.exe"), cfg.InstallerPath)
	assert.Equal(t, filepath.Join(dir, "discord-monitor.log"), cfg.LogPath)
	assert.Equal(t, "auto", cfg.Branch)
	assert.Equal(t, 120*time.Second, cfg.RepairTimeout)
	assert.Equal(t, 5*time.Second, cfg.KillTimeout)
	assert.Equal(t, int64(10*1024), cfg.MinBundleSize)
	assert.True(t, cfg.Sounds)
	assert.Equal(t, r, cfg.Roots)
	require.NoError(t, cfg.Validate())
}

func TestDataDir_HomeFallback(t *testing.T) {
	dir := DataDir(paths.Roots{})
	assert.Equal(t, "discord-monitor", filepath.Base(dir))
	assert.NotEmpty(t, filepath.Dir(dir))
}

func TestLoad_MissingFileReturnsBase(t *testing.T) {
	base := Default(testRoots(t))

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), base)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}

func TestLoad_Overlay(t *testing.T) {
	r := testRoots(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	testutil.WriteFile(t, path, `
branch: " Canary "
repair_timeout: 90s
kill_timeout: 2s
sounds: false
log_level: debug
min_bundle_size: 2048
`)

	cfg, err := Load(path, Default(r))
	require.NoError(t, err)

	assert.Equal(t, "canary", cfg.Branch)
	assert.Equal(t, 90*time.Second, cfg.RepairTimeout)
	assert.Equal(t, 2*time.Second, cfg.KillTimeout)
	assert.False(t, cfg.Sounds)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(2048), cfg.MinBundleSize)

	// Untouched keys keep their defaults
	assert.Equal(t, "Discord.exe", cfg.HostExecutable)
	assert.Equal(t, r, cfg.Roots)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EmptyStringsKeepDefaults(t *testing.T) {
	base := Default(testRoots(t))
	path := filepath.Join(t.TempDir(), "config.yaml")
	testutil.WriteFile(t, path, "installer_path: \"\"\nhost_executable: \"\"\ninstaller_url: \"\"\nbranch: \"\"\n")

	cfg, err := Load(path, base)
	require.NoError(t, err)
	assert.Equal(t, base.InstallerPath, cfg.InstallerPath)
	assert.Equal(t, base.HostExecutable, cfg.HostExecutable)
	assert.Equal(t, base.InstallerURL, cfg.InstallerURL)
	assert.Equal(t, "auto", cfg.Branch)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	testutil.WriteFile(t, path, "branch: [unclosed\n")

	_, err := Load(path, Default(testRoots(t)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	testutil.WriteFile(t, path, "repair_timeout: soon\n")

	_, err := Load(path, Default(testRoots(t)))
	require.Error(t, err)
}

// TestLoad_TimeoutNeedsUnit tests that timeouts without a usable unit never reach the coordinator
func TestLoad_TimeoutNeedsUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	testutil.WriteFile(t, path, "repair_timeout: 120\n")

	_, err := Load(path, Default(testRoots(t)))
	require.Error(t, err, "bare integer must not decode as nanoseconds")

	testutil.WriteFile(t, path, "repair_timeout: 120ns\nkill_timeout: 5s\n")
	cfg, err := Load(path, Default(testRoots(t)))
	require.NoError(t, err)
	assert.Equal(t, 120*time.Nanosecond, cfg.RepairTimeout)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repair_timeout")
	assert.Contains(t, err.Error(), "120s")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown branch", func(c *Config) { c.Branch = "nightly" }, "unknown branch"},
		{"zero repair timeout", func(c *Config) { c.RepairTimeout = 0 }, "repair_timeout"},
		{"negative kill timeout", func(c *Config) { c.KillTimeout = -time.Second }, "kill_timeout"},
		{"sub-second repair timeout", func(c *Config) { c.RepairTimeout = 500 * time.Millisecond }, "at least 1s"},
		{"sub-second kill timeout", func(c *Config) { c.KillTimeout = 999 * time.Millisecond }, "kill_timeout"},
		{"one second timeouts allowed", func(c *Config) { c.RepairTimeout, c.KillTimeout = time.Second, time.Second }, ""},
		{"negative bundle size", func(c *Config) { c.MinBundleSize = -1 }, "min_bundle_size"},
		{"empty token", func(c *Config) { c.ModToken = "" }, "mod_token"},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }, "log_level"},
		{"valid ptb", func(c *Config) { c.Branch = "ptb" }, ""},
		{"zero bundle size allowed", func(c *Config) { c.MinBundleSize = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(testRoots(t))
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
