package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/distantorigin/discord-monitor/internal/app"
	"github.com/distantorigin/discord-monitor/internal/audio"
	"github.com/distantorigin/discord-monitor/internal/config"
	"github.com/distantorigin/discord-monitor/internal/console"
	"github.com/distantorigin/discord-monitor/internal/logging"
	"github.com/distantorigin/discord-monitor/internal/paths"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

type rootFlags struct {
	opts       app.Options
	configPath string
	logLevel   string
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			reportPanic(r, os.Stderr)
			os.Exit(1)
		}
	}()

	flags := &rootFlags{}
	if err := newRootCmd(flags, run).ExecuteContext(context.Background()); err != nil {
		reportError(flags, paths.FromEnv(), err, os.Stderr)
		os.Exit(1)
	}
}

// reportPanic cuts off any cue still playing before sounding the failure
func reportPanic(r any, stderr io.Writer) {
	fmt.Fprintf(stderr, "\nOops, something broke: %v\n", r)
	fmt.Fprintln(stderr, "Check the log file for details.")
	logging.Error("Panic", logrus.Fields{"panic": fmt.Sprint(r)})
	audio.StopAll()
	audio.Play(audio.Failure)
}

// isSilent reports whether the run must not print anything
func isSilent(flags *rootFlags) bool {
	return flags.opts.Silent && flags.opts.Mode() == app.ModeStartup
}

// reportError tells the user why the run stopped. Silent startup runs only
// record it in the diagnostic log at its default location.
func reportError(flags *rootFlags, roots paths.Roots, err error, stderr io.Writer) {
	if !isSilent(flags) {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return
	}

	closer, logErr := logging.Init(config.Default(roots).LogPath, "info")
	if logErr != nil {
		return
	}
	logging.Error("Startup run aborted", logrus.Fields{"error": err})
	_ = closer.Close()
	logging.InitWriter(io.Discard, "info")
}

func newRootCmd(flags *rootFlags, runFn func(*cobra.Command, *rootFlags) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "discord-monitor",
		Short:         "Check, repair and launch Discord with Vencord",
		Long:          "Detects whether Vencord is installed and intact in the newest Discord install, repairs it with the Vencord installer, and launches Discord.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFn(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&flags.opts.InstallStartup, "install-startup", false, "Run this tool at Windows sign-in")
	f.BoolVar(&flags.opts.UninstallStartup, "uninstall-startup", false, "Remove the sign-in entry")
	f.BoolVar(&flags.opts.Startup, "startup", false, "Repair Vencord if broken, then launch Discord")
	f.BoolVar(&flags.opts.Silent, "silent", false, "With --startup, print nothing")
	f.BoolVar(&flags.opts.Repair, "repair", false, "Repair a broken Vencord install")
	f.BoolVar(&flags.opts.Launch, "launch", false, "Show Vencord status and launch Discord")
	f.BoolVar(&flags.opts.Monitor, "monitor", false, "Also list running Discord processes")
	f.StringVar(&flags.configPath, "config", "", "Path to config.yaml")
	f.StringVar(&flags.logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")

	return cmd
}

// loadConfig resolves defaults, the config file and flag overrides
func loadConfig(flags *rootFlags, roots paths.Roots) (config.Config, error) {
	path := flags.configPath
	if path == "" {
		path = config.DefaultPath(roots)
	}

	cfg, err := config.Load(path, config.Default(roots))
	if err != nil {
		return config.Config{}, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags, paths.FromEnv())
	if err != nil {
		return err
	}

	mode := flags.opts.Mode()
	// --silent only applies to startup mode
	silent := isSilent(flags)

	if !silent {
		console.Attach()
		_ = console.SetTitle("Discord Monitor")
	}

	closer, err := logging.Init(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		if !silent {
			fmt.Fprintf(os.Stderr, "Warning: diagnostic log disabled: %v\n", err)
		}
	} else {
		defer closer.Close()
	}

	exe := resolveExecutable(os.Executable, silent, os.Stderr)

	logging.Info("Starting", logrus.Fields{"version": version, "mode": mode.String(), "silent": silent})

	a := app.New(cfg, exe, silent)
	a.Run(cmd.Context(), mode)

	logging.Debug("Finished", logrus.Fields{"mode": mode.String()})

	// A console we allocated ourselves vanishes on exit
	if !silent && console.Allocated() {
		console.WaitForKey(os.Stdout, os.Stdin, "\nPress Enter to close...")
	}
	return nil
}

// resolveExecutable returns the real path of this binary, or "" when the OS
// cannot tell us. The startup entry needs it.
func resolveExecutable(lookup func() (string, error), silent bool, stderr io.Writer) string {
	exe, err := lookup()
	if err != nil {
		logging.Warn("Cannot determine own executable path", logrus.Fields{"error": err})
		if !silent {
			fmt.Fprintf(stderr, "Warning: cannot determine this program's path: %v\n", err)
		}
		return ""
	}
	if resolved, evalErr := filepath.EvalSymlinks(exe); evalErr == nil {
		exe = resolved
	}
	return exe
}
