// Package app implements the command-line modes on top of the detection,
// repair and process packages.
package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/distantorigin/discord-monitor/internal/audio"
	"github.com/distantorigin/discord-monitor/internal/bundle"
	"github.com/distantorigin/discord-monitor/internal/config"
	"github.com/distantorigin/discord-monitor/internal/console"
	"github.com/distantorigin/discord-monitor/internal/download"
	"github.com/distantorigin/discord-monitor/internal/install"
	"github.com/distantorigin/discord-monitor/internal/logging"
	"github.com/distantorigin/discord-monitor/internal/process"
	"github.com/distantorigin/discord-monitor/internal/repair"
	"github.com/distantorigin/discord-monitor/internal/startup"
	"github.com/distantorigin/discord-monitor/internal/state"
)

// Locator finds the Discord installation
type Locator interface {
	Locate() (install.Install, error)
}

// Inspector classifies the installation
type Inspector interface {
	Inspect() state.Report
}

// Processes queries and starts the host app
type Processes interface {
	IsRunning() bool
	List() []process.Info
	Launch(dir, exe string) error
}

// Repairer runs the installer
type Repairer interface {
	Run(ctx context.Context) repair.Result
}

// Registrar manages the startup entry
type Registrar interface {
	Installed() bool
	Install() error
	Uninstall() (bool, error)
	ScriptPath() string
}

// App holds the collaborators every mode needs
type App struct {
	HostName  string
	Out       console.Sink
	Locator   Locator
	Inspector Inspector
	Processes Processes
	Repairer  Repairer
	Startup   Registrar
	Sound     func(audio.Cue)
}

// New wires the real components from cfg. exe is this tool's own path,
// written into the startup script.
func New(cfg config.Config, exe string, silent bool) *App {
	var out console.Sink = console.Silent{}
	if !silent {
		out = console.NewTerminal()
	}

	locator := install.NewLocator(cfg.Roots, cfg.HostExecutable)

	classifier := state.NewClassifier(locator, bundle.NewResolver(cfg.Roots))
	classifier.Token = cfg.ModToken
	classifier.MinBundleSize = cfg.MinBundleSize

	procs := process.New(cfg.HostExecutable)
	procs.KillTimeout = cfg.KillTimeout

	fetcher := download.Fetcher{}
	if !silent {
		fetcher.Progress = progressReporter(out)
	}

	coord := &repair.Coordinator{
		InstallerURL:  cfg.InstallerURL,
		InstallerPath: cfg.InstallerPath,
		Branch:        cfg.Branch,
		Timeout:       cfg.RepairTimeout,
		Processes:     procs,
		Fetch:         fetcher,
		Exec:          repair.ExecRunner{Capture: silent},
		Out:           out,
	}

	audio.Init(cfg.Sounds && !silent)

	return &App{
		HostName:  cfg.HostExecutable,
		Out:       out,
		Locator:   locator,
		Inspector: classifier,
		Processes: procs,
		Repairer:  coord,
		Startup:   startup.NewRegistrar(cfg.Roots, exe),
		Sound:     audio.Play,
	}
}

// progressReporter prints download progress in quarter steps
func progressReporter(out console.Sink) download.ProgressCallback {
	next := 25
	return func(done, total int64, pct int) {
		for pct >= next && next <= 100 {
			out.Dim("  %d%% (%d / %d bytes)", next, done, total)
			next += 25
		}
	}
}

func (a *App) cue(ok bool) {
	if a.Sound == nil {
		return
	}
	if ok {
		a.Sound(audio.Success)
	} else {
		a.Sound(audio.Failure)
	}
}

// runRepair runs the installer and plays the matching cue
func (a *App) runRepair(ctx context.Context) repair.Result {
	res := a.Repairer.Run(ctx)
	a.cue(res.OK())
	return res
}

// LaunchHost starts Discord from its install directory
func (a *App) LaunchHost() bool {
	inst, err := a.Locator.Locate()
	if err != nil {
		a.Out.Error("Discord was not found on this system.")
		return false
	}

	if err := a.Processes.Launch(inst.Dir, inst.Executable); err != nil {
		a.Out.Error("Failed to launch Discord: %v", err)
		logging.Error("Launch failed", logrus.Fields{"error": err, "dir": inst.Dir})
		return false
	}

	logging.Info("Launched Discord", logrus.Fields{"executable": inst.Executable, "version": inst.Version.String()})
	return true
}
