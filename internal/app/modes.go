package app

import (
	"context"
	"strconv"

	"github.com/distantorigin/discord-monitor/internal/console"
	"github.com/distantorigin/discord-monitor/internal/state"
)

// Mode is one command-line action
type Mode int

const (
	ModeStatus Mode = iota
	ModeInstallStartup
	ModeUninstallStartup
	ModeStartup
	ModeRepair
	ModeLaunch
	ModeMonitor
)

func (m Mode) String() string {
	switch m {
	case ModeInstallStartup:
		return "install-startup"
	case ModeUninstallStartup:
		return "uninstall-startup"
	case ModeStartup:
		return "startup"
	case ModeRepair:
		return "repair"
	case ModeLaunch:
		return "launch"
	case ModeMonitor:
		return "monitor"
	default:
		return "status"
	}
}

// Options mirrors the command-line flags
type Options struct {
	InstallStartup   bool
	UninstallStartup bool
	Startup          bool
	Silent           bool
	Repair           bool
	Launch           bool
	Monitor          bool
}

// Mode picks the action. When several flags are set the first one in this
// order wins: install-startup, uninstall-startup, startup, repair, launch,
// monitor.
func (o Options) Mode() Mode {
	switch {
	case o.InstallStartup:
		return ModeInstallStartup
	case o.UninstallStartup:
		return ModeUninstallStartup
	case o.Startup:
		return ModeStartup
	case o.Repair:
		return ModeRepair
	case o.Launch:
		return ModeLaunch
	case o.Monitor:
		return ModeMonitor
	default:
		return ModeStatus
	}
}

// Run executes mode
func (a *App) Run(ctx context.Context, mode Mode) {
	switch mode {
	case ModeInstallStartup:
		a.InstallStartup()
	case ModeUninstallStartup:
		a.UninstallStartup()
	case ModeStartup:
		a.RunStartup(ctx)
	case ModeRepair:
		a.RunRepair(ctx)
	case ModeLaunch:
		a.RunLaunch()
	case ModeMonitor:
		a.RunStatus(true)
	default:
		a.RunStatus(false)
	}
}

// verdictPanel returns the panel body and tone for a report
func verdictPanel(r state.Report) (string, console.Tone) {
	switch r.Verdict {
	case state.Valid:
		return "[OK] Vencord is valid and working", console.ToneSuccess
	case state.Broken:
		return "[!] Vencord is broken (" + r.Reason + ") - run with --repair", console.ToneWarn
	default:
		return "[X] Vencord is not installed", console.ToneError
	}
}

// InstallStartup writes the startup script
func (a *App) InstallStartup() bool {
	existed := a.Startup.Installed()
	if err := a.Startup.Install(); err != nil {
		a.Out.Error("Failed to create startup entry: %v", err)
		return false
	}
	if existed {
		a.Out.Success("Replaced existing startup entry: %s", a.Startup.ScriptPath())
	} else {
		a.Out.Success("Startup entry created: %s", a.Startup.ScriptPath())
	}
	return true
}

// UninstallStartup removes the startup script
func (a *App) UninstallStartup() bool {
	removed, err := a.Startup.Uninstall()
	if err != nil {
		a.Out.Error("Failed to remove startup entry: %v", err)
		return false
	}
	if !removed {
		a.Out.Warn("No startup entry found.")
		return false
	}
	a.Out.Success("Removed: %s", a.Startup.ScriptPath())
	return true
}

// RunStartup repairs a broken mod and then launches Discord
func (a *App) RunStartup(ctx context.Context) {
	if _, err := a.Locator.Locate(); err != nil {
		a.Out.Error("Discord is not installed.")
		return
	}

	switch report := a.Inspector.Inspect(); report.Verdict {
	case state.Broken:
		a.Out.Warn("Broken Vencord detected. Repairing...")
		if a.runRepair(ctx).OK() {
			a.Out.Success("Vencord repaired.")
		}
	case state.Absent:
		a.Out.Dim("Vencord is not installed. Launching stock Discord.")
	}

	a.Out.Dim("Launching Discord...")
	if a.LaunchHost() {
		a.Out.Success("Discord launched.")
	}
}

// RunRepair repairs only when the mod is installed but broken
func (a *App) RunRepair(ctx context.Context) {
	report := a.Inspector.Inspect()
	switch report.Verdict {
	case state.Valid:
		a.Out.Success("Vencord is already valid. No repair needed.")
		return
	case state.Absent:
		a.Out.Warn("Vencord is not installed. Use the Vencord installer for a first-time install.")
		return
	}

	a.Out.Warn("Broken Vencord detected (%s). Starting repair...", report.Reason)
	if !a.runRepair(ctx).OK() {
		return
	}

	after := a.Inspector.Inspect()
	if after.Verdict == state.Valid {
		a.Out.Success("Vencord was repaired successfully.")
		return
	}
	a.Out.Warn("The installer finished but Vencord is still %s (%s).", after.Verdict, after.Reason)
}

// RunLaunch shows the mod status and launches Discord regardless
func (a *App) RunLaunch() {
	report := a.Inspector.Inspect()
	body, tone := verdictPanel(report)
	a.Out.Panel("Vencord Check", body, tone)

	switch report.Verdict {
	case state.Broken:
		a.Out.Warn("Run with --repair to fix Vencord.")
	case state.Absent:
		a.Out.Warn("Warning: Discord will start without Vencord. Reinstall Vencord if needed.")
	}

	a.Out.Dim("Launching Discord...")
	if a.LaunchHost() {
		a.Out.Success("Discord has been launched.")
	}
}

// RunStatus prints whether Discord runs and the mod verdict, and with
// monitor the matching processes.
func (a *App) RunStatus(monitor bool) {
	if a.Processes.IsRunning() {
		a.Out.Panel("Discord Status", a.HostName+": [OK] Running", console.ToneSuccess)
	} else {
		a.Out.Panel("Discord Status", a.HostName+": [X] Not running", console.ToneError)
	}

	body, tone := verdictPanel(a.Inspector.Inspect())
	a.Out.Panel("Vencord", body, tone)

	if monitor {
		a.monitor()
	}
}

func (a *App) monitor() {
	procs := a.Processes.List()
	rows := make([][]string, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, []string{strconv.Itoa(int(p.PID)), p.Name, p.Status})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"-", "No " + a.HostName + " process", "-"})
	}
	a.Out.Table("Discord Process Monitor", []string{"PID", "Name", "Status"}, rows)
}
