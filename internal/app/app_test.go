package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distantorigin/discord-monitor/internal/audio"
	"github.com/distantorigin/discord-monitor/internal/config"
	"github.com/distantorigin/discord-monitor/internal/console"
	"github.com/distantorigin/discord-monitor/internal/install"
	"github.com/distantorigin/discord-monitor/internal/paths"
	"github.com/distantorigin/discord-monitor/internal/process"
	"github.com/distantorigin/discord-monitor/internal/repair"
	"github.com/distantorigin/discord-monitor/internal/startup"
	"github.com/distantorigin/discord-monitor/internal/state"
	testutil "github.com/distantorigin/discord-monitor/testing"
)

type fakeLocator struct {
	inst install.Install
	err  error
}

func (f fakeLocator) Locate() (install.Install, error) { return f.inst, f.err }

// fakeInspector returns reports in order, repeating the last one
type fakeInspector struct {
	reports []state.Report
	calls   int
}

func (f *fakeInspector) Inspect() state.Report {
	i := f.calls
	if i >= len(f.reports) {
		i = len(f.reports) - 1
	}
	f.calls++
	return f.reports[i]
}

type fakeProcesses struct {
	running   bool
	list      []process.Info
	launchErr error
	launched  []string
}

func (f *fakeProcesses) IsRunning() bool { return f.running }
func (f *fakeProcesses) List() []process.Info { return f.list }
func (f *fakeProcesses) Launch(dir, exe string) error {
	if f.launchErr != nil {
		return f.launchErr
	}
	f.launched = append(f.launched, exe)
	return nil
}

type fakeRepairer struct {
	result repair.Result
	calls  int
}

func (f *fakeRepairer) Run(ctx context.Context) repair.Result {
	f.calls++
	return f.result
}

type harness struct {
	app      *App
	out      *console.Buffer
	inspect  *fakeInspector
	procs    *fakeProcesses
	repairer *fakeRepairer
	cues     []audio.Cue
}

func newHarness(t *testing.T, verdicts ...state.Verdict) *harness {
	t.Helper()
	reports := make([]state.Report, 0, len(verdicts))
	for _, v := range verdicts {
		reports = append(reports, state.Report{Verdict: v, Reason: "test reason"})
	}

	h := &harness{
		out:      console.NewBuffer(),
		inspect:  &fakeInspector{reports: reports},
		procs:    &fakeProcesses{},
		repairer: &fakeRepairer{result: repair.Result{Outcome: repair.Succeeded}},
	}
	h.app = &App{
		HostName:  "Discord.exe",
		Out:       h.out,
		Locator:   fakeLocator{inst: install.Install{Dir: `C:\Discord\app-1.0.9200`, Executable: `C:\Discord\app-1.0.9200\Discord.exe`}},
		Inspector: h.inspect,
		Processes: h.procs,
		Repairer:  h.repairer,
		Startup:   startup.Registrar{Folder: t.TempDir(), Executable: `C:\Tools\discord-monitor.exe`},
		Sound:     func(c audio.Cue) { h.cues = append(h.cues, c) },
	}
	return h
}

func TestOptionsMode_Priority(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want Mode
	}{
		{"none", Options{}, ModeStatus},
		{"monitor", Options{Monitor: true}, ModeMonitor},
		{"launch beats monitor", Options{Launch: true, Monitor: true}, ModeLaunch},
		{"repair beats launch", Options{Repair: true, Launch: true}, ModeRepair},
		{"startup beats repair", Options{Startup: true, Repair: true, Silent: true}, ModeStartup},
		{"uninstall beats startup", Options{UninstallStartup: true, Startup: true}, ModeUninstallStartup},
		{"install beats everything", Options{InstallStartup: true, UninstallStartup: true, Monitor: true}, ModeInstallStartup},
		{"silent alone is status", Options{Silent: true}, ModeStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.Mode())
		})
	}
}

func TestRunStartup_BrokenRepairsThenLaunches(t *testing.T) {
	h := newHarness(t, state.Broken)

	h.app.Run(context.Background(), ModeStartup)

	assert.Equal(t, 1, h.repairer.calls)
	assert.Equal(t, []audio.Cue{audio.Success}, h.cues)
	assert.Len(t, h.procs.launched, 1)
	assert.True(t, h.out.Contains("Vencord repaired."))
	assert.True(t, h.out.Contains("Discord launched."))
}

func TestRunStartup_FailedRepairStillLaunches(t *testing.T) {
	h := newHarness(t, state.Broken)
	h.repairer.result = repair.Result{Outcome: repair.TimedOut}

	h.app.RunStartup(context.Background())

	assert.Equal(t, []audio.Cue{audio.Failure}, h.cues)
	assert.False(t, h.out.Contains("Vencord repaired."))
	assert.Len(t, h.procs.launched, 1)
}

func TestRunStartup_AbsentLaunchesStock(t *testing.T) {
	h := newHarness(t, state.Absent)

	h.app.RunStartup(context.Background())

	assert.Zero(t, h.repairer.calls)
	assert.True(t, h.out.Contains("Launching stock Discord"))
	assert.Len(t, h.procs.launched, 1)
}

func TestRunStartup_ValidOnlyLaunches(t *testing.T) {
	h := newHarness(t, state.Valid)

	h.app.RunStartup(context.Background())

	assert.Zero(t, h.repairer.calls)
	assert.Len(t, h.procs.launched, 1)
}

func TestRunStartup_NotInstalled(t *testing.T) {
	h := newHarness(t, state.Absent)
	h.app.Locator = fakeLocator{err: install.ErrNotFound}

	h.app.RunStartup(context.Background())

	assert.Zero(t, h.inspect.calls)
	assert.Empty(t, h.procs.launched)
	assert.True(t, h.out.Contains("Discord is not installed."))
}

func TestRunRepair_Gating(t *testing.T) {
	tests := []struct {
		name        string
		verdicts    []state.Verdict
		wantRepairs int
		wantText    string
	}{
		{"valid needs nothing", []state.Verdict{state.Valid}, 0, "already valid"},
		{"absent points at installer", []state.Verdict{state.Absent}, 0, "first-time install"},
		{"broken then valid", []state.Verdict{state.Broken, state.Valid}, 1, "repaired successfully"},
		{"broken stays broken", []state.Verdict{state.Broken, state.Broken}, 1, "still broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.verdicts...)

			h.app.Run(context.Background(), ModeRepair)

			assert.Equal(t, tt.wantRepairs, h.repairer.calls)
			assert.True(t, h.out.Contains(tt.wantText), "output: %+v", h.out.Entries())
			assert.Empty(t, h.procs.launched, "repair mode never launches")
		})
	}
}

func TestRunRepair_FailureSkipsRecheck(t *testing.T) {
	h := newHarness(t, state.Broken, state.Valid)
	h.repairer.result = repair.Result{Outcome: repair.InstallerFailed, ExitCode: 1}

	h.app.RunRepair(context.Background())

	assert.Equal(t, 1, h.inspect.calls)
	assert.Equal(t, []audio.Cue{audio.Failure}, h.cues)
	assert.False(t, h.out.Contains("repaired successfully"))
}

func TestRunLaunch_Panels(t *testing.T) {
	tests := []struct {
		verdict  state.Verdict
		tone     console.Tone
		wantWarn string
	}{
		{state.Valid, console.ToneSuccess, ""},
		{state.Broken, console.ToneWarn, "--repair"},
		{state.Absent, console.ToneError, "without Vencord"},
	}

	for _, tt := range tests {
		t.Run(tt.verdict.String(), func(t *testing.T) {
			h := newHarness(t, tt.verdict)

			h.app.Run(context.Background(), ModeLaunch)

			panels := h.out.Kind("panel")
			require.Len(t, panels, 1)
			assert.Equal(t, tt.tone, panels[0].Tone)
			assert.Contains(t, panels[0].Text, "Vencord Check")

			warns := h.out.Kind("warn")
			if tt.wantWarn == "" {
				assert.Empty(t, warns)
			} else {
				require.Len(t, warns, 1)
				assert.Contains(t, warns[0].Text, tt.wantWarn)
			}
			assert.True(t, h.out.Contains("Discord has been launched."))
		})
	}
}

func TestLaunchHost_Failures(t *testing.T) {
	h := newHarness(t, state.Valid)
	h.app.Locator = fakeLocator{err: install.ErrNotFound}
	assert.False(t, h.app.LaunchHost())
	assert.True(t, h.out.Contains("not found"))

	h = newHarness(t, state.Valid)
	h.procs.launchErr = errors.New("access denied")
	assert.False(t, h.app.LaunchHost())
	assert.True(t, h.out.Contains("access denied"))
}

func TestRunStatus(t *testing.T) {
	h := newHarness(t, state.Broken)
	h.procs.running = true

	h.app.Run(context.Background(), ModeStatus)

	panels := h.out.Kind("panel")
	require.Len(t, panels, 2)
	assert.Contains(t, panels[0].Text, "Discord.exe: [OK] Running")
	assert.Equal(t, console.ToneSuccess, panels[0].Tone)
	assert.Contains(t, panels[1].Text, "test reason")
	assert.Equal(t, console.ToneWarn, panels[1].Tone)
	assert.Empty(t, h.out.Kind("table"))
}

func TestRunStatus_Monitor(t *testing.T) {
	h := newHarness(t, state.Valid)
	h.procs.running = true
	h.procs.list = []process.Info{{PID: 4242, Name: "Discord.exe", Status: "running"}}

	h.app.Run(context.Background(), ModeMonitor)

	tables := h.out.Kind("table")
	require.Len(t, tables, 1)
	assert.Equal(t, [][]string{{"PID", "Name", "Status"}, {"4242", "Discord.exe", "running"}}, tables[0].Rows)
}

func TestRunStatus_MonitorEmpty(t *testing.T) {
	h := newHarness(t, state.Absent)

	h.app.RunStatus(true)

	panels := h.out.Kind("panel")
	require.Len(t, panels, 2)
	assert.Contains(t, panels[0].Text, "[X] Not running")

	tables := h.out.Kind("table")
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"-", "No Discord.exe process", "-"}, tables[0].Rows[1])
}

func TestStartupModes(t *testing.T) {
	h := newHarness(t, state.Valid)
	script := h.app.Startup.ScriptPath()

	h.app.Run(context.Background(), ModeInstallStartup)
	testutil.AssertFileContent(t, script, startup.Script(`C:\Tools\discord-monitor.exe`))
	assert.True(t, h.out.Contains("Startup entry created"))

	assert.True(t, h.app.UninstallStartup())
	testutil.AssertFileNotExists(t, script)

	assert.False(t, h.app.UninstallStartup())
	assert.True(t, h.out.Contains("No startup entry found."))
}

func TestInstallStartup_ReplacesExisting(t *testing.T) {
	h := newHarness(t, state.Valid)
	testutil.WriteFile(t, h.app.Startup.ScriptPath(), "stale")

	assert.True(t, h.app.InstallStartup())
	assert.True(t, h.out.Contains("Replaced existing startup entry"))
	assert.False(t, h.out.Contains("Startup entry created"))
	testutil.AssertFileContent(t, h.app.Startup.ScriptPath(), startup.Script(`C:\Tools\discord-monitor.exe`))
}

func TestInstallStartup_NoFolder(t *testing.T) {
	h := newHarness(t, state.Valid)
	h.app.Startup = startup.Registrar{Executable: "x"}

	assert.False(t, h.app.InstallStartup())
	assert.Len(t, h.out.Kind("error"), 1)
}

func TestProgressReporter(t *testing.T) {
	out := console.NewBuffer()
	report := progressReporter(out)

	report(10, 100, 10)
	report(30, 100, 30)
	report(80, 100, 80)
	report(100, 100, 100)
	report(100, 100, 100)

	dims := out.Kind("dim")
	require.Len(t, dims, 4)
	assert.Contains(t, dims[0].Text, "25%")
	assert.Contains(t, dims[3].Text, "100%")
}

func TestNew_WiresConfig(t *testing.T) {
	base := t.TempDir()
	r := paths.Roots{LocalAppData: filepath.Join(base, "Local"), AppData: filepath.Join(base, "Roaming")}
	cfg := config.Default(r)
	cfg.Sounds = true

	a := New(cfg, `C:\Tools\discord-monitor.exe`, true)

	assert.IsType(t, console.Silent{}, a.Out)
	assert.False(t, audio.Enabled(), "silent runs never play sounds")
	assert.Equal(t, "Discord.exe", a.HostName)

	coord, ok := a.Repairer.(*repair.Coordinator)
	require.True(t, ok)
	assert.Equal(t, cfg.InstallerPath, coord.InstallerPath)
	assert.Equal(t, cfg.RepairTimeout, coord.Timeout)
	assert.Equal(t, repair.ExecRunner{Capture: true}, coord.Exec)

	// Nothing is installed under the temp roots
	assert.Equal(t, state.Absent, a.Inspector.Inspect().Verdict)
}
