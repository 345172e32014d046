//go:generate mockgen -destination=./mocks/repair.go . Killer,Fetcher,Runner

// Package repair drives the external mod installer: fetch it once, stop the
// host app, run it with a bounded timeout and report what happened.
package repair

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/distantorigin/discord-monitor/internal/branch"
	"github.com/distantorigin/discord-monitor/internal/console"
	"github.com/distantorigin/discord-monitor/internal/logging"
	"github.com/distantorigin/discord-monitor/internal/paths"
)

// DefaultTimeout bounds a single installer run
const DefaultTimeout = 120 * time.Second

// Outcome classifies how a repair ended
type Outcome int

const (
	Succeeded Outcome = iota
	DownloadFailed
	SpawnFailed
	InstallerFailed
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case DownloadFailed:
		return "download failed"
	case SpawnFailed:
		return "spawn failed"
	case InstallerFailed:
		return "installer failed"
	case TimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes one repair attempt
type Result struct {
	Outcome    Outcome
	ExitCode   int
	Err        error
	Downloaded bool // installer was fetched during this attempt
	Killed     bool // at least one host process was terminated
	Output     string
}

// OK reports whether the installer ran and exited 0
func (r Result) OK() bool {
	return r.Outcome == Succeeded
}

// Killer stops every running host process
type Killer interface {
	KillAll() bool
}

// Fetcher downloads url to targetPath
type Fetcher interface {
	Fetch(url, targetPath string) error
}

// Runner executes the installer. A non-zero exit code is not an error;
// err is reserved for spawn failures and ctx expiry.
type Runner interface {
	Run(ctx context.Context, path string, args []string) (exitCode int, output string, err error)
}

// Coordinator runs repairs
type Coordinator struct {
	InstallerURL  string
	InstallerPath string
	Branch        string
	Timeout       time.Duration

	Processes Killer
	Fetch     Fetcher
	Exec      Runner
	Out       console.Sink
}

// Repair runs a repair with a background context and reports success
func (c *Coordinator) Repair() bool {
	return c.Run(context.Background()).OK()
}

// Run acquires the installer, stops the host app and invokes the installer.
// There are no retries; a failed attempt must be re-run by the caller.
func (c *Coordinator) Run(ctx context.Context) Result {
	out := c.sink()
	var result Result

	if !paths.IsFile(c.InstallerPath) {
		out.Info("Downloading Vencord installer...")
		logging.Info("Downloading installer", logrus.Fields{"url": c.InstallerURL, "path": c.InstallerPath})
		if err := c.Fetch.Fetch(c.InstallerURL, c.InstallerPath); err != nil {
			out.Error("Failed to download installer: %v", err)
			logging.Error("Installer download failed", logrus.Fields{"error": err})
			result.Outcome = DownloadFailed
			result.Err = err
			return result
		}
		result.Downloaded = true
	}

	out.Info("Closing Discord...")
	result.Killed = c.Processes.KillAll()
	logging.Debug("Stopped host processes", logrus.Fields{"killed": result.Killed})

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := branch.RepairArgs(c.Branch)
	out.Info("Running Vencord installer...")
	logging.Info("Running installer", logrus.Fields{"path": c.InstallerPath, "args": args, "timeout": timeout})

	code, output, err := c.Exec.Run(runCtx, c.InstallerPath, args)
	result.ExitCode = code
	result.Output = output

	switch {
	case errors.Is(err, context.DeadlineExceeded) || (err != nil && runCtx.Err() == context.DeadlineExceeded):
		result.Outcome = TimedOut
		result.Err = fmt.Errorf("installer did not finish within %v: %w", timeout, context.DeadlineExceeded)
		out.Error("Vencord installer timed out after %v", timeout)
	case err != nil:
		result.Outcome = SpawnFailed
		result.Err = err
		out.Error("Failed to run installer: %v", err)
	case code != 0:
		result.Outcome = InstallerFailed
		result.Err = fmt.Errorf("installer exited with code %d", code)
		out.Error("Vencord installer failed (exit code %d)", code)
	default:
		result.Outcome = Succeeded
		out.Success("Vencord repaired successfully")
	}

	fields := logrus.Fields{"outcome": result.Outcome.String(), "exit_code": code}
	if result.Err != nil {
		fields["error"] = result.Err
		if output != "" {
			fields["output"] = output
		}
		logging.Warn("Repair finished", fields)
	} else {
		logging.Info("Repair finished", fields)
	}

	return result
}

func (c *Coordinator) sink() console.Sink {
	if c.Out == nil {
		return console.Silent{}
	}
	return c.Out
}
