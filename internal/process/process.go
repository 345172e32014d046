package process

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"

	"github.com/distantorigin/discord-monitor/internal/logging"
)

// DefaultKillTimeout bounds the wait for each killed process to exit
const DefaultKillTimeout = 5 * time.Second

const pollInterval = 100 * time.Millisecond

// Info is a snapshot of one matching process
type Info struct {
	PID    int32
	Name   string
	Status string
}

// Controller starts, stops and queries processes with a given executable name
type Controller struct {
	Name        string
	KillTimeout time.Duration
}

// New returns a controller for processes named name (matched case-insensitively)
func New(name string) *Controller {
	return &Controller{Name: name, KillTimeout: DefaultKillTimeout}
}

// matching returns every running process whose name equals c.Name.
// Processes that disappear or hide their name are skipped.
func (c *Controller) matching() []*process.Process {
	procs, err := process.Processes()
	if err != nil {
		logging.Error("Failed to get process list", logrus.Fields{"error": err})
		return nil
	}

	var matches []*process.Process
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if strings.EqualFold(name, c.Name) {
			matches = append(matches, p)
		}
	}
	return matches
}

// IsRunning reports whether at least one matching process is running
func (c *Controller) IsRunning() bool {
	return len(c.matching()) > 0
}

// List returns a snapshot of matching processes in OS enumeration order
func (c *Controller) List() []Info {
	var infos []Info
	for _, p := range c.matching() {
		name, err := p.Name()
		if err != nil {
			continue
		}
		infos = append(infos, Info{PID: p.Pid, Name: name, Status: status(p)})
	}
	return infos
}

func status(p *process.Process) string {
	states, err := p.Status()
	if err != nil || len(states) == 0 {
		return "unknown"
	}
	return states[0]
}

// KillAll kills every matching process and waits for each to exit.
// Returns true if at least one process was terminated. Processes that vanish,
// deny access, or outlive the timeout are skipped.
func (c *Controller) KillAll() bool {
	killed := false
	for _, p := range c.matching() {
		if err := p.Kill(); err != nil {
			logging.Debug("Failed to kill process", logrus.Fields{"pid": p.Pid, "error": err})
			continue
		}
		if !WaitForExit(p, c.KillTimeout) {
			logging.Warn("Process did not exit in time", logrus.Fields{"pid": p.Pid, "timeout": c.KillTimeout})
			continue
		}
		logging.Info("Stopped process", logrus.Fields{"pid": p.Pid, "name": c.Name})
		killed = true
	}
	return killed
}

// WaitForExit polls until p is no longer running.
// Returns true if it exited, false if the timeout elapsed first.
func WaitForExit(p *process.Process, timeout time.Duration) bool {
	start := time.Now()
	for {
		running, err := p.IsRunning()
		if err != nil || !running {
			return true
		}
		if time.Since(start) >= timeout {
			return false
		}
		time.Sleep(pollInterval)
	}
}

// Launch starts exe from dir detached from this process and does not wait
// for it.
func (c *Controller) Launch(dir, exe string) error {
	cmd := exec.Command(exe)
	cmd.Dir = dir
	cmd.SysProcAttr = detachedAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", c.Name, err)
	}

	logging.Info("Launched process", logrus.Fields{"pid": cmd.Process.Pid, "exe": exe})
	return cmd.Process.Release()
}
