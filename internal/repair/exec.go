package repair

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// pipeWaitDelay bounds how long Wait keeps reading captured output after the
// installer exits or is killed. A grandchild holding the pipe open would
// otherwise stretch the timeout until it exits.
const pipeWaitDelay = 2 * time.Second

// ExecRunner runs the installer as a child process. With Capture set the
// child's output is collected instead of inherited from the console.
type ExecRunner struct {
	Capture bool
}

// Run starts path with args and waits for it or for ctx to expire
func (r ExecRunner) Run(ctx context.Context, path string, args []string) (int, string, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.WaitDelay = pipeWaitDelay

	var buf bytes.Buffer
	if r.Capture {
		hideWindow(cmd)
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return -1, "", fmt.Errorf("failed to start installer: %w", err)
	}

	err := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, buf.String(), ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), buf.String(), nil
	}
	if err != nil {
		return -1, buf.String(), fmt.Errorf("failed waiting for installer: %w", err)
	}
	return 0, buf.String(), nil
}
