//go:build !windows

package repair

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}
