//go:build !windows

package lsp

import (
	"os/exec"
	"syscall"
)

// setProcAttributes places the child in its own process group so the
// bridge can signal the whole language-server process tree on shutdown.
func setProcAttributes(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
