//go:build unix

package render

import (
	"os/exec"
	"syscall"
)

func (e *ESpeakRenderer) suspendProcess(cmd *exec.Cmd) error {
	return cmd.Process.Signal(syscall.SIGSTOP)
}

func (e *ESpeakRenderer) resumeProcess(cmd *exec.Cmd) error {
	return cmd.Process.Signal(syscall.SIGCONT)
}
