//go:build windows

package render

import (
	"fmt"
	"os/exec"
)

// Windows has no SIGSTOP/SIGCONT equivalent for a foreign process, so the
// espeak backend cannot pause there.
func (e *ESpeakRenderer) suspendProcess(cmd *exec.Cmd) error {
	return fmt.Errorf("pause not supported for espeak on Windows")
}

func (e *ESpeakRenderer) resumeProcess(cmd *exec.Cmd) error {
	return fmt.Errorf("resume not supported for espeak on Windows")
}
