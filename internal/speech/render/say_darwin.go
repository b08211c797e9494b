//go:build darwin

package render

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"pagereader/internal/speech"
)

// SayRenderer speaks through the macOS built-in `say` command. Pause and
// resume suspend the say process with SIGSTOP/SIGCONT.
type SayRenderer struct {
	mu   sync.Mutex
	proc *sayProc
}

type sayProc struct {
	cmd       *exec.Cmd
	cancelled bool
}

func newSayRenderer() (speech.Renderer, error) {
	if _, err := exec.LookPath("say"); err != nil {
		return nil, fmt.Errorf("say not found: %w", err)
	}
	return &SayRenderer{}, nil
}

func (s *SayRenderer) Render(req speech.RenderRequest, done speech.DoneFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	args := []string{}
	if req.VoiceID != "" {
		// empty voice leaves selection to the system default for the
		// user's language
		args = append(args, "-v", req.VoiceID)
	}
	rate := fmt.Sprintf("%.0f", 175*speakingRatio(req.Rate))
	args = append(args, "-r", rate, req.Text)

	cmd := exec.Command("say", args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start say: %w", err)
	}

	proc := &sayProc{cmd: cmd}
	s.proc = proc

	go func() {
		err := cmd.Wait()
		s.mu.Lock()
		cancelled := proc.cancelled
		if s.proc == proc {
			s.proc = nil
		}
		s.mu.Unlock()

		if cancelled {
			done(speech.OutcomeCancelled)
			return
		}
		if err != nil {
			logrus.WithError(err).Warn("say exited abnormally")
			done(speech.OutcomeCancelled)
			return
		}
		done(speech.OutcomeFinished)
	}()

	return nil
}

func (s *SayRenderer) PauseAtWordBoundary() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return nil
	}
	return s.proc.cmd.Process.Signal(syscall.SIGSTOP)
}

func (s *SayRenderer) Continue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return nil
	}
	return s.proc.cmd.Process.Signal(syscall.SIGCONT)
}

func (s *SayRenderer) CancelImmediately() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return
	}
	s.proc.cancelled = true
	if s.proc.cmd.Process != nil {
		_ = s.proc.cmd.Process.Signal(syscall.SIGCONT)
		_ = s.proc.cmd.Process.Kill()
	}
	s.proc = nil
}
