//go:build windows

package render

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"pagereader/internal/speech"
)

// SAPIRenderer speaks through the Windows Speech API via PowerShell. SAPI's
// synthesizer has no out-of-process pause, so pause is unsupported here.
type SAPIRenderer struct {
	mu   sync.Mutex
	proc *sapiProc
}

type sapiProc struct {
	cmd       *exec.Cmd
	cancelled bool
}

func newSAPIRenderer() (speech.Renderer, error) {
	if _, err := exec.LookPath("powershell"); err != nil {
		return nil, fmt.Errorf("powershell not found: %w", err)
	}
	return &SAPIRenderer{}, nil
}

func (s *SAPIRenderer) Render(req speech.RenderRequest, done speech.DoneFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// SAPI rate runs -10..10 with 0 as normal speed
	rate := int((speakingRatio(req.Rate) - 1) * 10)
	if rate < -10 {
		rate = -10
	}
	if rate > 10 {
		rate = 10
	}

	script := fmt.Sprintf(`Add-Type -AssemblyName System.Speech;
		$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer;
		$synth.Rate = %d;`, rate)
	if req.VoiceID != "" {
		script += fmt.Sprintf("\n$synth.SelectVoice(%q);", req.VoiceID)
	}
	script += fmt.Sprintf("\n$synth.Speak(%q)", strings.ReplaceAll(req.Text, "`", ""))

	cmd := exec.Command("powershell", "-Command", script)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start powershell: %w", err)
	}

	proc := &sapiProc{cmd: cmd}
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
			logrus.WithError(err).Warn("SAPI synthesis exited abnormally")
			done(speech.OutcomeCancelled)
			return
		}
		done(speech.OutcomeFinished)
	}()

	return nil
}

func (s *SAPIRenderer) PauseAtWordBoundary() error {
	return fmt.Errorf("pause not supported for SAPI renderer")
}

func (s *SAPIRenderer) Continue() error {
	return fmt.Errorf("resume not supported for SAPI renderer")
}

func (s *SAPIRenderer) CancelImmediately() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc == nil {
		return
	}
	s.proc.cancelled = true
	if s.proc.cmd.Process != nil {
		_ = s.proc.cmd.Process.Kill()
	}
	s.proc = nil
}
