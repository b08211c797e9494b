package render

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"pagereader/internal/speech"
)

// ESpeakRenderer speaks through eSpeak/eSpeak-NG. One espeak process per
// render invocation; pause suspends the process (see the platform files).
type ESpeakRenderer struct {
	mu   sync.Mutex
	path string
	proc *espeakProc
}

type espeakProc struct {
	cmd       *exec.Cmd
	cancelled bool
}

func newESpeakRenderer() (speech.Renderer, error) {
	path, err := findESpeakExecutable()
	if err != nil {
		return nil, fmt.Errorf("eSpeak not found: %w", err)
	}
	if err := exec.Command(path, "--version").Run(); err != nil {
		return nil, fmt.Errorf("eSpeak test failed: %w", err)
	}
	return &ESpeakRenderer{path: path}, nil
}

func findESpeakExecutable() (string, error) {
	for _, candidate := range []string{"espeak-ng", "espeak"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("eSpeak executable not found in PATH")
}

func (e *ESpeakRenderer) Render(req speech.RenderRequest, done speech.DoneFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	args := []string{"-v", espeakVoice(req)}

	// espeak speaks ~175 words per minute at normal speed
	wpm := int(175 * speakingRatio(req.Rate))
	if wpm < 80 {
		wpm = 80
	}
	if wpm > 450 {
		wpm = 450
	}
	args = append(args, "-s", strconv.Itoa(wpm), req.Text)

	cmd := exec.Command(e.path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start espeak: %w", err)
	}

	proc := &espeakProc{cmd: cmd}
	e.proc = proc

	go func() {
		err := cmd.Wait()
		e.mu.Lock()
		cancelled := proc.cancelled
		if e.proc == proc {
			e.proc = nil
		}
		e.mu.Unlock()

		if cancelled {
			done(speech.OutcomeCancelled)
			return
		}
		if err != nil {
			logrus.WithError(err).Warn("espeak exited abnormally")
			done(speech.OutcomeCancelled)
			return
		}
		done(speech.OutcomeFinished)
	}()

	return nil
}

// espeakVoice maps the request to an espeak voice argument. A selected
// voice identifier wins; otherwise the language tag picks espeak's default
// voice for that language.
func espeakVoice(req speech.RenderRequest) string {
	if req.VoiceID != "" {
		return req.VoiceID
	}
	return strings.ToLower(string(req.Language))
}

func (e *ESpeakRenderer) PauseAtWordBoundary() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.proc == nil {
		return nil
	}
	// espeak has no word-boundary pause; suspending the process stops
	// output at the current sample.
	return e.suspendProcess(e.proc.cmd)
}

func (e *ESpeakRenderer) Continue() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.proc == nil {
		return nil
	}
	return e.resumeProcess(e.proc.cmd)
}

func (e *ESpeakRenderer) CancelImmediately() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.proc == nil {
		return
	}
	e.proc.cancelled = true
	if e.proc.cmd.Process != nil {
		_ = e.resumeProcess(e.proc.cmd) // a suspended process cannot die
		_ = e.proc.cmd.Process.Kill()
	}
	e.proc = nil
}
