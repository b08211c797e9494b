package render

import (
	"strings"
	"sync"
	"time"

	"pagereader/internal/speech"
)

// MockRenderer simulates speech by waiting roughly as long as reading the
// text would take, then reporting completion. Pause stops the clock.
type MockRenderer struct {
	mu        sync.Mutex
	timer     *time.Timer
	remaining time.Duration
	started   time.Time
	done      speech.DoneFunc
	paused    bool
}

func NewMockRenderer() *MockRenderer {
	return &MockRenderer{}
}

func (m *MockRenderer) Render(req speech.RenderRequest, done speech.DoneFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	words := len(strings.Fields(req.Text))
	d := time.Duration(float64(words)/(3.0*speakingRatio(req.Rate))) * time.Second
	if d < 100*time.Millisecond {
		d = 100 * time.Millisecond
	}

	m.done = done
	m.paused = false
	m.remaining = d
	m.startClockLocked()
	return nil
}

func (m *MockRenderer) startClockLocked() {
	done := m.done
	m.started = time.Now()
	m.timer = time.AfterFunc(m.remaining, func() { done(speech.OutcomeFinished) })
}

func (m *MockRenderer) PauseAtWordBoundary() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer == nil || m.paused {
		return nil
	}
	if m.timer.Stop() {
		m.remaining -= time.Since(m.started)
		m.paused = true
	}
	return nil
}

func (m *MockRenderer) Continue() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.paused {
		return nil
	}
	m.paused = false
	m.startClockLocked()
	return nil
}

func (m *MockRenderer) CancelImmediately() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer == nil {
		return
	}
	stopped := m.timer.Stop()
	m.timer = nil
	done := m.done
	if stopped || m.paused {
		go done(speech.OutcomeCancelled)
	}
	m.paused = false
}
