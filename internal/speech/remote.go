package speech

import "errors"

// Remote command validity errors, returned to the remote surface. They never
// disturb controller state.
var (
	ErrNotPaused   = errors.New("remote play: nothing is paused")
	ErrNotSpeaking = errors.New("remote pause: nothing is speaking")
)

// RemotePlay handles an external play signal. Valid only while paused.
func (c *Controller) RemotePlay() error {
	if c.State() != StatePaused {
		return ErrNotPaused
	}
	c.Resume()
	return nil
}

// RemotePause handles an external pause signal. Valid only while speaking.
func (c *Controller) RemotePause() error {
	if c.State() != StateSpeaking {
		return ErrNotSpeaking
	}
	c.Pause()
	return nil
}

// RemoteStop handles an external stop signal. Always succeeds; stopping
// while idle is a no-op.
func (c *Controller) RemoteStop() error {
	c.Stop()
	return nil
}

// RemoteSurface is an optional platform capability that delivers external
// play/pause/stop signals (lock screen, media keys, accessories) into a
// controller. Platforms without one use NoopRemote.
type RemoteSurface interface {
	Bind(c *Controller) error
	Close() error
}

// NoopRemote is the remote surface for platforms without one.
type NoopRemote struct{}

func (NoopRemote) Bind(*Controller) error { return nil }
func (NoopRemote) Close() error           { return nil }
