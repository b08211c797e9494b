//go:build unix

package speech

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// SignalRemote delivers remote transport controls over process signals:
// SIGUSR1 toggles play/pause, SIGUSR2 stops. It stands in for the media-key
// surfaces desktop platforms provide.
type SignalRemote struct {
	sigs chan os.Signal
	done chan struct{}
}

// NewPlatformRemote returns the remote-control surface for this platform.
func NewPlatformRemote() RemoteSurface {
	return &SignalRemote{}
}

func (r *SignalRemote) Bind(c *Controller) error {
	r.sigs = make(chan os.Signal, 1)
	r.done = make(chan struct{})
	signal.Notify(r.sigs, syscall.SIGUSR1, syscall.SIGUSR2)

	go func() {
		for {
			select {
			case sig := <-r.sigs:
				r.dispatch(c, sig)
			case <-r.done:
				return
			}
		}
	}()
	return nil
}

func (r *SignalRemote) dispatch(c *Controller, sig os.Signal) {
	var err error
	switch sig {
	case syscall.SIGUSR1:
		if c.State() == StatePaused {
			err = c.RemotePlay()
		} else {
			err = c.RemotePause()
		}
	case syscall.SIGUSR2:
		err = c.RemoteStop()
	}
	if err != nil {
		logrus.WithError(err).WithField("signal", sig).Debug("remote command rejected")
	}
}

func (r *SignalRemote) Close() error {
	if r.sigs != nil {
		signal.Stop(r.sigs)
		close(r.done)
	}
	return nil
}
