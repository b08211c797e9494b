//go:build !unix

package speech

// NewPlatformRemote returns the remote-control surface for this platform.
// There is no signal surface here, so remote commands are a no-op.
func NewPlatformRemote() RemoteSurface {
	return NoopRemote{}
}
