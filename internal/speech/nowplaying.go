package speech

// NowPlaying describes the current utterance for an external media-info
// surface. Rate is 0 while paused and the playback rate while speaking.
type NowPlaying struct {
	Title    string
	Subtitle string
	Rate     float64
}

// NowPlayingDisplay receives now-playing updates. Show is called on every
// transition that ends in Speaking or Paused; Clear on every transition to
// Idle.
type NowPlayingDisplay interface {
	Show(NowPlaying)
	Clear()
}

// NoopDisplay is the display used when no media-info surface exists.
type NoopDisplay struct{}

func (NoopDisplay) Show(NowPlaying) {}
func (NoopDisplay) Clear()          {}

const nowPlayingSubtitle = "pagereader"

const titleRuneLimit = 50

// DeriveTitle shortens utterance text to a display title: the first 50
// runes, with an ellipsis when truncated.
func DeriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleRuneLimit {
		return text
	}
	return string(runes[:titleRuneLimit]) + "…"
}
