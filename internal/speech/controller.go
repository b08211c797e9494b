// Package speech owns the playback state machine: one controller drives an
// external speech renderer through play/pause/resume/stop and republishes
// its state to whoever is listening.
package speech

import (
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

// State is the playback lifecycle state. It is mutated only by the
// controller, in response to commands or renderer callbacks.
type State int

const (
	StateIdle State = iota
	StateSpeaking
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateSpeaking:
		return "speaking"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Rate bounds. Rates are clamped on set, never rejected.
const (
	MinRate     = 0.1
	MaxRate     = 1.0
	DefaultRate = 0.3
)

// Preference keys consulted at startup and written through on change.
const (
	PrefVoice    = "speech.voice"
	PrefRate     = "speech.rate"
	PrefLanguage = "speech.language"
)

// PrefStore is string key-value persistence for playback preferences.
type PrefStore interface {
	Get(key string) string
	Set(key, value string) error
}

// Snapshot is the controller's published observable state.
type Snapshot struct {
	State    State
	Text     string
	Rate     float64
	Language Language
	VoiceID  string
}

// Options wires the controller's collaborators. Renderer and Catalog are
// required; everything else defaults to a no-op.
type Options struct {
	Renderer Renderer
	Catalog  Catalog
	Display  NowPlayingDisplay
	Prefs    PrefStore
	// SaveHistory is invoked on every successful play-start with the
	// utterance text and its source URL, if any.
	SaveHistory func(text, sourceURL string)
	Logger      *logrus.Entry
}

// Controller is the playback state machine. It is driven from one control
// context; renderer callbacks and remote-control signals are marshaled into
// it through the same internal lock, so commands never interleave. Playback
// commands never return errors — invalid commands for the current state are
// absorbed as no-ops.
type Controller struct {
	mu sync.Mutex

	renderer    Renderer
	catalog     Catalog
	display     NowPlayingDisplay
	prefs       PrefStore
	saveHistory func(text, sourceURL string)
	log         *logrus.Entry

	state     State
	text      string
	sourceURL string
	rate      float64
	language  Language
	voices    []Voice
	voiceID   string

	// seq tags render invocations; callbacks whose sequence no longer
	// matches are from a superseded render and are dropped.
	seq uint64

	observers      []observer
	nextObserverID uint64
}

type observer struct {
	id uint64
	fn func(Snapshot)
}

// NewController builds a controller in Idle with preferences restored: the
// persisted rate and language when present, and the persisted voice when its
// identifier still resolves against the catalog.
func NewController(opts Options) *Controller {
	c := &Controller{
		renderer:    opts.Renderer,
		catalog:     opts.Catalog,
		display:     opts.Display,
		prefs:       opts.Prefs,
		saveHistory: opts.SaveHistory,
		log:         opts.Logger,
		state:       StateIdle,
		rate:        DefaultRate,
		language:    LangEnUS,
	}
	if c.display == nil {
		c.display = NoopDisplay{}
	}
	if c.log == nil {
		c.log = logrus.WithField("component", "speech")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prefs != nil {
		if raw := c.prefs.Get(PrefRate); raw != "" {
			if r, err := strconv.ParseFloat(raw, 64); err == nil {
				c.rate = clampRate(r)
			}
		}
		if lang, ok := ParseLanguage(c.prefs.Get(PrefLanguage)); ok {
			c.language = lang
		}
	}

	c.refreshVoicesLocked()
	if c.prefs != nil {
		if id := c.prefs.Get(PrefVoice); id != "" && containsVoice(c.voices, id) {
			c.voiceID = id
		}
	}
	return c
}

// Subscribe registers an observer for published state changes. The observer
// is called with an initial snapshot and then after every transition, under
// the controller's control context. The returned function removes the
// observer again.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextObserverID++
	id := c.nextObserverID
	c.observers = append(c.observers, observer{id: id, fn: fn})
	fn(c.snapshotLocked())

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// Speak starts reading text from the beginning, cancelling any utterance in
// progress first. Empty text is a no-op.
func (c *Controller) Speak(text string) { c.SpeakFrom(text, "") }

// SpeakFrom is Speak with a source URL recorded alongside the text.
func (c *Controller) SpeakFrom(text, sourceURL string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		c.renderer.CancelImmediately()
	}
	c.startRenderLocked(text, sourceURL)
}

// Pause requests a pause at a word boundary. No-op unless speaking.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSpeaking {
		return
	}
	if err := c.renderer.PauseAtWordBoundary(); err != nil {
		c.log.WithError(err).Warn("pause request failed")
		return
	}
	c.state = StatePaused
	c.showNowPlayingLocked()
	c.notifyLocked()
}

// Resume continues a paused utterance. No-op unless paused.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePaused {
		return
	}
	if err := c.renderer.Continue(); err != nil {
		c.log.WithError(err).Warn("resume request failed")
		return
	}
	c.state = StateSpeaking
	c.showNowPlayingLocked()
	c.notifyLocked()
}

// Stop cancels the current utterance and clears the now-playing signal.
// No-op when idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		return
	}
	c.seq++ // the in-flight cancel callback is now stale
	c.renderer.CancelImmediately()
	c.toIdleLocked()
}

// SetRate stores a new playback rate, clamped to [MinRate, MaxRate]. While
// speaking, the current text restarts from the beginning at the new rate.
func (c *Controller) SetRate(rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rate = clampRate(rate)
	c.persistLocked(PrefRate, strconv.FormatFloat(c.rate, 'f', -1, 64))
	if c.state == StateSpeaking {
		c.restartLocked()
	} else {
		c.notifyLocked()
	}
}

// SetLanguage switches the active language, refreshes the voice list, and
// revalidates the selected voice. An active or paused utterance restarts
// from the beginning with the new selection.
func (c *Controller) SetLanguage(lang Language) {
	if !lang.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = lang
	c.persistLocked(PrefLanguage, string(lang))
	c.refreshVoicesLocked()
	c.persistLocked(PrefVoice, c.voiceID)
	if c.state == StateSpeaking || c.state == StatePaused {
		c.restartLocked()
	} else {
		c.notifyLocked()
	}
}

// SelectVoice picks a voice from the current language's list by identifier.
// Unknown identifiers are ignored. An active or paused utterance restarts
// from the beginning with the new voice; restart, not seek.
func (c *Controller) SelectVoice(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != "" && !containsVoice(c.voices, id) {
		return
	}
	c.voiceID = id
	c.persistLocked(PrefVoice, id)
	if c.state == StateSpeaking || c.state == StatePaused {
		c.restartLocked()
	} else {
		c.notifyLocked()
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current published state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectedVoice returns the currently selected voice, if any.
func (c *Controller) SelectedVoice() (Voice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range c.voices {
		if v.ID == c.voiceID {
			return v, true
		}
	}
	return Voice{}, false
}

// Voices returns the voice list for the active language, in selection-policy
// order.
func (c *Controller) Voices() []Voice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Voice, len(c.voices))
	copy(out, c.voices)
	return out
}

// startRenderLocked begins a new render invocation for text, superseding any
// previous one via the sequence counter.
func (c *Controller) startRenderLocked(text, sourceURL string) {
	c.seq++
	seq := c.seq
	c.text = text
	c.sourceURL = sourceURL

	req := RenderRequest{
		Seq:      seq,
		Text:     text,
		Rate:     c.rate,
		Language: c.language,
		VoiceID:  c.voiceID,
	}
	if err := c.renderer.Render(req, func(o Outcome) { c.renderDone(seq, o) }); err != nil {
		c.log.WithError(err).Error("render failed to start")
		c.toIdleLocked()
		return
	}

	c.state = StateSpeaking
	c.showNowPlayingLocked()
	if c.saveHistory != nil {
		c.saveHistory(text, sourceURL)
	}
	c.notifyLocked()
}

// restartLocked cancels the active render and replays the current text with
// the current parameters.
func (c *Controller) restartLocked() {
	c.renderer.CancelImmediately()
	c.startRenderLocked(c.text, c.sourceURL)
}

// renderDone receives completion and cancellation callbacks from the
// renderer. Callbacks for superseded invocations are dropped.
func (c *Controller) renderDone(seq uint64, outcome Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.log.WithFields(logrus.Fields{"seq": seq, "outcome": outcome}).
			Debug("dropping callback for superseded render")
		return
	}
	if c.state == StateIdle {
		return
	}
	c.toIdleLocked()
}

func (c *Controller) toIdleLocked() {
	c.state = StateIdle
	c.display.Clear()
	c.notifyLocked()
}

func (c *Controller) refreshVoicesLocked() {
	var all []Voice
	if c.catalog != nil {
		var err error
		all, err = c.catalog.Voices()
		if err != nil {
			c.log.WithError(err).Warn("voice catalog unavailable")
			all = nil
		}
	}
	c.voices = FilterByLanguage(all, c.language)
	if containsVoice(c.voices, c.voiceID) {
		return
	}
	if v, ok := DefaultVoice(c.voices); ok {
		c.voiceID = v.ID
	} else {
		c.voiceID = ""
	}
}

func (c *Controller) showNowPlayingLocked() {
	rate := c.rate
	if c.state == StatePaused {
		rate = 0
	}
	c.display.Show(NowPlaying{
		Title:    DeriveTitle(c.text),
		Subtitle: nowPlayingSubtitle,
		Rate:     rate,
	})
}

func (c *Controller) persistLocked(key, value string) {
	if c.prefs == nil {
		return
	}
	if err := c.prefs.Set(key, value); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("could not persist preference")
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:    c.state,
		Text:     c.text,
		Rate:     c.rate,
		Language: c.language,
		VoiceID:  c.voiceID,
	}
}

func (c *Controller) notifyLocked() {
	snap := c.snapshotLocked()
	for _, o := range c.observers {
		o.fn(snap)
	}
}

func clampRate(r float64) float64 {
	if r < MinRate {
		return MinRate
	}
	if r > MaxRate {
		return MaxRate
	}
	return r
}
