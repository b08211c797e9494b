package speech

// RenderRequest is one discrete request to render text as audio.
type RenderRequest struct {
	// Seq tags the invocation; callbacks for superseded invocations are
	// dropped by the controller.
	Seq      uint64
	Text     string
	Rate     float64
	Language Language
	// VoiceID may be empty, in which case the renderer uses the platform
	// default voice for the language tag.
	VoiceID string
}

// Outcome is the terminal result of a render invocation. Completion and
// cancellation are the only two outcomes.
type Outcome int

const (
	OutcomeFinished Outcome = iota
	OutcomeCancelled
)

func (o Outcome) String() string {
	if o == OutcomeCancelled {
		return "cancelled"
	}
	return "finished"
}

// DoneFunc receives the outcome of a render invocation exactly once.
// Implementations must deliver it asynchronously, never from inside Render
// or CancelImmediately.
type DoneFunc func(Outcome)

// Renderer is the external speech-rendering capability. A renderer carries
// at most one active invocation; Render while one is active is preceded by
// CancelImmediately from the controller.
type Renderer interface {
	Render(req RenderRequest, done DoneFunc) error
	// PauseAtWordBoundary suspends output at the next word boundary, or as
	// close to one as the backend can manage.
	PauseAtWordBoundary() error
	Continue() error
	CancelImmediately()
}
