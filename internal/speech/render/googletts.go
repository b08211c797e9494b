package render

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"

	"pagereader/internal/speech"
)

// chunkRuneLimit keeps each synthesis request under the API's 5000-byte
// input cap.
const chunkRuneLimit = 4800

var speakerInit sync.Once

// GoogleRenderer synthesizes speech with Google Cloud Text-to-Speech and
// plays the resulting MP3 audio through beep. Synthesized audio is cached
// on disk keyed by content, voice, and rate.
type GoogleRenderer struct {
	mu       sync.Mutex
	client   *texttospeech.Client
	ctx      context.Context
	cacheDir string
	play     *googlePlayback
}

type googlePlayback struct {
	ctrl      *beep.Ctrl
	streamers []beep.StreamSeekCloser
	doneFn    speech.DoneFunc
	cancelled bool
	finished  bool
}

func newGoogleRenderer(cacheDir string) (speech.Renderer, error) {
	ctx := context.Background()
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create TTS client: %w", err)
	}
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "pagereader-tts")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &GoogleRenderer{client: client, ctx: ctx, cacheDir: cacheDir}, nil
}

func (g *GoogleRenderer) Render(req speech.RenderRequest, done speech.DoneFunc) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	paths, err := g.synthesize(req)
	if err != nil {
		return err
	}

	var streamers []beep.StreamSeekCloser
	var format beep.Format
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll(streamers)
			return fmt.Errorf("open cached MP3 %s: %w", path, err)
		}
		streamer, fmt2, err := mp3.Decode(f)
		if err != nil {
			f.Close()
			closeAll(streamers)
			return fmt.Errorf("decode MP3 %s: %w", path, err)
		}
		streamers = append(streamers, streamer)
		format = fmt2
	}
	if len(streamers) == 0 {
		return fmt.Errorf("nothing to play")
	}

	var initErr error
	speakerInit.Do(func() {
		initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if initErr != nil {
		closeAll(streamers)
		return initErr
	}

	seq := make([]beep.Streamer, 0, len(streamers)+1)
	for _, s := range streamers {
		seq = append(seq, s)
	}
	ctrl := &beep.Ctrl{Streamer: beep.Seq(seq...)}
	// cancellation reports through its own path because speaker.Clear
	// drops the callback streamer along with the audio
	play := &googlePlayback{ctrl: ctrl, streamers: streamers, doneFn: done}
	g.play = play

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		g.mu.Lock()
		late := play.cancelled || play.finished
		play.finished = true
		if g.play == play {
			g.play = nil
		}
		g.mu.Unlock()
		closeAll(play.streamers)
		if !late {
			go done(speech.OutcomeFinished)
		}
	})))

	return nil
}

func (g *GoogleRenderer) synthesize(req speech.RenderRequest) ([]string, error) {
	// Google speaking rate runs 0.25..4.0 with 1.0 as normal
	speakingRate := speakingRatio(req.Rate)
	if speakingRate < 0.25 {
		speakingRate = 0.25
	}
	if speakingRate > 4.0 {
		speakingRate = 4.0
	}

	contentHash := md5Sum(fmt.Sprintf("%s|%s|%s|%.2f", req.Text, req.Language, req.VoiceID, speakingRate))[:12]
	chunks := splitIntoChunks(req.Text, chunkRuneLimit)

	var paths []string
	for i, chunk := range chunks {
		path := filepath.Join(g.cacheDir, fmt.Sprintf("%s_%d.mp3", contentHash, i))
		paths = append(paths, path)
		if _, err := os.Stat(path); err == nil {
			continue
		}

		synthReq := &texttospeechpb.SynthesizeSpeechRequest{
			Input: &texttospeechpb.SynthesisInput{
				InputSource: &texttospeechpb.SynthesisInput_Text{Text: chunk},
			},
			Voice: &texttospeechpb.VoiceSelectionParams{
				// empty Name falls back to the service default for the
				// language tag
				LanguageCode: string(req.Language),
				Name:         req.VoiceID,
			},
			AudioConfig: &texttospeechpb.AudioConfig{
				AudioEncoding: texttospeechpb.AudioEncoding_MP3,
				SpeakingRate:  speakingRate,
			},
		}
		resp, err := g.client.SynthesizeSpeech(g.ctx, synthReq)
		if err != nil {
			return nil, fmt.Errorf("synthesize chunk %d: %w", i, err)
		}
		if err := os.WriteFile(path, resp.AudioContent, 0o644); err != nil {
			return nil, fmt.Errorf("cache chunk %d: %w", i, err)
		}
		logrus.WithFields(logrus.Fields{"chunk": i + 1, "total": len(chunks)}).
			Debug("cached synthesized audio")
	}
	return paths, nil
}

func (g *GoogleRenderer) PauseAtWordBoundary() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.play == nil {
		return nil
	}
	speaker.Lock()
	g.play.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

func (g *GoogleRenderer) Continue() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.play == nil {
		return nil
	}
	speaker.Lock()
	g.play.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (g *GoogleRenderer) CancelImmediately() {
	g.mu.Lock()
	play := g.play
	if play != nil {
		play.cancelled = true
		g.play = nil
	}
	g.mu.Unlock()
	if play == nil {
		return
	}
	speaker.Clear()
	closeAll(play.streamers)
	if play.doneFn != nil {
		go play.doneFn(speech.OutcomeCancelled)
	}
}

func closeAll(streamers []beep.StreamSeekCloser) {
	for _, s := range streamers {
		s.Close()
	}
}

func md5Sum(s string) string {
	h := md5.New()
	io.WriteString(h, s)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func splitIntoChunks(text string, limit int) []string {
	var chunks []string
	runes := []rune(text)
	for i := 0; i < len(runes); i += limit {
		end := i + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
