// Package reader wires the application together: fetcher, extraction,
// playback controller, history, and preferences behind the CLI commands.
package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pagereader/internal/cli/scheme/colours"
	"pagereader/internal/fetch"
	"pagereader/internal/history"
	"pagereader/internal/prefs"
	"pagereader/internal/speech"
	"pagereader/internal/speech/render"
)

// App is the assembled application.
type App struct {
	fetcher    *fetch.Client
	controller *speech.Controller
	catalog    speech.Catalog
	store      *history.Store
	remote     speech.RemoteSurface

	ctx    context.Context
	Cancel context.CancelFunc
}

// New assembles the application from the loaded configuration.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())

	engineCfg := render.Config{
		Type:      viper.GetString("speech.engine"),
		CachePath: viper.GetString("speech.cache_path"),
	}
	renderer, err := render.New(engineCfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create speech renderer")
	}
	catalog := render.NewCatalog(engineCfg)

	store, err := history.Open(ctx, historyPath(), nil)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open history store")
	}

	prefStore := prefs.New(viper.GetViper(), prefsPath())

	controller := speech.NewController(speech.Options{
		Renderer: renderer,
		Catalog:  catalog,
		Display:  consoleDisplay{},
		Prefs:    prefStore,
		SaveHistory: func(text, sourceURL string) {
			if err := store.Save(ctx, text, sourceURL); err != nil {
				logrus.WithError(err).Warn("could not save history entry")
			}
		},
	})

	remote := speech.NewPlatformRemote()
	if err := remote.Bind(controller); err != nil {
		logrus.WithError(err).Warn("remote controls unavailable")
	}

	return &App{
		fetcher:    &fetch.Client{UserAgent: viper.GetString("fetch.user_agent")},
		controller: controller,
		catalog:    catalog,
		store:      store,
		remote:     remote,
		ctx:        ctx,
		Cancel:     cancel,
	}
}

// Shutdown stops playback and releases resources.
func (a *App) Shutdown() {
	a.controller.Stop()
	_ = a.remote.Close()
	_ = a.store.Close()
	a.Cancel()
}

func historyPath() string {
	if p := viper.GetString("history.path"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagereader-history.db"
	}
	return filepath.Join(home, ".pagereader", "history.db")
}

func prefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".pagereader")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "pagereader.yaml")
}

// consoleDisplay is the CLI's now-playing surface.
type consoleDisplay struct{}

func (consoleDisplay) Show(np speech.NowPlaying) {
	if np.Rate == 0 {
		colours.Warning.Printf("⏸ %s — %s\n", np.Title, np.Subtitle)
		return
	}
	colours.Info.Printf("▶ %s — %s (rate %.1f)\n", np.Title, np.Subtitle, np.Rate)
}

func (consoleDisplay) Clear() {}

// ReadURL fetches a page, extracts its text, and reads it aloud.
func (a *App) ReadURL(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		colours.Error.Println("usage: pagereader read <url>")
		return
	}
	url := args[0]

	colours.Info.Printf("Fetching %s...\n", url)
	text, err := a.fetcher.ReadPage(a.ctx, url)
	if err != nil {
		colours.Error.Println(fetchErrorMessage(err))
		return
	}

	a.speakAndWait(text, url)
}

// fetchErrorMessage maps fetch failures to the messages shown to the user.
func fetchErrorMessage(err error) string {
	var ne *fetch.NetworkError
	switch {
	case errors.Is(err, fetch.ErrInvalidURL):
		return "❌ That doesn't look like a valid web address."
	case errors.Is(err, fetch.ErrNoData):
		return "❌ The page returned no data."
	case errors.Is(err, fetch.ErrParsing):
		return "❌ Couldn't find any readable text on that page."
	case errors.As(err, &ne):
		return fmt.Sprintf("❌ Couldn't reach the page: %v", ne)
	default:
		return fmt.Sprintf("❌ %v", err)
	}
}

// SayText reads the given arguments aloud, or standard input when no
// arguments were given.
func (a *App) SayText(cmd *cobra.Command, args []string) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		data, err := readAllStdin()
		if err != nil {
			colours.Error.Printf("❌ %v\n", err)
			return
		}
		text = strings.TrimSpace(data)
	}
	if text == "" {
		colours.Warning.Println("Nothing to say.")
		return
	}
	a.speakAndWait(text, "")
}

func readAllStdin() (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String(), scanner.Err()
}

// speakAndWait starts playback and blocks until it returns to idle, so the
// process keeps running while the audio plays.
func (a *App) speakAndWait(text, sourceURL string) {
	done := make(chan struct{})
	var once sync.Once
	started := false
	unsubscribe := a.controller.Subscribe(func(s speech.Snapshot) {
		switch s.State {
		case speech.StateSpeaking, speech.StatePaused:
			started = true
		case speech.StateIdle:
			if started {
				once.Do(func() { close(done) })
			}
		}
	})
	defer unsubscribe()

	a.controller.SpeakFrom(text, sourceURL)
	if a.controller.State() == speech.StateIdle {
		colours.Error.Println("❌ Playback could not start.")
		return
	}

	select {
	case <-done:
		colours.Success.Println("✓ Done.")
	case <-a.ctx.Done():
	}
}

// ShowHistory lists, deletes from, or clears the reading history.
func (a *App) ShowHistory(cmd *cobra.Command, args []string) {
	if clear, _ := cmd.Flags().GetBool("clear"); clear {
		if err := a.store.Clear(a.ctx); err != nil {
			colours.Error.Printf("❌ %v\n", err)
			return
		}
		colours.Success.Println("✓ History cleared.")
		return
	}
	if id, _ := cmd.Flags().GetInt64("delete"); id > 0 {
		if err := a.store.Delete(a.ctx, id); err != nil {
			colours.Error.Printf("❌ %v\n", err)
			return
		}
		colours.Success.Printf("✓ Entry %d deleted.\n", id)
		return
	}

	entries, err := a.store.LoadAll(a.ctx)
	if err != nil {
		colours.Error.Printf("❌ %v\n", err)
		return
	}
	if len(entries) == 0 {
		colours.Warning.Println("History is empty.")
		return
	}

	fmt.Println()
	colours.Title.Println("📖 Reading history")
	fmt.Println()
	for _, e := range entries {
		fmt.Printf("  %d. ", e.ID)
		colours.Title.Printf("%s\n", e.Title)
		if e.SourceURL != "" {
			fmt.Print("     ")
			colours.Source.Printf("%s\n", e.SourceURL)
		}
		colours.Info.Printf("     %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

// ListVoices prints the voices for the active (or requested) language.
func (a *App) ListVoices(cmd *cobra.Command, args []string) {
	snap := a.controller.Snapshot()
	lang := snap.Language
	voices := a.controller.Voices()
	if tag, _ := cmd.Flags().GetString("language"); tag != "" {
		parsed, ok := speech.ParseLanguage(tag)
		if !ok {
			colours.Error.Printf("❌ Unsupported language %q. Supported: %v\n", tag, speech.Languages())
			return
		}
		lang = parsed
		all, err := a.catalog.Voices()
		if err != nil {
			colours.Error.Printf("❌ %v\n", err)
			return
		}
		voices = speech.FilterByLanguage(all, lang)
	}

	fmt.Println()
	colours.Title.Printf("🗣 Voices for %s\n", lang.Label())
	fmt.Println()
	if len(voices) == 0 {
		colours.Warning.Println("No voices installed; the platform default will be used.")
		return
	}
	for _, v := range voices {
		marker := "  "
		if v.ID == snap.VoiceID {
			marker = "➤ "
		}
		fmt.Printf("  %s", marker)
		colours.Title.Printf("%s", v.Name)
		colours.Info.Printf("  [%s]  %s\n", v.Quality, v.ID)
	}
}

// ConfigureSettings shows and updates rate, language, and voice.
func (a *App) ConfigureSettings(cmd *cobra.Command, args []string) {
	if raw, _ := cmd.Flags().GetString("rate"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			colours.Error.Printf("❌ Invalid rate %q.\n", raw)
			return
		}
		a.controller.SetRate(r)
	}
	if tag, _ := cmd.Flags().GetString("language"); tag != "" {
		lang, ok := speech.ParseLanguage(tag)
		if !ok {
			colours.Error.Printf("❌ Unsupported language %q. Supported: %v\n", tag, speech.Languages())
			return
		}
		a.controller.SetLanguage(lang)
	}
	if id, _ := cmd.Flags().GetString("voice"); id != "" {
		a.controller.SelectVoice(id)
	}

	snap := a.controller.Snapshot()
	fmt.Println()
	colours.Title.Println("⚙ Settings")
	fmt.Println()
	fmt.Printf("  Language: %s (%s)\n", snap.Language.Label(), snap.Language)
	fmt.Printf("  Rate:     %.2f\n", snap.Rate)
	if v, ok := a.controller.SelectedVoice(); ok {
		fmt.Printf("  Voice:    %s [%s]\n", v.Name, v.Quality)
	} else {
		fmt.Printf("  Voice:    platform default for %s\n", snap.Language)
	}
}

// ShowWelcome prints the command overview.
func (a *App) ShowWelcome() {
	fmt.Println()
	colours.Title.Println("🔊 pagereader")
	fmt.Println()
	colours.Info.Println("Available commands:")
	fmt.Println("  • pagereader read <url>   - Read a web page aloud")
	fmt.Println("  • pagereader say [text]   - Read text (or stdin) aloud")
	fmt.Println("  • pagereader history      - Show reading history")
	fmt.Println("  • pagereader voices       - List voices for a language")
	fmt.Println("  • pagereader settings     - Show or change settings")
}
