package render

import (
	"os/exec"
	"strings"

	"pagereader/internal/speech"
)

// NewCatalog returns the voice catalog paired with a renderer type. Types
// without a live enumeration get a static catalog.
func NewCatalog(cfg Config) speech.Catalog {
	t := cfg.Type
	if t == TypeAuto.String() || t == "" {
		t = bestForPlatform().String()
	}
	switch t {
	case TypeESpeak.String():
		return &ESpeakCatalog{}
	case TypeSay.String():
		return &SayCatalog{}
	case TypeGoogle.String():
		return StaticCatalog(googleVoices)
	default:
		return StaticCatalog(mockVoices)
	}
}

// StaticCatalog is a fixed voice list.
type StaticCatalog []speech.Voice

func (c StaticCatalog) Voices() ([]speech.Voice, error) {
	return []speech.Voice(c), nil
}

// googleVoices covers the supported languages with Cloud TTS voices. Name
// tiers: Standard, Wavenet (enhanced), Neural2/Studio (premium). There are
// no es-AR voices in the service; that language renders with the service
// default.
var googleVoices = []speech.Voice{
	{ID: "en-US-Standard-C", Name: "en-US-Standard-C", Language: speech.LangEnUS, Quality: speech.QualityStandard},
	{ID: "en-US-Wavenet-D", Name: "en-US-Wavenet-D", Language: speech.LangEnUS, Quality: speech.QualityEnhanced},
	{ID: "en-US-Neural2-F", Name: "en-US-Neural2-F", Language: speech.LangEnUS, Quality: speech.QualityPremium},
	{ID: "en-US-Studio-O", Name: "en-US-Studio-O", Language: speech.LangEnUS, Quality: speech.QualityPremium},
	{ID: "en-GB-Standard-A", Name: "en-GB-Standard-A", Language: speech.LangEnGB, Quality: speech.QualityStandard},
	{ID: "en-GB-Wavenet-B", Name: "en-GB-Wavenet-B", Language: speech.LangEnGB, Quality: speech.QualityEnhanced},
	{ID: "en-GB-Neural2-C", Name: "en-GB-Neural2-C", Language: speech.LangEnGB, Quality: speech.QualityPremium},
	{ID: "es-ES-Standard-A", Name: "es-ES-Standard-A", Language: speech.LangEsES, Quality: speech.QualityStandard},
	{ID: "es-ES-Wavenet-B", Name: "es-ES-Wavenet-B", Language: speech.LangEsES, Quality: speech.QualityEnhanced},
	{ID: "es-ES-Neural2-A", Name: "es-ES-Neural2-A", Language: speech.LangEsES, Quality: speech.QualityPremium},
	{ID: "fi-FI-Standard-A", Name: "fi-FI-Standard-A", Language: speech.LangFiFI, Quality: speech.QualityStandard},
	{ID: "fi-FI-Wavenet-A", Name: "fi-FI-Wavenet-A", Language: speech.LangFiFI, Quality: speech.QualityEnhanced},
}

// mockVoices mirrors the preferred-name lists so the mock backend exercises
// the same selection policy as a real platform.
var mockVoices = []speech.Voice{
	{ID: "mock.samantha", Name: "Samantha", Language: speech.LangEnUS, Quality: speech.QualityEnhanced},
	{ID: "mock.ava", Name: "Ava", Language: speech.LangEnUS, Quality: speech.QualityPremium},
	{ID: "mock.alex", Name: "Alex", Language: speech.LangEnUS, Quality: speech.QualityStandard},
	{ID: "mock.daniel", Name: "Daniel", Language: speech.LangEnGB, Quality: speech.QualityEnhanced},
	{ID: "mock.kate", Name: "Kate", Language: speech.LangEnGB, Quality: speech.QualityStandard},
	{ID: "mock.monica", Name: "Mónica", Language: speech.LangEsES, Quality: speech.QualityEnhanced},
	{ID: "mock.diego", Name: "Diego", Language: speech.LangEsAR, Quality: speech.QualityStandard},
	{ID: "mock.satu", Name: "Satu", Language: speech.LangFiFI, Quality: speech.QualityStandard},
}

// ESpeakCatalog enumerates voices with `espeak --voices`.
type ESpeakCatalog struct{}

func (c *ESpeakCatalog) Voices() ([]speech.Voice, error) {
	path, err := findESpeakExecutable()
	if err != nil {
		return nil, err
	}
	out, err := exec.Command(path, "--voices").Output()
	if err != nil {
		return nil, err
	}
	return parseESpeakVoices(string(out)), nil
}

// parseESpeakVoices reads `espeak --voices` output. Each line is
// `Pty Language Age/Gender VoiceName File OtherLanguages`; only voices
// whose language resolves to a supported tag are kept.
func parseESpeakVoices(output string) []speech.Voice {
	lines := strings.Split(output, "\n")
	voices := make([]speech.Voice, 0)

	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		lang, ok := languageFromLocale(fields[1])
		if !ok {
			continue
		}
		voices = append(voices, speech.Voice{
			ID:       fields[3],
			Name:     fields[3],
			Language: lang,
			Quality:  speech.QualityStandard,
		})
	}

	return voices
}

// SayCatalog enumerates voices with `say -v ?` on macOS.
type SayCatalog struct{}

func (c *SayCatalog) Voices() ([]speech.Voice, error) {
	out, err := exec.Command("say", "-v", "?").Output()
	if err != nil {
		return nil, err
	}
	return parseSayVoices(string(out)), nil
}

// parseSayVoices reads `say -v ?` output. Each line is
// `VoiceName    locale    # sample sentence`; names can contain single
// spaces, the locale column is separated by a run of spaces.
func parseSayVoices(output string) []speech.Voice {
	var voices []speech.Voice
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, " \r")
		if line == "" {
			continue
		}
		head := line
		if i := strings.Index(line, "#"); i >= 0 {
			head = strings.TrimRight(line[:i], " ")
		}
		cut := strings.LastIndex(head, "  ")
		if cut < 0 {
			continue
		}
		name := strings.TrimRight(head[:cut], " ")
		locale := strings.TrimSpace(head[cut:])
		lang, ok := languageFromLocale(locale)
		if !ok || name == "" {
			continue
		}
		quality := speech.QualityStandard
		if strings.Contains(name, "(Enhanced)") {
			quality = speech.QualityEnhanced
		}
		if strings.Contains(name, "(Premium)") {
			quality = speech.QualityPremium
		}
		voices = append(voices, speech.Voice{ID: name, Name: name, Language: lang, Quality: quality})
	}
	return voices
}

// languageFromLocale maps platform locale spellings (en_US, en-us) to the
// supported language tags.
func languageFromLocale(locale string) (speech.Language, bool) {
	norm := strings.ReplaceAll(locale, "_", "-")
	parts := strings.SplitN(norm, "-", 2)
	if len(parts) == 2 {
		norm = strings.ToLower(parts[0]) + "-" + strings.ToUpper(parts[1])
	}
	return speech.ParseLanguage(norm)
}
