package speech

// Language is a fixed, statically enumerated voice-language tag.
type Language string

const (
	LangEnUS Language = "en-US"
	LangEnGB Language = "en-GB"
	LangEsES Language = "es-ES"
	LangEsAR Language = "es-AR"
	LangFiFI Language = "fi-FI"
)

// Languages lists every supported language in display order.
func Languages() []Language {
	return []Language{LangEnUS, LangEnGB, LangEsES, LangEsAR, LangFiFI}
}

var languageLabels = map[Language]string{
	LangEnUS: "English (US)",
	LangEnGB: "English (UK)",
	LangEsES: "Español (España)",
	LangEsAR: "Español (Argentina)",
	LangFiFI: "Suomi",
}

// preferredVoiceNames orders well-known voice names per language. Voices not
// listed here sort after every listed one, alphabetically.
var preferredVoiceNames = map[Language][]string{
	LangEnUS: {"Samantha", "Ava", "Nicky", "Alex", "Tom"},
	LangEnGB: {"Daniel", "Kate", "Serena", "Oliver"},
	LangEsES: {"Mónica", "Marisol", "Jorge"},
	LangEsAR: {"Diego", "Isabela"},
	LangFiFI: {"Satu", "Onni"},
}

func (l Language) Valid() bool {
	_, ok := languageLabels[l]
	return ok
}

// Label returns the fixed display label for the language.
func (l Language) Label() string {
	if label, ok := languageLabels[l]; ok {
		return label
	}
	return string(l)
}

// PreferredVoices returns the fixed preferred-name ordering for the language.
func (l Language) PreferredVoices() []string {
	return preferredVoiceNames[l]
}

// ParseLanguage resolves a tag to a supported language.
func ParseLanguage(tag string) (Language, bool) {
	l := Language(tag)
	return l, l.Valid()
}
