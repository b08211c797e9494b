package render

import (
	"testing"

	"pagereader/internal/speech"
)

const espeakVoicesOutput = `Pty Language Age/Gender VoiceName          File          Other Languages
 5  en-us          M  english-us           en-us
 5  en-gb          M  english              en
 5  es             M  spanish              es
 5  fi             M  finnish              fi
 5  fi-fi          F  finnish-fi           fi-fi
`

func TestParseESpeakVoicesKeepsSupportedLanguages(t *testing.T) {
	voices := parseESpeakVoices(espeakVoicesOutput)
	if len(voices) != 3 {
		t.Fatalf("got %d voices: %v", len(voices), voices)
	}
	if voices[0].ID != "english-us" || voices[0].Language != speech.LangEnUS {
		t.Fatalf("first voice: %+v", voices[0])
	}
	if voices[1].Language != speech.LangEnGB {
		t.Fatalf("second voice: %+v", voices[1])
	}
	if voices[2].Language != speech.LangFiFI {
		t.Fatalf("third voice: %+v", voices[2])
	}
}

func TestParseESpeakVoicesEmptyAndHeaderOnly(t *testing.T) {
	if got := parseESpeakVoices(""); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
	if got := parseESpeakVoices("Pty Language Age/Gender VoiceName File\n"); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

const sayVoicesOutput = `Samantha            en_US    # Hello! My name is Samantha.
Ava (Premium)       en_US    # Hello! My name is Ava.
Daniel              en_GB    # Hello! My name is Daniel.
Satu                fi_FI    # Hei! Nimeni on Satu.
Anna                de_DE    # Hallo! Ich heiße Anna.
`

func TestParseSayVoices(t *testing.T) {
	voices := parseSayVoices(sayVoicesOutput)
	if len(voices) != 4 {
		t.Fatalf("got %d voices: %v", len(voices), voices)
	}
	if voices[0].Name != "Samantha" || voices[0].Language != speech.LangEnUS {
		t.Fatalf("first voice: %+v", voices[0])
	}
	if voices[1].Name != "Ava (Premium)" || voices[1].Quality != speech.QualityPremium {
		t.Fatalf("premium voice: %+v", voices[1])
	}
	if voices[2].Language != speech.LangEnGB {
		t.Fatalf("en-GB voice: %+v", voices[2])
	}
	if voices[3].Language != speech.LangFiFI {
		t.Fatalf("fi-FI voice: %+v", voices[3])
	}
}

func TestLanguageFromLocale(t *testing.T) {
	cases := []struct {
		in   string
		want speech.Language
		ok   bool
	}{
		{"en_US", speech.LangEnUS, true},
		{"en-us", speech.LangEnUS, true},
		{"es_ES", speech.LangEsES, true},
		{"es_AR", speech.LangEsAR, true},
		{"de_DE", "", false},
		{"es", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := languageFromLocale(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("languageFromLocale(%q) = %v, %v", tc.in, got, ok)
		}
	}
}

func TestStaticCatalogCoversEveryLanguageButEsAR(t *testing.T) {
	all, err := StaticCatalog(googleVoices).Voices()
	if err != nil {
		t.Fatal(err)
	}
	for _, lang := range speech.Languages() {
		filtered := speech.FilterByLanguage(all, lang)
		if lang == speech.LangEsAR {
			if len(filtered) != 0 {
				t.Fatalf("expected no es-AR voices, got %v", filtered)
			}
			continue
		}
		if len(filtered) == 0 {
			t.Errorf("no voices for %s", lang)
		}
	}
}
