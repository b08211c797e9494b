package speech

import (
	"strings"
	"testing"
)

func TestFilterByLanguageExactMatchOnly(t *testing.T) {
	all := []Voice{
		{ID: "1", Name: "Samantha", Language: LangEnUS},
		{ID: "2", Name: "Daniel", Language: LangEnGB},
		{ID: "3", Name: "Mónica", Language: LangEsES},
		{ID: "4", Name: "Diego", Language: LangEsAR},
	}
	got := FilterByLanguage(all, LangEsES)
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("got %v", got)
	}
	// es-AR is not a dialect fallback for es-ES
	got = FilterByLanguage(all, LangEsAR)
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("got %v", got)
	}
}

func TestFilterByLanguageOrdering(t *testing.T) {
	all := []Voice{
		{ID: "z", Name: "Zoe", Language: LangEnUS},
		{ID: "t", Name: "Tom", Language: LangEnUS},
		{ID: "b", Name: "Bella", Language: LangEnUS},
		{ID: "a", Name: "Ava", Language: LangEnUS},
		{ID: "s", Name: "Samantha", Language: LangEnUS},
	}
	got := FilterByLanguage(all, LangEnUS)
	var names []string
	for _, v := range got {
		names = append(names, v.Name)
	}
	// Preferred names in list order first, then the rest alphabetically.
	want := "Samantha,Ava,Tom,Bella,Zoe"
	if strings.Join(names, ",") != want {
		t.Fatalf("order = %v, want %v", names, want)
	}
}

func TestDefaultVoiceEmptyList(t *testing.T) {
	if _, ok := DefaultVoice(nil); ok {
		t.Fatal("expected no voice for empty list")
	}
}

func TestDefaultVoiceUnlistedNamesFallToAlphabeticalFirst(t *testing.T) {
	filtered := FilterByLanguage([]Voice{
		{ID: "c", Name: "Carla", Language: LangFiFI},
		{ID: "a", Name: "Aino", Language: LangFiFI},
	}, LangFiFI)
	v, ok := DefaultVoice(filtered)
	if !ok || v.Name != "Aino" {
		t.Fatalf("got %v ok=%v", v, ok)
	}
}

func TestParseLanguage(t *testing.T) {
	if l, ok := ParseLanguage("en-GB"); !ok || l != LangEnGB {
		t.Fatalf("en-GB: %v %v", l, ok)
	}
	if _, ok := ParseLanguage("de-DE"); ok {
		t.Fatal("de-DE should not parse")
	}
	if _, ok := ParseLanguage(""); ok {
		t.Fatal("empty tag should not parse")
	}
}

func TestLanguageLabels(t *testing.T) {
	for _, l := range Languages() {
		if l.Label() == "" || l.Label() == string(l) {
			t.Errorf("language %s has no display label", l)
		}
	}
}

func TestDeriveTitle(t *testing.T) {
	if got := DeriveTitle("short"); got != "short" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("a", 60)
	got := DeriveTitle(long)
	if got != strings.Repeat("a", 50)+"…" {
		t.Fatalf("got %q", got)
	}
	// exactly at the limit: no ellipsis
	exact := strings.Repeat("b", 50)
	if got := DeriveTitle(exact); got != exact {
		t.Fatalf("got %q", got)
	}
	// rune-based, not byte-based
	accented := strings.Repeat("ä", 51)
	got = DeriveTitle(accented)
	if got != strings.Repeat("ä", 50)+"…" {
		t.Fatalf("got %q", got)
	}
}
