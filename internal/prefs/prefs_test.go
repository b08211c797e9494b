package prefs

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestSetGetInMemory(t *testing.T) {
	s := New(viper.New(), "")
	if err := s.Set("speech.voice", "voice.samantha"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := s.Get("speech.voice"); got != "voice.samantha" {
		t.Fatalf("get = %q", got)
	}
	if got := s.Get("speech.missing"); got != "" {
		t.Fatalf("missing key = %q", got)
	}
}

func TestSetWritesThroughToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagereader.yaml")

	s := New(viper.New(), path)
	if err := s.Set("speech.rate", "0.6"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reloaded := viper.New()
	reloaded.SetConfigFile(path)
	if err := reloaded.ReadInConfig(); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got := reloaded.GetString("speech.rate"); got != "0.6" {
		t.Fatalf("persisted rate = %q", got)
	}
}
