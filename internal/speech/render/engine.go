// Package render provides the speech renderers: per-platform backends that
// turn a render request into audible output.
package render

import (
	"fmt"
	"os"
	"runtime"

	"pagereader/internal/speech"
)

// Type identifies a renderer backend.
type Type string

const (
	TypeMock   Type = "mock"
	TypeESpeak Type = "espeak"
	TypeSay    Type = "say"    // macOS only
	TypeSAPI   Type = "sapi"   // Windows only
	TypeGoogle Type = "googletts"
	TypeAuto   Type = "auto" // best available for the platform
)

func (t Type) String() string { return string(t) }

// Config selects and parameterizes a renderer backend.
type Config struct {
	Type string
	// CachePath is where the googletts backend keeps synthesized audio.
	CachePath string
}

// New creates a renderer from config. Type auto resolves to the best backend
// for the current platform.
func New(cfg Config) (speech.Renderer, error) {
	if cfg.Type == TypeAuto.String() || cfg.Type == "" {
		cfg.Type = bestForPlatform().String()
	}

	switch cfg.Type {
	case TypeMock.String():
		return NewMockRenderer(), nil

	case TypeESpeak.String():
		return newESpeakRenderer()

	case TypeSay.String():
		if runtime.GOOS != "darwin" {
			return nil, fmt.Errorf("say renderer only supports macOS")
		}
		return newSayRenderer()

	case TypeSAPI.String():
		if runtime.GOOS != "windows" {
			return nil, fmt.Errorf("SAPI renderer only supports Windows")
		}
		return newSAPIRenderer()

	case TypeGoogle.String():
		return newGoogleRenderer(cfg.CachePath)

	default:
		return nil, fmt.Errorf("unsupported renderer type: %s", cfg.Type)
	}
}

// bestForPlatform returns the recommended backend for the current platform.
func bestForPlatform() Type {
	if hasGoogleCredentials() {
		return TypeGoogle
	}

	switch runtime.GOOS {
	case "windows":
		return TypeSAPI
	case "darwin":
		return TypeSay
	default:
		return TypeESpeak
	}
}

// Available returns the backends usable on the current platform.
func Available() []Type {
	types := []Type{TypeMock, TypeESpeak}

	if hasGoogleCredentials() {
		types = append(types, TypeGoogle)
	}

	switch runtime.GOOS {
	case "windows":
		types = append(types, TypeSAPI)
	case "darwin":
		types = append(types, TypeSay)
	}

	return types
}

func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}

// speakingRatio maps the controller's rate domain onto a multiplier where
// the default rate is normal speed.
func speakingRatio(rate float64) float64 {
	if rate <= 0 {
		return 1
	}
	return rate / speech.DefaultRate
}
