//go:build !darwin

package render

import (
	"fmt"

	"pagereader/internal/speech"
)

func newSayRenderer() (speech.Renderer, error) {
	return nil, fmt.Errorf("say renderer only supports macOS")
}
