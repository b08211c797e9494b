//go:build !windows

package render

import (
	"fmt"

	"pagereader/internal/speech"
)

func newSAPIRenderer() (speech.Renderer, error) {
	return nil, fmt.Errorf("SAPI renderer only supports Windows")
}
