package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

var errNoBytes = errors.New("confloader: map provider has no byte form")

// mapProvider feeds an in-memory map of dotted keys to koanf. Keys are
// nested on read so they merge with file and env values.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) { return nil, errNoBytes }

func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, delim), nil
}
