// Package gamedata loads the embedded game data: map presets, room size
// classes, biomes and creatures.
package gamedata

import (
	"encoding/json"
	"fmt"

	"github.com/samdwyer/dgame/data"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := data.FS().ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}
