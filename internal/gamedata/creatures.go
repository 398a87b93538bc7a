package gamedata

import "github.com/gdamore/tcell/v2"

// CreatureDef defines a hero or critter loaded from JSON.
type CreatureDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "sheep")
	Name        string `json:"name"`        // Display name (e.g., "Sheep")
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "s")
	Color       string `json:"color"`       // Hex color code (e.g., "#FFFFFF")
	Moves       int    `json:"moves"`       // Move budget per turn
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
	Hero        bool   `json:"hero"`        // Controlled by the player
}

// GlyphRune returns the glyph as a rune for rendering.
func (c *CreatureDef) GlyphRune() rune {
	return glyphRune(c.Glyph, '?')
}

// TCellColor returns the color as a tcell.Color.
func (c *CreatureDef) TCellColor() tcell.Color {
	return colorOr(c.Color, tcell.ColorWhite)
}

// CreaturesFile represents the structure of creatures.json.
type CreaturesFile struct {
	Creatures []CreatureDef `json:"creatures"`
}

// LoadCreatures loads creature definitions from the embedded creatures.json file.
func LoadCreatures() ([]CreatureDef, error) {
	file, err := Load[CreaturesFile]("creatures.json")
	if err != nil {
		return nil, err
	}
	return file.Creatures, nil
}
