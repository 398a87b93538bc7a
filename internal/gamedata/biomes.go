package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TileDef is the look of one tile class within a biome.
type TileDef struct {
	Glyph string `json:"glyph"`
	Color string `json:"color"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (t TileDef) GlyphRune() rune {
	return glyphRune(t.Glyph, ' ')
}

// TCellColor returns the color as a tcell.Color.
func (t TileDef) TCellColor() tcell.Color {
	return colorOr(t.Color, tcell.ColorGray)
}

// BiomeDef holds the three tile classes a map is drawn with.
type BiomeDef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Unpassable TileDef `json:"unpassable"`
	Passable   TileDef `json:"passable"`
	Wall       TileDef `json:"wall"`
}

// BiomesFile represents the structure of biomes.json.
type BiomesFile struct {
	Biomes []BiomeDef `json:"biomes"`
}

// LoadBiomes loads biome definitions from the embedded biomes.json file.
func LoadBiomes() ([]BiomeDef, error) {
	file, err := Load[BiomesFile]("biomes.json")
	if err != nil {
		return nil, err
	}
	return file.Biomes, nil
}

// LoadBiome loads the biome with the given ID.
func LoadBiome(id string) (*BiomeDef, error) {
	biomes, err := LoadBiomes()
	if err != nil {
		return nil, err
	}
	for i := range biomes {
		if biomes[i].ID == id {
			return &biomes[i], nil
		}
	}
	return nil, fmt.Errorf("unknown biome %q", id)
}
