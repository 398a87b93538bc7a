package gamedata

import (
	"errors"
	"fmt"
	"sort"
)

// SizeRangeDef is a room size class. Width is drawn from [Min[0], Max[0])
// and height from [Min[1], Max[1]).
type SizeRangeDef struct {
	Min [2]int `json:"min"`
	Max [2]int `json:"max"`
}

// RoomQuotaDef asks for Count rooms of the named size class.
type RoomQuotaDef struct {
	Size  string `json:"size"`
	Count int    `json:"count"`
}

// MapDef is a named map-size preset.
type MapDef struct {
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Rooms  []RoomQuotaDef `json:"rooms"` // placed in order
}

// GeneratorFile represents the structure of generator.json.
type GeneratorFile struct {
	Sizes map[string]SizeRangeDef `json:"sizes"`
	Maps  map[string]MapDef       `json:"maps"`
}

// LoadGenerator loads room size classes and map presets from generator.json.
func LoadGenerator() (*GeneratorFile, error) {
	file, err := Load[GeneratorFile]("generator.json")
	if err != nil {
		return nil, err
	}
	if len(file.Maps) == 0 {
		return nil, errors.New("no map presets loaded from generator.json")
	}
	return &file, nil
}

// Map returns the preset with the given name.
func (f *GeneratorFile) Map(name string) (MapDef, error) {
	m, ok := f.Maps[name]
	if !ok {
		return MapDef{}, fmt.Errorf("unknown map size %q (have %v)", name, f.MapNames())
	}
	return m, nil
}

// MapNames returns the preset names in sorted order.
func (f *GeneratorFile) MapNames() []string {
	names := make([]string, 0, len(f.Maps))
	for name := range f.Maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
