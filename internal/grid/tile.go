package grid

// Tile is the render class of a cell. The core never interprets it beyond
// carving; renderers map it to a glyph or image.
type Tile uint8

const (
	// TileUnpassable is solid rock, the state every cell starts in.
	TileUnpassable Tile = iota
	// TileFloor is the walkable interior of a room.
	TileFloor
	// TileWall is the perimeter of a room.
	TileWall
)

// String returns the tile class name used in data files.
func (t Tile) String() string {
	switch t {
	case TileUnpassable:
		return "unpassable"
	case TileFloor:
		return "passable"
	case TileWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Rune returns the fallback display character for the tile.
func (t Tile) Rune() rune {
	switch t {
	case TileFloor:
		return '.'
	case TileWall:
		return '#'
	default:
		return ' '
	}
}
