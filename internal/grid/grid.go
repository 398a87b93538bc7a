// Package grid provides the passability grid shared by generation, pathfinding
// and movement.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for any coordinate outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidSize is returned when a grid is built with non-positive dimensions.
	ErrInvalidSize = errors.New("invalid grid size")
)

// Occupant is anything that can stand on a cell.
type Occupant interface {
	String() string
}

// Cell is one grid position.
type Cell struct {
	Coord    Coord
	Passable bool
	Tile     Tile
	Occupant Occupant // nil when the cell is empty
}

// Occupied reports whether an occupant stands on the cell.
func (c Cell) Occupied() bool {
	return c.Occupant != nil
}

// Grid is a fixed-size, dense, row-major array of cells.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// New allocates a grid with every cell impassable.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	cells := make([]Cell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells[y*width+x] = Cell{
				Coord: Coord{X: x, Y: y},
				Tile:  TileUnpassable,
			}
		}
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the total number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// ID returns the linear id y*width + x of an in-bounds coordinate.
func (g *Grid) ID(c Coord) int {
	return c.Y*g.width + c.X
}

// CoordOf is the inverse of ID.
func (g *Grid) CoordOf(id int) Coord {
	return Coord{X: id % g.width, Y: id / g.width}
}

func (g *Grid) check(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v outside %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
	}
	return nil
}

// Cell returns a copy of the cell at c.
func (g *Grid) Cell(c Coord) (Cell, error) {
	if err := g.check(c); err != nil {
		return Cell{}, err
	}
	return g.cells[g.ID(c)], nil
}

// Passable reports whether c is in bounds and currently passable.
func (g *Grid) Passable(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.cells[g.ID(c)].Passable
}

// Occupant returns the occupant at c, or nil if the cell is empty or out of bounds.
func (g *Grid) Occupant(c Coord) Occupant {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[g.ID(c)].Occupant
}

// SetPassable sets the passability flag at c.
func (g *Grid) SetPassable(c Coord, passable bool) error {
	if err := g.check(c); err != nil {
		return err
	}
	g.cells[g.ID(c)].Passable = passable
	return nil
}

// SetOccupant sets or clears (nil) the occupant at c. Game rules are the
// caller's job; only bounds are checked.
func (g *Grid) SetOccupant(c Coord, o Occupant) error {
	if err := g.check(c); err != nil {
		return err
	}
	g.cells[g.ID(c)].Occupant = o
	return nil
}

// SetTile sets the render class at c.
func (g *Grid) SetTile(c Coord, t Tile) error {
	if err := g.check(c); err != nil {
		return err
	}
	g.cells[g.ID(c)].Tile = t
	return nil
}

// Neighbors4 returns the in-bounds axis neighbours of c in the order
// north, east, south, west.
func (g *Grid) Neighbors4(c Coord) []Coord {
	return g.AppendNeighbors4(make([]Coord, 0, 4), c)
}

// AppendNeighbors4 appends the neighbours of c to dst, avoiding an allocation
// in hot loops.
func (g *Grid) AppendNeighbors4(dst []Coord, c Coord) []Coord {
	for _, d := range [4]Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		n := c.Add(d.X, d.Y)
		if g.InBounds(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Cell)) {
	for i := range g.cells {
		fn(g.cells[i])
	}
}

// String renders the grid with one rune per cell, occupied cells as '@'.
func (g *Grid) String() string {
	buf := make([]rune, 0, (g.width+1)*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			cell := g.cells[y*g.width+x]
			if cell.Occupied() {
				buf = append(buf, '@')
				continue
			}
			buf = append(buf, cell.Tile.Rune())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
