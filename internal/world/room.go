package world

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dgame/internal/grid"
)

// Room is a rectangle carved by the generator: a wall perimeter around a
// floor interior.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions including the walls

	Used mapset.Set[grid.Coord] // Perimeter wall cells
	Free mapset.Set[grid.Coord] // Interior floor cells, spawn candidates
}

// Origin returns the top-left corner.
func (r Room) Origin() grid.Coord {
	return grid.C(r.X, r.Y)
}

// Center returns the center coordinates of the room.
func (r Room) Center() grid.Coord {
	return grid.C(r.X+r.Width/2, r.Y+r.Height/2)
}

// Contains returns true if the given point is inside the room's footprint.
func (r Room) Contains(c grid.Coord) bool {
	return c.X >= r.X && c.X < r.X+r.Width && c.Y >= r.Y && c.Y < r.Y+r.Height
}

// intersects reports whether the two footprints overlap.
func (r Room) intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// onPerimeter reports whether c lies on the room's edge.
func (r Room) onPerimeter(c grid.Coord) bool {
	return c.X == r.X || c.Y == r.Y || c.X == r.X+r.Width-1 || c.Y == r.Y+r.Height-1
}

// FreeCells returns the interior cells in row-major order. Iterating the
// rectangle rather than the set keeps seeded spawning deterministic.
func (r Room) FreeCells() []grid.Coord {
	cells := make([]grid.Coord, 0, r.Free.Size())
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if c := grid.C(x, y); r.Free.Has(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// RandomFree returns a random interior cell that accept approves, or false
// when none does.
func (r Room) RandomFree(rng *rand.Rand, accept func(grid.Coord) bool) (grid.Coord, bool) {
	var candidates []grid.Coord
	for _, c := range r.FreeCells() {
		if accept == nil || accept(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return grid.Coord{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
