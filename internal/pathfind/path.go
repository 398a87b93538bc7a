// Package pathfind implements A* search over a grid.Grid.
package pathfind

import "github.com/samdwyer/dgame/internal/grid"

// Path is a route from start to goal, both inclusive.
type Path struct {
	Nodes     []grid.Coord
	TotalCost int
}

// Len returns the number of nodes in the path.
func (p Path) Len() int {
	return len(p.Nodes)
}

// Goal returns the last node of the path.
func (p Path) Goal() grid.Coord {
	return p.Nodes[len(p.Nodes)-1]
}

// Contains reports whether c lies on the path.
func (p Path) Contains(c grid.Coord) bool {
	for _, n := range p.Nodes {
		if n == c {
			return true
		}
	}
	return false
}
