package pathfind

import (
	"github.com/samdwyer/dgame/internal/grid"
)

type nodeState uint8

const (
	stateOpen nodeState = iota + 1
	stateClosed
)

// node is an arena entry indexed by the cell's linear id. A node only counts
// as touched when its stamp matches the finder's current search.
type node struct {
	cost     int
	estimate int
	parent   int // linear id, -1 for the start
	stamp    uint32
	state    nodeState
}

// Finder runs A* searches on one grid. The node arena and open list are
// reused between calls, so a Finder must not be shared across goroutines.
type Finder struct {
	grid  *grid.Grid
	nodes []node
	open  []int // linear ids in insertion order
	nbuf  []grid.Coord
	stamp uint32
}

// NewFinder creates a finder for g.
func NewFinder(g *grid.Grid) *Finder {
	return &Finder{
		grid:  g,
		nodes: make([]node, g.Size()),
		open:  make([]int, 0, 64),
		nbuf:  make([]grid.Coord, 0, 4),
	}
}

// FindPath returns the cheapest 4-connected path from one cell to another.
//
// Cells along the way must be passable; the goal itself is accepted regardless
// of its passability, so whether the last step is legal stays the caller's
// decision. The start cell is never checked. ok is false when no route
// exists, which is not an error. err wraps grid.ErrOutOfBounds when either
// end lies outside the grid.
func (f *Finder) FindPath(from, to grid.Coord) (path Path, ok bool, err error) {
	if _, err := f.grid.Cell(from); err != nil {
		return Path{}, false, err
	}
	if _, err := f.grid.Cell(to); err != nil {
		return Path{}, false, err
	}

	if from == to {
		return Path{Nodes: []grid.Coord{from}}, true, nil
	}

	f.reset()
	start := f.grid.ID(from)
	f.nodes[start] = node{
		cost:     0,
		estimate: grid.Manhattan(from, to),
		parent:   -1,
		stamp:    f.stamp,
		state:    stateOpen,
	}
	f.open = append(f.open, start)

	for {
		i := f.best()
		if i < 0 {
			return Path{}, false, nil
		}
		current := f.closeAt(i)
		if goal := f.expand(current, to); goal >= 0 {
			return f.trace(goal), true, nil
		}
	}
}

func (f *Finder) reset() {
	f.stamp++
	if f.stamp == 0 {
		// Wrapped around; stale stamps could now collide.
		clear(f.nodes)
		f.stamp = 1
	}
	f.open = f.open[:0]
}

// best returns the open-list position of the node with the lowest estimate.
// On equal estimates the earliest inserted node wins.
func (f *Finder) best() int {
	bestIdx := -1
	bestEstimate := 0
	for i, id := range f.open {
		if e := f.nodes[id].estimate; bestIdx < 0 || e < bestEstimate {
			bestIdx = i
			bestEstimate = e
		}
	}
	return bestIdx
}

// closeAt moves the node at open-list position i to the closed set.
func (f *Finder) closeAt(i int) int {
	id := f.open[i]
	f.open = append(f.open[:i], f.open[i+1:]...)
	f.nodes[id].state = stateClosed
	return id
}

// removeOpen drops id from the open list, keeping insertion order.
func (f *Finder) removeOpen(id int) {
	for i, o := range f.open {
		if o == id {
			f.open = append(f.open[:i], f.open[i+1:]...)
			return
		}
	}
}

// expand pushes the neighbours of current and returns the goal's id once it
// is generated, -1 otherwise.
func (f *Finder) expand(current int, to grid.Coord) int {
	cost := f.nodes[current].cost + 1
	f.nbuf = f.grid.AppendNeighbors4(f.nbuf[:0], f.grid.CoordOf(current))

	for _, c := range f.nbuf {
		isGoal := c == to
		if !isGoal && !f.grid.Passable(c) {
			continue
		}

		id := f.grid.ID(c)
		if isGoal {
			f.nodes[id] = node{cost: cost, estimate: cost, parent: current, stamp: f.stamp, state: stateClosed}
			return id
		}

		n := &f.nodes[id]
		if n.stamp == f.stamp {
			if n.state == stateClosed || cost >= n.cost {
				continue
			}
			f.removeOpen(id)
		}

		*n = node{
			cost:     cost,
			estimate: cost + grid.Manhattan(c, to),
			parent:   current,
			stamp:    f.stamp,
			state:    stateOpen,
		}
		f.open = append(f.open, id)
	}
	return -1
}

// trace walks parent links back from the goal.
func (f *Finder) trace(goal int) Path {
	total := f.nodes[goal].cost
	nodes := make([]grid.Coord, total+1)
	for i, id := total, goal; id >= 0; i, id = i-1, f.nodes[id].parent {
		nodes[i] = f.grid.CoordOf(id)
	}
	return Path{Nodes: nodes, TotalCost: total}
}
