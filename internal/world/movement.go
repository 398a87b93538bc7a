package world

import (
	"context"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dgame/internal/entity"
	"github.com/samdwyer/dgame/internal/grid"
	"github.com/samdwyer/dgame/internal/pathfind"
	"github.com/samdwyer/dgame/internal/telemetry"
)

// TryMove moves an actor onto target if it has a move left and target is in
// bounds and passable. The old cell becomes passable again, the new one
// occupied and impassable. Nothing changes on failure.
func (e *Environment) TryMove(a *entity.Actor, target grid.Coord) bool {
	if !a.Placed || !a.HasMoves() || !e.Grid.Passable(target) {
		return false
	}

	e.vacate(a.Pos)
	e.occupy(a, target)
	a.SpendMove()
	return true
}

// TryStep moves an actor one cell in the given direction.
func (e *Environment) TryStep(a *entity.Actor, dx, dy int) bool {
	return e.TryMove(a, a.Pos.Add(dx, dy))
}

// MoveTo walks an actor along the shortest path to target, but only if the
// whole path fits in its remaining moves. It returns the number of steps taken.
func (e *Environment) MoveTo(a *entity.Actor, target grid.Coord) int {
	path, ok, err := e.PathTo(a, target)
	if err != nil || !ok || path.TotalCost > a.Moves || !e.Grid.Passable(target) {
		return 0
	}

	steps := 0
	for _, c := range path.Nodes[1:] {
		if !e.TryMove(a, c) {
			break
		}
		steps++
	}
	return steps
}

// PathTo returns the shortest path from the actor's cell to target.
func (e *Environment) PathTo(a *entity.Actor, target grid.Coord) (pathfind.Path, bool, error) {
	return e.finder.FindPath(a.Pos, target)
}

// ReachablePositions returns every passable cell the actor could reach with
// its remaining moves, excluding its own cell. Each candidate inside the
// Manhattan diamond gets its own search, which is fine for single-digit
// budgets.
func (e *Environment) ReachablePositions(ctx context.Context, a *entity.Actor) mapset.Set[grid.Coord] {
	_, span := telemetry.Tracer("world").Start(ctx, "world.reachable")
	defer span.End()

	reachable := mapset.New[grid.Coord]()
	moves := a.Moves
	span.SetAttributes(
		attribute.String("actor", a.Name),
		attribute.Int("actor.moves", moves),
	)
	if moves <= 0 {
		return reachable
	}

	origin := a.Pos
	minX, maxX := max(origin.X-moves, 0), min(origin.X+moves, e.Grid.Width()-1)
	minY, maxY := max(origin.Y-moves, 0), min(origin.Y+moves, e.Grid.Height()-1)

	searches := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			c := grid.C(x, y)
			if d := grid.Manhattan(origin, c); d == 0 || d > moves {
				continue
			}
			if !e.Grid.Passable(c) {
				continue
			}
			searches++
			path, ok, err := e.finder.FindPath(origin, c)
			if err != nil || !ok {
				continue
			}
			if path.Len() <= moves+1 {
				reachable.Put(c)
			}
		}
	}

	span.SetAttributes(
		attribute.Int("reachable.searches", searches),
		attribute.Int("reachable.count", reachable.Size()),
	)
	return reachable
}

// EndTurn restores every actor's move budget.
func (e *Environment) EndTurn() {
	for _, a := range e.Actors {
		a.ResetMoves()
	}
}
