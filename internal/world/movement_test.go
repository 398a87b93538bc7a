package world

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/dgame/internal/entity"
	"github.com/samdwyer/dgame/internal/grid"
)

// openEnvironment returns an environment whose grid is passable everywhere.
func openEnvironment(t *testing.T, w, h int) *Environment {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	g.Each(func(c grid.Cell) {
		g.SetPassable(c.Coord, true)
		g.SetTile(c.Coord, grid.TileFloor)
	})
	return NewEnvironmentFromGrid(g, nil, rand.New(rand.NewSource(1)))
}

func spawn(t *testing.T, env *Environment, name string, at grid.Coord, moves int) *entity.Actor {
	t.Helper()
	a := entity.NewActor(name, rune(name[0]), moves)
	if err := env.Spawn(a, at); err != nil {
		t.Fatalf("Spawn(%s, %v) failed: %v", name, at, err)
	}
	return a
}

func TestTryMoveSucceeds(t *testing.T) {
	env := openEnvironment(t, 6, 6)
	a := spawn(t, env, "A", grid.C(2, 2), 1)
	spawn(t, env, "B", grid.C(4, 4), 3)

	if !env.TryMove(a, grid.C(2, 3)) {
		t.Fatal("TryMove onto a free passable cell should succeed")
	}

	if a.Pos != grid.C(2, 3) {
		t.Errorf("Actor at %v, want (2,3)", a.Pos)
	}
	if env.ActorAt(grid.C(2, 3)) != a {
		t.Error("New cell should hold the actor")
	}
	if env.Grid.Passable(grid.C(2, 3)) {
		t.Error("New cell should be impassable while occupied")
	}
	if env.ActorAt(grid.C(2, 2)) != nil || !env.Grid.Passable(grid.C(2, 2)) {
		t.Error("Old cell should be empty and passable again")
	}
	if a.Moves != 0 {
		t.Errorf("Moves = %d, want 0", a.Moves)
	}

	if env.TryMove(a, grid.C(2, 4)) {
		t.Error("TryMove without moves left should fail")
	}
}

func TestTryMoveOntoOccupiedCellFails(t *testing.T) {
	env := openEnvironment(t, 6, 6)
	a := spawn(t, env, "A", grid.C(2, 2), 1)
	b := spawn(t, env, "B", grid.C(2, 3), 3)

	before := env.Grid.String()
	if env.TryMove(a, grid.C(2, 3)) {
		t.Fatal("TryMove onto an occupied cell should fail")
	}

	if env.Grid.String() != before {
		t.Error("Grid changed after a failed move")
	}
	if a.Pos != grid.C(2, 2) || a.Moves != 1 {
		t.Errorf("Mover changed: pos %v moves %d", a.Pos, a.Moves)
	}
	if env.ActorAt(grid.C(2, 3)) != b {
		t.Error("Target should still hold B")
	}
}

func TestTryMoveOutOfBoundsOrBlocked(t *testing.T) {
	env := openEnvironment(t, 4, 4)
	env.Grid.SetPassable(grid.C(1, 0), false)
	a := spawn(t, env, "A", grid.C(0, 0), 5)

	for _, target := range []grid.Coord{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0}} {
		if env.TryMove(a, target) {
			t.Errorf("TryMove to %v should fail", target)
		}
	}
	if a.Moves != 5 || a.Pos != grid.C(0, 0) {
		t.Errorf("Failed moves changed the actor: pos %v moves %d", a.Pos, a.Moves)
	}

	if !env.TryStep(a, 0, 1) || a.Pos != grid.C(0, 1) {
		t.Errorf("TryStep down failed, actor at %v", a.Pos)
	}
}

func TestTryMoveUnplacedActor(t *testing.T) {
	env := openEnvironment(t, 4, 4)
	a := entity.NewActor("ghost", 'g', 3)

	if env.TryMove(a, grid.C(1, 1)) {
		t.Error("An actor that was never spawned should not move")
	}
}

func TestReachablePositionsZeroMoves(t *testing.T) {
	env := openEnvironment(t, 7, 7)
	a := spawn(t, env, "A", grid.C(3, 3), 0)

	if got := env.ReachablePositions(context.Background(), a); got.Size() != 0 {
		t.Errorf("Expected no reachable cells with 0 moves, got %d", got.Size())
	}
}

func TestReachablePositionsOpenGridDiamond(t *testing.T) {
	for k := 1; k <= 4; k++ {
		env := openEnvironment(t, 11, 11)
		origin := grid.C(5, 5)
		a := spawn(t, env, "A", origin, k)

		got := env.ReachablePositions(context.Background(), a)
		if want := 2 * k * (k + 1); got.Size() != want {
			t.Errorf("k=%d: %d reachable cells, want %d", k, got.Size(), want)
		}
		if got.Has(origin) {
			t.Errorf("k=%d: origin should not be reachable", k)
		}
		got.Each(func(c grid.Coord) {
			if d := grid.Manhattan(origin, c); d < 1 || d > k {
				t.Errorf("k=%d: %v at distance %d", k, c, d)
			}
		})
	}
}

func TestReachablePositionsClipsAtEdges(t *testing.T) {
	env := openEnvironment(t, 5, 5)
	a := spawn(t, env, "A", grid.C(0, 0), 2)

	got := env.ReachablePositions(context.Background(), a)
	want := []grid.Coord{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}}
	if got.Size() != len(want) {
		t.Fatalf("%d reachable cells, want %d", got.Size(), len(want))
	}
	for _, c := range want {
		if !got.Has(c) {
			t.Errorf("Expected %v to be reachable", c)
		}
	}
}

func TestReachablePositionsRespectsPathCost(t *testing.T) {
	env := openEnvironment(t, 7, 7)
	for _, c := range []grid.Coord{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2}} {
		env.Grid.SetPassable(c, false)
	}
	a := spawn(t, env, "A", grid.C(3, 3), 2)
	spawn(t, env, "B", grid.C(3, 4), 1)

	got := env.ReachablePositions(context.Background(), a)

	// (3,1) is two cells away but the wall forces a long detour.
	if got.Has(grid.C(3, 1)) {
		t.Error("(3,1) should be out of reach behind the wall")
	}
	for _, blocked := range []grid.Coord{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2}, {X: 3, Y: 4}} {
		if got.Has(blocked) {
			t.Errorf("Blocked or occupied cell %v should not be reachable", blocked)
		}
	}
	for _, c := range []grid.Coord{{X: 2, Y: 3}, {X: 1, Y: 3}, {X: 4, Y: 3}, {X: 5, Y: 3}, {X: 2, Y: 4}, {X: 4, Y: 4}} {
		if !got.Has(c) {
			t.Errorf("Expected %v to be reachable", c)
		}
	}
}

func TestPathInsideFixedRoom(t *testing.T) {
	g, _ := grid.New(10, 10)
	gen, _ := NewGenerator(testGeneratorConfig(), rand.New(rand.NewSource(1)))
	room := Room{X: 2, Y: 2, Width: 5, Height: 5}
	gen.carve(g, &room)

	env := NewEnvironmentFromGrid(g, []Room{room}, rand.New(rand.NewSource(1)))
	a := spawn(t, env, "A", grid.C(3, 3), 10)

	p, ok, err := env.PathTo(a, grid.C(5, 5))
	if err != nil || !ok {
		t.Fatalf("PathTo failed: ok=%v err=%v", ok, err)
	}
	if p.TotalCost != 4 {
		t.Errorf("Corner-to-corner cost = %d, want 4", p.TotalCost)
	}
	for _, n := range p.Nodes {
		if !room.Free.Has(n) {
			t.Errorf("Path leaves the room interior at %v", n)
		}
	}

	if room.Free.Size() != 9 || room.Used.Size() != 16 {
		t.Errorf("Room partition = %d free / %d used, want 9 / 16", room.Free.Size(), room.Used.Size())
	}
}

func TestMoveTo(t *testing.T) {
	env := openEnvironment(t, 8, 8)
	a := spawn(t, env, "A", grid.C(1, 1), 4)

	if steps := env.MoveTo(a, grid.C(6, 6)); steps != 0 {
		t.Errorf("MoveTo beyond budget took %d steps", steps)
	}
	if a.Pos != grid.C(1, 1) || a.Moves != 4 {
		t.Errorf("Out-of-budget MoveTo changed the actor: pos %v moves %d", a.Pos, a.Moves)
	}

	if steps := env.MoveTo(a, grid.C(3, 3)); steps != 4 {
		t.Fatalf("MoveTo took %d steps, want 4", steps)
	}
	if a.Pos != grid.C(3, 3) || a.Moves != 0 {
		t.Errorf("Actor at %v with %d moves, want (3,3) with 0", a.Pos, a.Moves)
	}
	if env.ActorAt(grid.C(1, 1)) != nil {
		t.Error("Start cell should be vacated")
	}
}

func TestEndTurnRestoresMoves(t *testing.T) {
	env := openEnvironment(t, 5, 5)
	a := spawn(t, env, "A", grid.C(0, 0), 2)
	b := spawn(t, env, "B", grid.C(4, 4), 3)

	env.TryStep(a, 1, 0)
	env.TryStep(b, -1, 0)
	env.EndTurn()

	if a.Moves != 2 || b.Moves != 3 {
		t.Errorf("Moves after EndTurn = %d, %d; want 2, 3", a.Moves, b.Moves)
	}
}
