package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/dgame/internal/entity"
	"github.com/samdwyer/dgame/internal/gamedata"
	"github.com/samdwyer/dgame/internal/grid"
)

func newTestEnvironment(t *testing.T, seed int64) *Environment {
	t.Helper()
	cfg := EnvironmentConfig{Width: 40, Height: 24, Generator: testGeneratorConfig()}
	env, err := NewEnvironment(context.Background(), cfg, rand.New(rand.NewSource(seed)), logr.Discard())
	if err != nil {
		t.Fatalf("NewEnvironment failed: %v", err)
	}
	return env
}

func TestNewEnvironment(t *testing.T) {
	env := newTestEnvironment(t, 12345)

	if env.Grid.Width() != 40 || env.Grid.Height() != 24 {
		t.Errorf("Grid is %dx%d, want 40x24", env.Grid.Width(), env.Grid.Height())
	}
	if len(env.Rooms) == 0 {
		t.Fatal("Expected at least one room")
	}
	for i, r := range env.Rooms {
		if idx := env.RoomIndexAt(r.Center()); idx != i {
			t.Errorf("RoomIndexAt(center of room %d) = %d", i, idx)
		}
	}
	if env.RoomIndexAt(grid.C(0, 0)) != -1 {
		t.Error("Border cell should not belong to a room")
	}
}

func TestNewEnvironmentErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := NewEnvironment(context.Background(), EnvironmentConfig{Width: 0, Height: 10, Generator: testGeneratorConfig()}, rng, logr.Discard())
	if !errors.Is(err, grid.ErrInvalidSize) {
		t.Errorf("Zero width error = %v, want ErrInvalidSize", err)
	}

	tiny := EnvironmentConfig{Width: 6, Height: 6, Generator: testGeneratorConfig()}
	_, err = NewEnvironment(context.Background(), tiny, rng, logr.Discard())
	if !errors.Is(err, ErrNoRooms) {
		t.Errorf("Tiny grid error = %v, want ErrNoRooms", err)
	}

	bad := EnvironmentConfig{Width: 20, Height: 20, Generator: GeneratorConfig{Rooms: []RoomQuota{{Size: "nope", Count: 1}}}}
	_, err = NewEnvironment(context.Background(), bad, rng, logr.Discard())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Bad config error = %v, want ErrInvalidConfig", err)
	}
}

func TestSpawnParty(t *testing.T) {
	env := newTestEnvironment(t, 42)
	party := entity.NewParty(
		entity.NewActor("Klara", '@', 5),
		entity.NewActor("Brom", '@', 4),
	)

	if err := env.SpawnParty(party); err != nil {
		t.Fatalf("SpawnParty failed: %v", err)
	}

	first := env.Rooms[0]
	seen := make(map[grid.Coord]bool)
	for _, hero := range party.Heroes {
		if !hero.Placed {
			t.Errorf("%s was not placed", hero)
		}
		if !first.Free.Has(hero.Pos) {
			t.Errorf("%s spawned at %v outside the first room's floor", hero, hero.Pos)
		}
		if seen[hero.Pos] {
			t.Errorf("Two heroes share %v", hero.Pos)
		}
		seen[hero.Pos] = true
		if env.ActorAt(hero.Pos) != hero || env.Grid.Passable(hero.Pos) {
			t.Errorf("Cell %v should be occupied by %s and impassable", hero.Pos, hero)
		}
	}
}

func TestSpawnBlocked(t *testing.T) {
	env := openEnvironment(t, 4, 4)
	env.Grid.SetPassable(grid.C(1, 1), false)

	if err := env.Spawn(entity.NewActor("A", 'a', 1), grid.C(1, 1)); !errors.Is(err, ErrCellBlocked) {
		t.Errorf("Spawn on blocked cell error = %v, want ErrCellBlocked", err)
	}
	if err := env.Spawn(entity.NewActor("A", 'a', 1), grid.C(9, 9)); !errors.Is(err, grid.ErrOutOfBounds) {
		t.Errorf("Spawn out of bounds error = %v, want ErrOutOfBounds", err)
	}
	if err := env.SpawnInRoom(entity.NewActor("A", 'a', 1), 0); !errors.Is(err, ErrNoSpawnCell) {
		t.Errorf("SpawnInRoom without rooms error = %v, want ErrNoSpawnCell", err)
	}
}

func TestSpawnInFullRoom(t *testing.T) {
	g, _ := grid.New(5, 5)
	gen, _ := NewGenerator(testGeneratorConfig(), rand.New(rand.NewSource(1)))
	room := Room{X: 1, Y: 1, Width: 3, Height: 3} // single floor cell at (2,2)
	gen.carve(g, &room)
	env := NewEnvironmentFromGrid(g, []Room{room}, rand.New(rand.NewSource(1)))

	if err := env.SpawnInRoom(entity.NewActor("A", 'a', 1), 0); err != nil {
		t.Fatalf("First spawn failed: %v", err)
	}
	if err := env.SpawnInRoom(entity.NewActor("B", 'b', 1), 0); !errors.Is(err, ErrNoSpawnCell) {
		t.Errorf("Second spawn error = %v, want ErrNoSpawnCell", err)
	}
}

func TestSpawnCreatures(t *testing.T) {
	env := newTestEnvironment(t, 7)
	registry := gamedata.NewCreatureRegistry([]gamedata.CreatureDef{
		{ID: "hero", Name: "Hero", Glyph: "@", Moves: 5, Hero: true},
		{ID: "sheep", Name: "Sheep", Glyph: "s", Moves: 2, SpawnWeight: 1},
	})

	spawned := env.SpawnCreatures(registry, 3)
	if len(spawned) != 3 {
		t.Fatalf("Spawned %d creatures, want 3", len(spawned))
	}
	for _, a := range spawned {
		if a.Def == nil || a.Def.ID != "sheep" {
			t.Errorf("Unexpected creature %+v", a.Def)
		}
		if env.RoomIndexAt(a.Pos) < 0 {
			t.Errorf("%s spawned outside any room at %v", a, a.Pos)
		}
	}
	if len(env.Actors) != 3 {
		t.Errorf("Environment tracks %d actors, want 3", len(env.Actors))
	}
}

func TestSpawnCreaturesWithoutRooms(t *testing.T) {
	env := openEnvironment(t, 4, 4)
	registry := gamedata.NewCreatureRegistry([]gamedata.CreatureDef{
		{ID: "sheep", Name: "Sheep", Glyph: "s", Moves: 2, SpawnWeight: 1},
	})

	if spawned := env.SpawnCreatures(registry, 1); len(spawned) != 0 {
		t.Errorf("Spawned %d creatures without rooms, want 0", len(spawned))
	}
	if len(env.Actors) != 0 {
		t.Errorf("Environment tracks %d actors, want 0", len(env.Actors))
	}
}
