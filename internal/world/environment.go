package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dgame/internal/entity"
	"github.com/samdwyer/dgame/internal/gamedata"
	"github.com/samdwyer/dgame/internal/grid"
	"github.com/samdwyer/dgame/internal/pathfind"
	"github.com/samdwyer/dgame/internal/telemetry"
)

var (
	// ErrNoRooms is returned when generation could not place a single room.
	ErrNoRooms = errors.New("no rooms generated")
	// ErrCellBlocked is returned when spawning onto an impassable cell.
	ErrCellBlocked = errors.New("cell is blocked")
	// ErrNoSpawnCell is returned when a room has no free cell left.
	ErrNoSpawnCell = errors.New("no free spawn cell")
)

// EnvironmentConfig sizes the grid and describes its rooms.
type EnvironmentConfig struct {
	Width, Height int
	Generator     GeneratorConfig
}

// Environment owns the grid, the rooms carved into it and the actors on it.
// It is the only mutator of grid state during play.
type Environment struct {
	Grid   *grid.Grid
	Rooms  []Room
	Actors []*entity.Actor

	finder *pathfind.Finder
	rng    *rand.Rand
	log    logr.Logger
}

// NewEnvironment allocates an all-blocked grid and carves rooms into it.
// The first room is where the party spawns.
func NewEnvironment(ctx context.Context, cfg EnvironmentConfig, rng *rand.Rand, log logr.Logger) (*Environment, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "environment.create")
	defer span.End()

	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	gen, err := NewGenerator(cfg.Generator, rng, WithLogger(log.WithName("generator")))
	if err != nil {
		return nil, err
	}

	rooms, err := gen.Generate(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("generating rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%w: %dx%d grid, %d requested", ErrNoRooms, cfg.Width, cfg.Height, cfg.Generator.Requested())
	}

	span.SetAttributes(
		attribute.Int("environment.width", cfg.Width),
		attribute.Int("environment.height", cfg.Height),
		attribute.Int("environment.rooms", len(rooms)),
	)

	return newEnvironment(g, rooms, rng, log), nil
}

// NewEnvironmentFromGrid wraps an already carved grid, e.g. a hand-built test map.
func NewEnvironmentFromGrid(g *grid.Grid, rooms []Room, rng *rand.Rand) *Environment {
	return newEnvironment(g, rooms, rng, logr.Discard())
}

func newEnvironment(g *grid.Grid, rooms []Room, rng *rand.Rand, log logr.Logger) *Environment {
	return &Environment{
		Grid:   g,
		Rooms:  rooms,
		finder: pathfind.NewFinder(g),
		rng:    rng,
		log:    log,
	}
}

// Spawn places an actor on a passable cell, which then becomes occupied and
// impassable.
func (e *Environment) Spawn(a *entity.Actor, c grid.Coord) error {
	cell, err := e.Grid.Cell(c)
	if err != nil {
		return err
	}
	if !cell.Passable {
		return fmt.Errorf("spawning %s at %v: %w", a, c, ErrCellBlocked)
	}

	e.occupy(a, c)
	a.Placed = true
	e.Actors = append(e.Actors, a)
	return nil
}

// SpawnInRoom places an actor on a random unoccupied floor cell of a room.
func (e *Environment) SpawnInRoom(a *entity.Actor, roomIndex int) error {
	if roomIndex < 0 || roomIndex >= len(e.Rooms) {
		return fmt.Errorf("spawning %s: room %d of %d: %w", a, roomIndex, len(e.Rooms), ErrNoSpawnCell)
	}
	c, ok := e.Rooms[roomIndex].RandomFree(e.rng, e.Grid.Passable)
	if !ok {
		return fmt.Errorf("spawning %s in room %d: %w", a, roomIndex, ErrNoSpawnCell)
	}
	return e.Spawn(a, c)
}

// SpawnParty puts every hero in the first room.
func (e *Environment) SpawnParty(p *entity.Party) error {
	for _, hero := range p.Heroes {
		if err := e.SpawnInRoom(hero, 0); err != nil {
			return err
		}
	}
	return nil
}

// SpawnCreatures places count weighted-random critters in random rooms.
// Critters that find no room are logged and dropped.
func (e *Environment) SpawnCreatures(registry *gamedata.CreatureRegistry, count int) []*entity.Actor {
	if len(e.Rooms) == 0 {
		if count > 0 {
			e.log.Info("no rooms to spawn creatures in", "requested", count)
		}
		return nil
	}

	var spawned []*entity.Actor
	for i := 0; i < count; i++ {
		def := registry.SpawnRandom(e.rng)
		if def == nil {
			break
		}
		a := entity.NewActorFromDef(def)
		if err := e.SpawnInRoom(a, e.rng.Intn(len(e.Rooms))); err != nil {
			e.log.Info("creature not spawned", "creature", def.ID, "error", err.Error())
			continue
		}
		spawned = append(spawned, a)
	}
	return spawned
}

// ActorAt returns the actor standing on c, or nil.
func (e *Environment) ActorAt(c grid.Coord) *entity.Actor {
	if a, ok := e.Grid.Occupant(c).(*entity.Actor); ok {
		return a
	}
	return nil
}

// RoomIndexAt returns the index of the room containing c, or -1 if not in a room.
func (e *Environment) RoomIndexAt(c grid.Coord) int {
	for i, room := range e.Rooms {
		if room.Contains(c) {
			return i
		}
	}
	return -1
}

func (e *Environment) occupy(a *entity.Actor, c grid.Coord) {
	_ = e.Grid.SetOccupant(c, a)
	_ = e.Grid.SetPassable(c, false)
	a.Pos = c
}

func (e *Environment) vacate(c grid.Coord) {
	_ = e.Grid.SetOccupant(c, nil)
	_ = e.Grid.SetPassable(c, true)
}
