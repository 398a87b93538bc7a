package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dgame/internal/entity"
	"github.com/samdwyer/dgame/internal/gamedata"
	"github.com/samdwyer/dgame/internal/grid"
	"github.com/samdwyer/dgame/internal/telemetry"
	"github.com/samdwyer/dgame/internal/ui"
	"github.com/samdwyer/dgame/internal/world"
)

// Action is a resolved player intent.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionCycleHero
	ActionEndTurn
	ActionToggleLook
	ActionConfirm
	ActionQuit
)

var actionNames = map[Action]string{
	ActionUp:         "up",
	ActionDown:       "down",
	ActionLeft:       "left",
	ActionRight:      "right",
	ActionCycleHero:  "cycle_hero",
	ActionEndTurn:    "end_turn",
	ActionToggleLook: "toggle_look",
	ActionConfirm:    "confirm",
	ActionQuit:       "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

// Game holds the entire game state.
type Game struct {
	cfg      Config
	log      logr.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	env      *world.Environment
	party    *entity.Party
	biome    *gamedata.BiomeDef
	seed     int64
	mode     Mode
	cursor   grid.Coord
	turn     int
	message  string
	running  bool
}

// New creates a new game instance with a terminal screen.
func New(cfg Config, log logr.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := newGame(cfg, log)
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	return g, nil
}

// NewHeadless builds the world without a terminal, for map dumps.
func NewHeadless(ctx context.Context, cfg Config, log logr.Logger) (*Game, error) {
	g := newGame(cfg, log)
	if err := g.setup(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

func newGame(cfg Config, log logr.Logger) *Game {
	return &Game{
		cfg:     cfg,
		log:     log,
		mode:    ModeMove,
		turn:    1,
		running: true,
	}
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	if err := g.setup(ctx); err != nil {
		return err
	}

	for g.running {
		g.renderer.Render(g.frame(ctx))
		g.handleInput(ctx)
	}
	return nil
}

// setup loads data, builds the environment and places every actor.
func (g *Game) setup(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	genData, err := gamedata.LoadGenerator()
	if err != nil {
		return err
	}
	mapDef, err := genData.Map(g.cfg.MapSize)
	if err != nil {
		return err
	}
	g.biome, err = gamedata.LoadBiome(g.cfg.Biome)
	if err != nil {
		return err
	}
	registry, err := gamedata.LoadCreatureRegistry()
	if err != nil {
		return err
	}

	g.seed = g.cfg.resolveSeed()
	rng := rand.New(rand.NewSource(g.seed))
	g.log.Info("creating world", "seed", g.seed, "mapSize", g.cfg.MapSize, "biome", g.biome.ID)

	g.env, err = world.NewEnvironment(ctx, environmentConfig(genData, mapDef), rng, g.log.WithName("world"))
	if err != nil {
		return fmt.Errorf("creating environment (seed %d): %w", g.seed, err)
	}

	heroes := make([]*entity.Actor, 0, 2)
	for _, def := range registry.Heroes() {
		heroes = append(heroes, entity.NewActorFromDef(def))
	}
	g.party = entity.NewParty(heroes...)
	if err := g.env.SpawnParty(g.party); err != nil {
		return err
	}
	critters := g.env.SpawnCreatures(registry, g.cfg.Creatures)

	if hero := g.party.Active(); hero != nil {
		g.cursor = hero.Pos
	}
	g.message = fmt.Sprintf("Seed %d. Arrows move, tab switches hero, e ends turn, v looks, q quits.", g.seed)

	span.SetAttributes(
		attribute.Int64("game.seed", g.seed),
		attribute.Int("environment.rooms", len(g.env.Rooms)),
		attribute.Int("party.size", g.party.Size()),
		attribute.Int("creatures.spawned", len(critters)),
	)
	return nil
}

// environmentConfig converts the data file presets into generator input.
func environmentConfig(data *gamedata.GeneratorFile, m gamedata.MapDef) world.EnvironmentConfig {
	sizes := make(map[string]world.SizeRange, len(data.Sizes))
	for name, s := range data.Sizes {
		sizes[name] = world.SizeRange{Min: s.Min, Max: s.Max}
	}
	quotas := make([]world.RoomQuota, 0, len(m.Rooms))
	for _, q := range m.Rooms {
		quotas = append(quotas, world.RoomQuota{Size: q.Size, Count: q.Count})
	}
	return world.EnvironmentConfig{
		Width:     m.Width,
		Height:    m.Height,
		Generator: world.GeneratorConfig{Sizes: sizes, Rooms: quotas},
	}
}

// frame collects what the renderer needs for one draw.
func (g *Game) frame(ctx context.Context) ui.Frame {
	f := ui.Frame{
		Env:     g.env,
		Party:   g.party,
		Biome:   g.biome,
		Status:  g.status(),
		Message: g.message,
	}

	hero := g.party.Active()
	if hero == nil {
		return f
	}
	f.Reachable = g.env.ReachablePositions(ctx, hero)
	if g.mode == ModeLook {
		cursor := g.cursor
		f.Cursor = &cursor
		if path, ok, err := g.env.PathTo(hero, cursor); err == nil && ok {
			f.Path = path
			f.Message = fmt.Sprintf("%v is %d moves away (%d left).", path.Goal(), path.TotalCost, hero.Moves)
		}
	}
	return f
}

func (g *Game) status() string {
	hero := g.party.Active()
	if hero == nil {
		return fmt.Sprintf("Turn %d", g.turn)
	}
	return fmt.Sprintf("Turn %d | %s %d/%d moves | %s", g.turn, hero.Name, hero.Moves, hero.MaxMoves, g.mode)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.apply(ctx, actionForKey(ev))
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// actionForKey maps keyboard input to an action.
func actionForKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyTab:
		return ActionCycleHero
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return ActionQuit
		case 'e', 'E':
			return ActionEndTurn
		case 'v', 'V':
			return ActionToggleLook
		}
	}
	return ActionNone
}

// apply runs one action to completion inside a game.action span.
func (g *Game) apply(ctx context.Context, a Action) {
	if a == ActionNone {
		return
	}
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.action", trace.WithAttributes(
		attribute.String("game.action", a.String()),
		attribute.String("game.mode", g.mode.String()),
		attribute.Int("game.turn", g.turn),
	))
	defer span.End()
	if hero := g.party.Active(); hero != nil {
		span.SetAttributes(attribute.String("hero.name", hero.Name))
	}

	switch a {
	case ActionQuit:
		g.running = false
	case ActionUp:
		span.SetAttributes(attribute.Bool("action.ok", g.direction(0, -1)))
	case ActionDown:
		span.SetAttributes(attribute.Bool("action.ok", g.direction(0, 1)))
	case ActionLeft:
		span.SetAttributes(attribute.Bool("action.ok", g.direction(-1, 0)))
	case ActionRight:
		span.SetAttributes(attribute.Bool("action.ok", g.direction(1, 0)))
	case ActionCycleHero:
		if hero := g.party.Cycle(); hero != nil {
			g.cursor = hero.Pos
			g.message = hero.Name + " is active."
			span.SetAttributes(attribute.String("hero.active", hero.Name))
		}
	case ActionEndTurn:
		g.endTurn(ctx)
	case ActionToggleLook:
		g.toggleLook()
	case ActionConfirm:
		steps := g.confirm()
		span.SetAttributes(attribute.Int("action.steps", steps))
	}
}

// direction steps the hero in move mode or the cursor in look mode. It
// reports whether anything moved.
func (g *Game) direction(dx, dy int) bool {
	if g.mode == ModeLook {
		next := g.cursor.Add(dx, dy)
		if !g.env.Grid.InBounds(next) {
			return false
		}
		g.cursor = next
		return true
	}

	hero := g.party.Active()
	if hero == nil {
		return false
	}
	if !g.env.TryStep(hero, dx, dy) {
		if g.screen != nil {
			g.screen.Beep()
		}
		if !hero.HasMoves() {
			g.message = hero.Name + " has no moves left. Press e to end the turn."
		} else {
			g.message = "Blocked."
		}
		return false
	}
	g.cursor = hero.Pos
	g.message = ""
	return true
}

func (g *Game) toggleLook() {
	if g.mode == ModeLook {
		g.mode = ModeMove
		return
	}
	g.mode = ModeLook
	if hero := g.party.Active(); hero != nil {
		g.cursor = hero.Pos
	}
}

// confirm walks the active hero to the look cursor and returns the steps taken.
func (g *Game) confirm() int {
	hero := g.party.Active()
	if g.mode != ModeLook || hero == nil {
		return 0
	}
	steps := g.env.MoveTo(hero, g.cursor)
	if steps == 0 {
		g.message = "Out of reach."
		return 0
	}
	g.mode = ModeMove
	g.message = ""
	return steps
}

// endTurn refills every actor's moves.
func (g *Game) endTurn(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.end_turn")
	span.SetAttributes(attribute.Int("game.turn", g.turn))
	defer span.End()

	g.env.EndTurn()
	g.turn++
	g.message = fmt.Sprintf("Turn %d begins.", g.turn)
}

// WriteMap writes the seed, a room summary and the map with actors marked.
func (g *Game) WriteMap(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "seed %d, %d rooms\n", g.seed, len(g.env.Rooms)); err != nil {
		return err
	}
	for i, r := range g.env.Rooms {
		if _, err := fmt.Fprintf(w, "room %d: %dx%d at %v, center %v, %d free cells\n", i, r.Width, r.Height, r.Origin(), r.Center(), r.Free.Size()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, g.env.Grid.String())
	return err
}
