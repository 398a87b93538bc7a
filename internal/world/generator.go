// Package world provides room generation and the environment that actors
// move through.
package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dgame/internal/grid"
	"github.com/samdwyer/dgame/internal/telemetry"
)

// DefaultMaxAttempts is how many top-left corners are tried per room.
const DefaultMaxAttempts = 1000

var (
	// ErrNoRoomPlacement means a room exhausted its placement attempts. It is
	// logged, never returned: the map just ends up with fewer rooms.
	ErrNoRoomPlacement = errors.New("no free space for room")
	// ErrInvalidConfig is returned for malformed generator configuration.
	ErrInvalidConfig = errors.New("invalid generator config")
)

// SizeRange is a room size class. Width is drawn from [Min[0], Max[0]) and
// height from [Min[1], Max[1]).
type SizeRange struct {
	Min [2]int
	Max [2]int
}

// RoomQuota asks for Count rooms of the named size class.
type RoomQuota struct {
	Size  string
	Count int
}

// GeneratorConfig describes which rooms to place. Rooms are placed in quota
// order.
type GeneratorConfig struct {
	Sizes map[string]SizeRange
	Rooms []RoomQuota
}

// Validate checks size ranges and quotas.
func (c GeneratorConfig) Validate() error {
	for name, r := range c.Sizes {
		for dim := 0; dim < 2; dim++ {
			if r.Min[dim] < 1 || r.Max[dim] <= r.Min[dim] {
				return fmt.Errorf("%w: size %q has empty range [%d,%d)", ErrInvalidConfig, name, r.Min[dim], r.Max[dim])
			}
		}
	}
	for _, q := range c.Rooms {
		if _, ok := c.Sizes[q.Size]; !ok {
			return fmt.Errorf("%w: unknown size %q", ErrInvalidConfig, q.Size)
		}
		if q.Count < 0 {
			return fmt.Errorf("%w: negative count for size %q", ErrInvalidConfig, q.Size)
		}
	}
	return nil
}

// Requested returns the total number of rooms asked for.
func (c GeneratorConfig) Requested() int {
	n := 0
	for _, q := range c.Rooms {
		n += q.Count
	}
	return n
}

// Generator places non-overlapping rectangular rooms by rejection sampling.
type Generator struct {
	cfg         GeneratorConfig
	rng         *rand.Rand
	log         logr.Logger
	tracer      trace.Tracer
	maxAttempts int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger used for skipped rooms.
func WithLogger(log logr.Logger) GeneratorOption {
	return func(g *Generator) {
		g.log = log
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) {
		g.maxAttempts = n
	}
}

// WithTracer overrides the package tracer.
func WithTracer(t trace.Tracer) GeneratorOption {
	return func(g *Generator) {
		g.tracer = t
	}
}

// NewGenerator validates cfg and creates a generator drawing from rng.
func NewGenerator(cfg GeneratorConfig, rng *rand.Rand, opts ...GeneratorOption) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:         cfg,
		rng:         rng,
		log:         logr.Discard(),
		tracer:      telemetry.Tracer("world"),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.maxAttempts < 1 {
		return nil, fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, g.maxAttempts)
	}
	return g, nil
}

// placement tracks which cells are still open for new rooms during one
// Generate call.
type placement struct {
	grid *grid.Grid
	open *openSet
}

// Generate carves the configured rooms into g, which is expected to be all
// blocked. A one-cell border is never used. Rooms that cannot be placed are
// skipped. Only a cancelled context produces an error.
func (gen *Generator) Generate(ctx context.Context, g *grid.Grid) ([]Room, error) {
	ctx, span := gen.tracer.Start(ctx, "rooms.generate")
	defer span.End()

	startTime := time.Now()

	p := &placement{grid: g, open: newOpenSet(g.Size())}
	for y := 1; y < g.Height()-1; y++ {
		for x := 1; x < g.Width()-1; x++ {
			p.open.add(g.ID(grid.C(x, y)))
		}
	}

	rooms := make([]Room, 0, gen.cfg.Requested())
	skipped := 0
	for _, quota := range gen.cfg.Rooms {
		size := gen.cfg.Sizes[quota.Size]
		for i := 0; i < quota.Count; i++ {
			if err := ctx.Err(); err != nil {
				span.RecordError(err)
				return rooms, err
			}

			w := size.Min[0] + gen.rng.Intn(size.Max[0]-size.Min[0])
			h := size.Min[1] + gen.rng.Intn(size.Max[1]-size.Min[1])

			room, err := gen.place(p, w, h)
			if err != nil {
				skipped++
				gen.log.Info("room skipped", "size", quota.Size, "width", w, "height", h, "error", err.Error())
				span.AddEvent("room.skipped", trace.WithAttributes(
					attribute.String("room.size", quota.Size),
					attribute.Int("room.width", w),
					attribute.Int("room.height", h),
				))
				continue
			}
			rooms = append(rooms, room)
		}
	}

	span.SetAttributes(
		attribute.Int("grid.width", g.Width()),
		attribute.Int("grid.height", g.Height()),
		attribute.Int("rooms.requested", gen.cfg.Requested()),
		attribute.Int("rooms.placed", len(rooms)),
		attribute.Int("rooms.skipped", skipped),
		attribute.Int64("rooms.generation_ms", time.Since(startTime).Milliseconds()),
	)
	gen.log.V(1).Info("rooms generated", "placed", len(rooms), "skipped", skipped)

	return rooms, nil
}

// place tries up to maxAttempts random top-left corners for a w×h room.
func (gen *Generator) place(p *placement, w, h int) (Room, error) {
	for attempt := 0; attempt < gen.maxAttempts; attempt++ {
		if p.open.len() == 0 {
			break
		}
		origin := p.grid.CoordOf(p.open.random(gen.rng))
		room := Room{X: origin.X, Y: origin.Y, Width: w, Height: h}
		if !p.fits(room) {
			continue
		}
		p.claim(room)
		gen.carve(p.grid, &room)
		return room, nil
	}
	return Room{}, fmt.Errorf("%w: %dx%d after %d attempts", ErrNoRoomPlacement, w, h, gen.maxAttempts)
}

// fits reports whether the whole footprint, walls included, is still open.
func (p *placement) fits(r Room) bool {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			c := grid.C(x, y)
			if !p.grid.InBounds(c) || !p.open.has(p.grid.ID(c)) {
				return false
			}
		}
	}
	return true
}

// claim closes the footprint for all later rooms.
func (p *placement) claim(r Room) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			p.open.remove(p.grid.ID(grid.C(x, y)))
		}
	}
}

// carve turns the perimeter into walls and the interior into floor, and
// records both partitions on the room.
func (gen *Generator) carve(g *grid.Grid, r *Room) {
	r.Used = mapset.New[grid.Coord]()
	r.Free = mapset.New[grid.Coord]()

	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			c := grid.C(x, y)
			// Bounds were checked by fits.
			if r.onPerimeter(c) {
				_ = g.SetTile(c, grid.TileWall)
				_ = g.SetPassable(c, false)
				r.Used.Put(c)
			} else {
				_ = g.SetTile(c, grid.TileFloor)
				_ = g.SetPassable(c, true)
				r.Free.Put(c)
			}
		}
	}
}
