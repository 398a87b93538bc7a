package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dgame/internal/entity"
	"github.com/samdwyer/dgame/internal/gamedata"
	"github.com/samdwyer/dgame/internal/grid"
	"github.com/samdwyer/dgame/internal/pathfind"
	"github.com/samdwyer/dgame/internal/world"
)

// Frame is everything drawn in one refresh.
type Frame struct {
	Env       *world.Environment
	Party     *entity.Party
	Biome     *gamedata.BiomeDef
	Reachable mapset.Set[grid.Coord] // highlighted move targets
	Path      pathfind.Path          // route to the cursor, if any
	Cursor    *grid.Coord
	Status    string
	Message   string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

var (
	reachableBg = tcell.NewRGBColor(30, 50, 90)
	pathBg      = tcell.NewRGBColor(90, 70, 20)
	cursorBg    = tcell.ColorDarkRed
)

// Render draws the map, overlays, actors and status lines.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	f.Env.Grid.Each(func(cell grid.Cell) {
		glyph, style := r.tileLook(f.Biome, cell.Tile)
		switch {
		case f.Cursor != nil && cell.Coord == *f.Cursor:
			style = style.Background(cursorBg)
		case f.Path.Contains(cell.Coord):
			style = style.Background(pathBg)
		case f.Reachable.Size() > 0 && f.Reachable.Has(cell.Coord):
			style = style.Background(reachableBg)
		}

		if a := f.Env.ActorAt(cell.Coord); a != nil {
			glyph = a.Symbol
			style = style.Foreground(a.Color)
			if f.Party != nil && a == f.Party.Active() {
				style = style.Bold(true).Underline(true)
			}
		}
		r.screen.SetContent(cell.Coord.X, cell.Coord.Y, glyph, style)
	})

	w, h := f.Env.Grid.Width(), f.Env.Grid.Height()
	status := f.Status
	if !r.screen.Fits(w, h+2) {
		status = fmt.Sprintf("Terminal too small for a %dx%d map. %s", w, h, status)
	}
	r.RenderMessage(status, h)
	r.RenderMessage(f.Message, h+1)

	r.screen.Show()
}

// tileLook returns the biome glyph and style for a tile class.
func (r *Renderer) tileLook(biome *gamedata.BiomeDef, t grid.Tile) (rune, tcell.Style) {
	if biome == nil {
		return t.Rune(), tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	var def gamedata.TileDef
	switch t {
	case grid.TileFloor:
		def = biome.Passable
	case grid.TileWall:
		def = biome.Wall
	default:
		def = biome.Unpassable
	}
	return def.GlyphRune(), tcell.StyleDefault.Foreground(def.TCellColor())
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawString(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}
