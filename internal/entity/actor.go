// Package entity provides the heroes and critters that move on the grid.
package entity

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/dgame/internal/gamedata"
	"github.com/samdwyer/dgame/internal/grid"
)

// Actor is a creature that occupies a cell and spends moves each turn.
type Actor struct {
	ID       uuid.UUID
	Def      *gamedata.CreatureDef // nil for ad-hoc actors
	Name     string
	Symbol   rune
	Color    tcell.Color
	Pos      grid.Coord
	MaxMoves int // Move budget restored at the end of each turn
	Moves    int // Moves remaining this turn
	Hero     bool
	Placed   bool // Set once the actor stands on the grid
}

// NewActor creates an actor with a full move budget.
func NewActor(name string, symbol rune, moves int) *Actor {
	return &Actor{
		ID:       uuid.New(),
		Name:     name,
		Symbol:   symbol,
		Color:    tcell.ColorWhite,
		MaxMoves: moves,
		Moves:    moves,
	}
}

// NewActorFromDef creates an actor from a data-driven definition.
func NewActorFromDef(def *gamedata.CreatureDef) *Actor {
	a := NewActor(def.Name, def.GlyphRune(), def.Moves)
	a.Def = def
	a.Color = def.TCellColor()
	a.Hero = def.Hero
	return a
}

// String returns the actor's display name.
func (a *Actor) String() string {
	return a.Name
}

// HasMoves reports whether the actor can still move this turn.
func (a *Actor) HasMoves() bool {
	return a.Moves > 0
}

// SpendMove consumes one move and returns false if none were left.
func (a *Actor) SpendMove() bool {
	if a.Moves <= 0 {
		return false
	}
	a.Moves--
	return true
}

// ResetMoves restores the full move budget.
func (a *Actor) ResetMoves() {
	a.Moves = a.MaxMoves
}
