package entity

// Party is the player's group of heroes. One hero is active at a time and
// receives movement intents.
type Party struct {
	Heroes []*Actor
	active int
}

// NewParty creates a party with the first hero active.
func NewParty(heroes ...*Actor) *Party {
	return &Party{Heroes: heroes}
}

// Active returns the hero receiving commands, or nil for an empty party.
func (p *Party) Active() *Actor {
	if len(p.Heroes) == 0 {
		return nil
	}
	return p.Heroes[p.active]
}

// Cycle makes the next hero active and returns it.
func (p *Party) Cycle() *Actor {
	if len(p.Heroes) == 0 {
		return nil
	}
	p.active = (p.active + 1) % len(p.Heroes)
	return p.Heroes[p.active]
}

// Size returns the number of heroes.
func (p *Party) Size() int {
	return len(p.Heroes)
}
