// Package game provides the main game loop and turn handling.
package game

// Mode represents how keyboard input is interpreted.
type Mode int

const (
	// ModeMove is the default mode: arrows step the active hero.
	ModeMove Mode = iota
	// ModeLook moves a cursor instead; the route from the active hero to the
	// cursor is highlighted and confirming walks it.
	ModeLook
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeLook:
		return "look"
	default:
		return "unknown"
	}
}
