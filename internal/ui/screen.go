// Package ui draws the grid, actors and move overlays with tcell.
package ui

import "github.com/gdamore/tcell/v2"

// Screen wraps tcell.Screen with the few calls the renderer needs.
type Screen struct {
	screen tcell.Screen
}

// NewScreen opens the terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(s)
}

// newScreen initializes s for map drawing: black background, hidden cursor.
func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

func (s *Screen) Show() {
	s.screen.Show()
}

// Sync forces a full redraw after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// SetContent draws one map cell.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawString writes text left to right from (x, y), clipped at the right edge.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) {
	w, _ := s.screen.Size()
	for _, ch := range text {
		if x >= w {
			return
		}
		s.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Fits reports whether a w×h area fits in the terminal.
func (s *Screen) Fits(w, h int) bool {
	sw, sh := s.screen.Size()
	return w <= sw && h <= sh
}

// Beep rings the bell on a rejected move.
func (s *Screen) Beep() {
	_ = s.screen.Beep()
}
