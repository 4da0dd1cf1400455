// Package terminal defines the drawing surface the editor renders into and
// implements it on top of termbox.
package terminal

import "errors"

// ErrNotTerminal is returned by Open when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Size is the number of rows and columns of a screen area.
type Size struct {
	Height int
	Width  int
}

// IsZero reports whether the area has no cells.
func (s Size) IsZero() bool {
	return s.Height <= 0 || s.Width <= 0
}

// Position is a screen cell, 0-based from the top-left corner.
type Position struct {
	Row int
	Col int
}

// Surface is the output sink. Text is written at the caret, which advances by
// the number of columns written. Nothing is visible before Flush.
type Surface interface {
	Size() (Size, error)
	MoveCaret(to Position) error
	HideCaret() error
	ShowCaret() error
	ClearLine() error
	ClearScreen() error
	WriteText(text string) error
	WriteStyled(text string, color ColorName) error
	Flush() error
	SetTitle(title string) error
}
