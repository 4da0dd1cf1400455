package view

// Cursor movement and scrolling. The cursor is kept as a Location (line,
// grapheme) and only turned into a column when it has to be drawn or kept in
// view. Movement never wraps to the previous or next line.

import (
	"github.com/mnkhoi/kedit/internal/command"
	"github.com/mnkhoi/kedit/internal/terminal"
)

// Move moves the cursor one step, one page, or to either end of the line.
func (v *View) Move(dir command.Direction) {
	switch dir {
	case command.Up:
		v.moveUp(1)
	case command.Down:
		v.moveDown(1)
	case command.Left:
		v.moveLeft()
	case command.Right:
		v.moveRight()
	case command.PageUp:
		v.moveUp(v.size.Height)
	case command.PageDown:
		v.moveDown(v.size.Height)
	case command.Home:
		v.location.GraphemeIndex = 0
	case command.End:
		v.location.GraphemeIndex = v.buffer.GraphemeCount(v.location.LineIndex)
	}
	v.snapToValidGrapheme()
	v.snapToValidLine()
	v.scrollLocationIntoView()
}

func (v *View) moveUp(step int) {
	v.location.LineIndex = saturatingSub(v.location.LineIndex, step)
}

func (v *View) moveDown(step int) {
	v.location.LineIndex = saturatingAdd(v.location.LineIndex, step)
}

func (v *View) moveLeft() {
	v.location.GraphemeIndex = saturatingSub(v.location.GraphemeIndex, 1)
}

func (v *View) moveRight() {
	v.location.GraphemeIndex = saturatingAdd(v.location.GraphemeIndex, 1)
}

// snapToValidGrapheme clamps the grapheme index to the current line, which
// matters after moving onto a shorter line.
func (v *View) snapToValidGrapheme() {
	v.location.GraphemeIndex = min(v.location.GraphemeIndex, v.buffer.GraphemeCount(v.location.LineIndex))
}

// snapToValidLine clamps the line index to [0, Height()]. Height() itself is
// the empty position after the last line where typing appends a new line.
func (v *View) snapToValidLine() {
	v.location.LineIndex = min(max(v.location.LineIndex, 0), v.buffer.Height())
}

// cursorPosition converts the Location into a document row and column.
func (v *View) cursorPosition() terminal.Position {
	col := 0
	if line, ok := v.buffer.Line(v.location.LineIndex); ok {
		col = line.WidthUntil(v.location.GraphemeIndex)
	}
	return terminal.Position{Row: v.location.LineIndex, Col: col}
}

// CaretPosition returns where the terminal caret goes, relative to the
// top-left cell of the viewport.
func (v *View) CaretPosition() terminal.Position {
	pos := v.cursorPosition()
	return terminal.Position{
		Row: saturatingSub(pos.Row, v.scroll.Row),
		Col: saturatingSub(pos.Col, v.scroll.Col),
	}
}

func (v *View) scrollLocationIntoView() {
	pos := v.cursorPosition()
	v.scrollVertically(pos.Row)
	v.scrollHorizontally(pos.Col)
}

func (v *View) scrollVertically(to int) {
	height := v.size.Height
	if height <= 0 {
		return
	}
	switch {
	case to < v.scroll.Row:
		v.scroll.Row = to
		v.needsRedraw = true
	case to >= v.scroll.Row+height:
		v.scroll.Row = to - height + 1
		v.needsRedraw = true
	}
}

func (v *View) scrollHorizontally(to int) {
	width := v.size.Width
	if width <= 0 {
		return
	}
	switch {
	case to < v.scroll.Col:
		v.scroll.Col = to
		v.needsRedraw = true
	case to >= v.scroll.Col+width:
		v.scroll.Col = to - width + 1
		v.needsRedraw = true
	}
}

const maxInt = int(^uint(0) >> 1)

func saturatingAdd(a, b int) int {
	if b > 0 && a > maxInt-b {
		return maxInt
	}
	return a + b
}

func saturatingSub(a, b int) int {
	if a-b < 0 {
		return 0
	}
	return a - b
}
