package view

import "github.com/mnkhoi/kedit/internal/command"

// InsertChar inserts ch at the cursor as a grapheme of its own and moves the
// cursor past it.
func (v *View) InsertChar(ch rune) {
	before := v.buffer.GraphemeCount(v.location.LineIndex)
	v.buffer.InsertChar(ch, v.location)
	if v.buffer.GraphemeCount(v.location.LineIndex) == before {
		return
	}
	v.Move(command.Right)
	v.needsRedraw = true
}

// InsertNewline splits the line at the cursor and moves to the start of the
// new line.
func (v *View) InsertNewline() {
	v.buffer.InsertNewline(v.location)
	v.location.LineIndex++
	v.location.GraphemeIndex = 0
	v.snapToValidLine()
	v.scrollLocationIntoView()
	v.needsRedraw = true
}

// Backspace removes the grapheme before the cursor. At the start of a line it
// joins the line onto the previous one. The empty position after the last
// line holds nothing to join, so the cursor stays there.
func (v *View) Backspace() {
	switch {
	case v.location.LineIndex >= v.buffer.Height() && v.location.GraphemeIndex == 0:
		return
	case v.location.GraphemeIndex > 0:
		v.location.GraphemeIndex--
	case v.location.LineIndex > 0:
		v.location.LineIndex--
		v.location.GraphemeIndex = v.buffer.GraphemeCount(v.location.LineIndex)
	default:
		return
	}
	v.buffer.Delete(v.location)
	v.scrollLocationIntoView()
	v.needsRedraw = true
}

// Delete removes the grapheme under the cursor, or joins the next line when
// the cursor is at the end of the line.
func (v *View) Delete() {
	v.buffer.Delete(v.location)
	v.needsRedraw = true
}
