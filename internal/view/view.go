// Package view ties a buffer to a cursor and a viewport. It moves the cursor
// in document coordinates, keeps it inside the visible window by adjusting
// the scroll offset, and draws the visible part of the document.
package view

import (
	"fmt"

	"github.com/mnkhoi/kedit/internal/buffer"
	"github.com/mnkhoi/kedit/internal/command"
	"github.com/mnkhoi/kedit/internal/terminal"
)

// Info names the program in the welcome banner.
type Info struct {
	Name    string
	Version string
}

// View owns the document, the cursor Location and the scroll offset.
type View struct {
	buffer      *buffer.Buffer
	location    buffer.Location   // Cursor in document coordinates.
	scroll      terminal.Position // Document row and column drawn at the top-left cell.
	size        terminal.Size     // Viewport size, excluding any chrome around it.
	needsRedraw bool
	info        Info
}

// New returns a view showing b with the cursor at the start of the document.
func New(b *buffer.Buffer, size terminal.Size, info Info) *View {
	return &View{
		buffer:      b,
		size:        size,
		needsRedraw: true,
		info:        info,
	}
}

// Buffer returns the document shown by the view.
func (v *View) Buffer() *buffer.Buffer {
	return v.buffer
}

// Location returns the cursor position in document coordinates.
func (v *View) Location() buffer.Location {
	return v.location
}

// Scroll returns the current scroll offset.
func (v *View) Scroll() terminal.Position {
	return v.scroll
}

// Size returns the viewport size.
func (v *View) Size() terminal.Size {
	return v.size
}

// NeedsRedraw reports whether the next Render will draw.
func (v *View) NeedsRedraw() bool {
	return v.needsRedraw
}

// Invalidate forces the next Render to draw every row.
func (v *View) Invalidate() {
	v.needsRedraw = true
}

// Resize changes the viewport size and keeps the cursor visible.
func (v *View) Resize(to terminal.Size) {
	v.size = to
	v.scrollLocationIntoView()
	v.needsRedraw = true
}

// HandleCommand applies the Normal and Insert mode commands the view knows
// about. It reports whether cmd was one of them.
func (v *View) HandleCommand(cmd command.Command) bool {
	switch cmd := cmd.(type) {
	case command.Normal:
		if move, ok := cmd.Cmd.(command.Move); ok {
			v.Move(move.Direction)
			return true
		}
	case command.Insert:
		switch c := cmd.Cmd.(type) {
		case command.InsertChar:
			v.InsertChar(c.Char)
		case command.InsertNewline:
			v.InsertNewline()
		case command.Backspace:
			v.Backspace()
		case command.Delete:
			v.Delete()
		default:
			return false
		}
		return true
	case command.Resize:
		v.Resize(cmd.Size)
		return true
	}
	return false
}

// Load replaces the document with the file at path and moves the cursor back
// to the start. On error nothing changes.
func (v *View) Load(path string) error {
	if err := v.buffer.Load(path); err != nil {
		return err
	}
	v.location = buffer.Location{}
	v.scroll = terminal.Position{}
	v.needsRedraw = true
	return nil
}

// Save writes the document to its file.
func (v *View) Save() error {
	return v.buffer.Save()
}

// Status summarizes the document for the status bar.
type Status struct {
	Path      string
	Dirty     bool
	Height    int
	LineIndex int
	Column    int
}

// Status returns the current document status.
func (v *View) Status() Status {
	return Status{
		Path:      v.buffer.Path(),
		Dirty:     v.buffer.IsDirty(),
		Height:    v.buffer.Height(),
		LineIndex: v.location.LineIndex,
		Column:    v.cursorPosition().Col,
	}
}

func (v *View) String() string {
	return fmt.Sprintf("view{at %d:%d scroll %d:%d size %dx%d}",
		v.location.LineIndex, v.location.GraphemeIndex,
		v.scroll.Row, v.scroll.Col, v.size.Width, v.size.Height)
}
