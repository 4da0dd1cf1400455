// Package buffer holds the document being edited: an ordered list of lines,
// the path it was loaded from, and whether it changed since the last load or
// save.
package buffer

import (
	"github.com/spf13/afero"

	"github.com/mnkhoi/kedit/internal/text"
)

// Location is a cursor position in document coordinates.
type Location struct {
	LineIndex     int // 0-based line; Height() addresses the position after the last line.
	GraphemeIndex int // 0-based grapheme within the line.
}

// Buffer is the document model. Lines are addressed by position only, so
// inserting or removing a line never invalidates anything held elsewhere.
type Buffer struct {
	lines []text.Line
	path  string   // Associated file; empty for an unnamed document.
	dirty bool     // True if there are changes since the last load or save.
	fs    afero.Fs // Storage used by Load and Save.
}

// New returns an empty, unnamed buffer backed by fs.
func New(fs afero.Fs) *Buffer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Buffer{fs: fs}
}

// FromLines builds an unnamed buffer holding the given lines.
func FromLines(fs afero.Fs, lines ...string) *Buffer {
	b := New(fs)
	for _, l := range lines {
		b.lines = append(b.lines, text.NewLine(l))
	}
	return b
}

// Height returns the number of lines. Zero means an empty document, which is
// different from a document holding one empty line.
func (b *Buffer) Height() int {
	return len(b.lines)
}

// IsEmpty reports whether the buffer has no lines at all.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// IsDirty reports whether there are unsaved changes.
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// Path returns the associated file path, if any.
func (b *Buffer) Path() string {
	return b.path
}

// SetPath associates the buffer with path without touching its content.
func (b *Buffer) SetPath(path string) {
	b.path = path
}

// Line returns the line at index.
func (b *Buffer) Line(index int) (text.Line, bool) {
	if index < 0 || index >= len(b.lines) {
		return text.Line{}, false
	}
	return b.lines[index], true
}

// GraphemeCount returns the length of the line at index, or 0 past the end.
func (b *Buffer) GraphemeCount(index int) int {
	if l, ok := b.Line(index); ok {
		return l.GraphemeCount()
	}
	return 0
}

// Strings returns the text of every line.
func (b *Buffer) Strings() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.String()
	}
	return out
}

// InsertChar inserts ch at at. At Height() a new line holding only ch is
// appended; further out nothing happens.
func (b *Buffer) InsertChar(ch rune, at Location) {
	switch {
	case at.LineIndex == len(b.lines):
		b.lines = append(b.lines, text.NewLine(string(ch)))
		b.dirty = true
	case at.LineIndex >= 0 && at.LineIndex < len(b.lines):
		line := &b.lines[at.LineIndex]
		before := line.GraphemeCount()
		line.InsertChar(ch, at.GraphemeIndex)
		if line.GraphemeCount() != before {
			b.dirty = true
		}
	}
}

// InsertNewline splits the line at at, moving the tail to a new line right
// after it. At Height() an empty line is appended.
func (b *Buffer) InsertNewline(at Location) {
	switch {
	case at.LineIndex == len(b.lines):
		b.lines = append(b.lines, text.Line{})
		b.dirty = true
	case at.LineIndex >= 0 && at.LineIndex < len(b.lines):
		tail := b.lines[at.LineIndex].Split(at.GraphemeIndex)
		b.lines = append(b.lines, text.Line{})
		copy(b.lines[at.LineIndex+2:], b.lines[at.LineIndex+1:])
		b.lines[at.LineIndex+1] = tail
		b.dirty = true
	}
}

// Delete removes the grapheme at at. At or past the end of a line that has a
// successor the two lines are joined instead.
func (b *Buffer) Delete(at Location) {
	if at.LineIndex < 0 || at.LineIndex >= len(b.lines) || at.GraphemeIndex < 0 {
		return
	}
	count := b.lines[at.LineIndex].GraphemeCount()
	switch {
	case at.GraphemeIndex >= count && at.LineIndex+1 < len(b.lines):
		next := b.lines[at.LineIndex+1]
		b.lines = append(b.lines[:at.LineIndex+1], b.lines[at.LineIndex+2:]...)
		b.lines[at.LineIndex].Append(next)
		b.dirty = true
	case at.GraphemeIndex < count:
		b.lines[at.LineIndex].Delete(at.GraphemeIndex)
		b.dirty = true
	}
}
