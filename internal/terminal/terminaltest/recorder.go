// Package terminaltest provides an in-memory terminal.Surface for tests.
package terminaltest

import (
	"strings"

	"github.com/mnkhoi/kedit/internal/terminal"
	"github.com/mnkhoi/kedit/internal/text"
)

// Recorder keeps a grid of drawn cells and remembers caret and title state.
type Recorder struct {
	Caret        terminal.Position
	CaretVisible bool
	Title        string
	Flushes      int
	Writes       int

	// Err, when set, is returned by every drawing call.
	Err error

	size   terminal.Size
	cells  [][]string
	colors [][]terminal.ColorName
}

// New returns a blank recorder of the given size.
func New(size terminal.Size) *Recorder {
	r := &Recorder{}
	r.Resize(size)
	return r
}

// Resize changes the reported size and blanks the grid.
func (r *Recorder) Resize(size terminal.Size) {
	r.size = size
	r.cells = make([][]string, max(size.Height, 0))
	r.colors = make([][]terminal.ColorName, max(size.Height, 0))
	for i := range r.cells {
		r.cells[i] = blankRow(size.Width)
		r.colors[i] = make([]terminal.ColorName, max(size.Width, 0))
	}
}

func blankRow(width int) []string {
	row := make([]string, max(width, 0))
	for i := range row {
		row[i] = " "
	}
	return row
}

func (r *Recorder) Size() (terminal.Size, error) {
	return r.size, nil
}

func (r *Recorder) MoveCaret(to terminal.Position) error {
	if r.Err != nil {
		return r.Err
	}
	r.Caret = to
	return nil
}

func (r *Recorder) HideCaret() error {
	if r.Err != nil {
		return r.Err
	}
	r.CaretVisible = false
	return nil
}

func (r *Recorder) ShowCaret() error {
	if r.Err != nil {
		return r.Err
	}
	r.CaretVisible = true
	return nil
}

func (r *Recorder) ClearLine() error {
	if r.Err != nil {
		return r.Err
	}
	if r.Caret.Row >= 0 && r.Caret.Row < len(r.cells) {
		r.cells[r.Caret.Row] = blankRow(r.size.Width)
		r.colors[r.Caret.Row] = make([]terminal.ColorName, r.size.Width)
	}
	return nil
}

func (r *Recorder) ClearScreen() error {
	if r.Err != nil {
		return r.Err
	}
	r.Resize(r.size)
	return nil
}

func (r *Recorder) WriteText(s string) error {
	return r.WriteStyled(s, terminal.ColorDefault)
}

// WriteStyled stores each grapheme in the cell at the caret. The cell after a
// wide grapheme is left empty, as a terminal would.
func (r *Recorder) WriteStyled(s string, color terminal.ColorName) error {
	if r.Err != nil {
		return r.Err
	}
	r.Writes++
	line := text.NewLine(s)
	for i := 0; i < line.GraphemeCount(); i++ {
		f, _ := line.At(i)
		r.set(r.Caret.Col, f.Glyph(), color)
		for c := 1; c < f.Width.Columns(); c++ {
			r.set(r.Caret.Col+c, "", color)
		}
		r.Caret.Col += f.Width.Columns()
	}
	return nil
}

func (r *Recorder) set(col int, glyph string, color terminal.ColorName) {
	row := r.Caret.Row
	if row < 0 || row >= len(r.cells) || col < 0 || col >= r.size.Width {
		return
	}
	r.cells[row][col] = glyph
	r.colors[row][col] = color
}

func (r *Recorder) Flush() error {
	if r.Err != nil {
		return r.Err
	}
	r.Flushes++
	return nil
}

func (r *Recorder) SetTitle(title string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Title = title
	return nil
}

// Row returns the text drawn on row with trailing blanks removed.
func (r *Recorder) Row(row int) string {
	if row < 0 || row >= len(r.cells) {
		return ""
	}
	return strings.TrimRight(strings.Join(r.cells[row], ""), " ")
}

// Rows returns every row as Row would.
func (r *Recorder) Rows() []string {
	rows := make([]string, len(r.cells))
	for i := range rows {
		rows[i] = r.Row(i)
	}
	return rows
}

// ColorAt returns the color the cell was last written with.
func (r *Recorder) ColorAt(pos terminal.Position) terminal.ColorName {
	if pos.Row < 0 || pos.Row >= len(r.colors) || pos.Col < 0 || pos.Col >= len(r.colors[pos.Row]) {
		return terminal.ColorDefault
	}
	return r.colors[pos.Row][pos.Col]
}

var _ terminal.Surface = (*Recorder)(nil)
