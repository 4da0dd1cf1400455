package view

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnkhoi/kedit/internal/buffer"
	"github.com/mnkhoi/kedit/internal/command"
	"github.com/mnkhoi/kedit/internal/terminal"
	"github.com/mnkhoi/kedit/internal/terminal/terminaltest"
)

var testInfo = Info{Name: "kedit", Version: "1.0.0"}

func newTestView(size terminal.Size, lines ...string) *View {
	return New(buffer.FromLines(afero.NewMemMapFs(), lines...), size, testInfo)
}

func moves(v *View, dirs ...command.Direction) {
	for _, d := range dirs {
		v.Move(d)
	}
}

func TestView_WelcomeBanner(t *testing.T) {
	size := terminal.Size{Height: 24, Width: 80}
	v := newTestView(size)
	rec := terminaltest.New(size)

	require.NoError(t, v.Render(rec))

	banner := "~" + strings.Repeat(" ", 25) + "kedit editor -- version 1.0.0"
	for row, got := range rec.Rows() {
		if row == 8 {
			assert.Equal(t, banner, got)
			assert.Equal(t, terminal.ColorWelcome, rec.ColorAt(terminal.Position{Row: 8, Col: 27}))
			continue
		}
		assert.Equal(t, "~", got, "row %d", row)
		assert.Equal(t, terminal.ColorEmptyLineMarker, rec.ColorAt(terminal.Position{Row: row}))
	}
	assert.False(t, v.NeedsRedraw())
}

func TestView_WelcomeMessageWidths(t *testing.T) {
	v := newTestView(terminal.Size{})
	msg := "kedit editor -- version 1.0.0"

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"too narrow", 10, "~"},
		{"exactly message width", len(msg), "~"},
		{"one wider", len(msg) + 1, "~" + msg},
		{"two wider", len(msg) + 2, "~" + msg},
		{"three wider", len(msg) + 3, "~ " + msg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.welcomeMessage(tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.width, 1))
		})
	}
}

func TestView_NoBannerWhenDocumentHasLines(t *testing.T) {
	size := terminal.Size{Height: 6, Width: 80}
	v := newTestView(size, "")
	rec := terminaltest.New(size)

	require.NoError(t, v.Render(rec))

	assert.Equal(t, []string{"", "~", "~", "~", "~", "~"}, rec.Rows())
}

func TestView_CaretPositionUsesColumns(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "abc", "dé")

	moves(v, command.Down, command.End)

	assert.Equal(t, buffer.Location{LineIndex: 1, GraphemeIndex: 2}, v.Location())
	assert.Equal(t, terminal.Position{Row: 1, Col: 2}, v.CaretPosition())
}

func TestView_CaretPositionAfterWideGraphemes(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "中文x")

	moves(v, command.End)

	assert.Equal(t, 3, v.Location().GraphemeIndex)
	assert.Equal(t, terminal.Position{Row: 0, Col: 5}, v.CaretPosition())
}

func TestView_InsertCharMovesCursor(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "abc")

	v.InsertChar('x')

	assert.Equal(t, []string{"xabc"}, v.Buffer().Strings())
	assert.True(t, v.Buffer().IsDirty())
	assert.Equal(t, buffer.Location{LineIndex: 0, GraphemeIndex: 1}, v.Location())
	assert.True(t, v.NeedsRedraw())
}

func TestView_InsertCombiningMarkIsItsOwnGrapheme(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "e")
	moves(v, command.End)

	v.InsertChar('\u0301')

	assert.Equal(t, []string{"e\u0301"}, v.Buffer().Strings())
	assert.Equal(t, 2, v.Buffer().GraphemeCount(0))
	assert.Equal(t, buffer.Location{LineIndex: 0, GraphemeIndex: 2}, v.Location())

	v.Backspace()
	assert.Equal(t, []string{"e"}, v.Buffer().Strings())
	assert.Equal(t, buffer.Location{LineIndex: 0, GraphemeIndex: 1}, v.Location())
}

func TestView_InsertIntoEmptyDocument(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80})

	v.InsertChar('a')
	v.InsertChar('b')

	assert.Equal(t, []string{"ab"}, v.Buffer().Strings())
	assert.Equal(t, buffer.Location{LineIndex: 0, GraphemeIndex: 2}, v.Location())
}

func TestView_InsertNewline(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "hello")
	moves(v, command.Right, command.Right)

	v.InsertNewline()

	assert.Equal(t, []string{"he", "llo"}, v.Buffer().Strings())
	assert.Equal(t, buffer.Location{LineIndex: 1, GraphemeIndex: 0}, v.Location())
}

func TestView_Backspace(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		dirs  []command.Direction
		want  []string
		at    buffer.Location
	}{
		{"inside line", []string{"abc"}, []command.Direction{command.End}, []string{"ab"}, buffer.Location{LineIndex: 0, GraphemeIndex: 2}},
		{"joins previous line", []string{"ab", "cd"}, []command.Direction{command.Down}, []string{"abcd"}, buffer.Location{LineIndex: 0, GraphemeIndex: 2}},
		{"start of document", []string{"ab"}, nil, []string{"ab"}, buffer.Location{LineIndex: 0, GraphemeIndex: 0}},
		{"after last line", []string{"ab", "cd"}, []command.Direction{command.Down, command.Down}, []string{"ab", "cd"}, buffer.Location{LineIndex: 2, GraphemeIndex: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestView(terminal.Size{Height: 10, Width: 80}, tt.lines...)
			moves(v, tt.dirs...)

			v.Backspace()

			assert.Equal(t, tt.want, v.Buffer().Strings())
			assert.Equal(t, tt.at, v.Location())
		})
	}
}

func TestView_DeleteJoinsAtLineEnd(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "ab", "cd")
	moves(v, command.End)

	v.Delete()

	assert.Equal(t, []string{"abcd"}, v.Buffer().Strings())
	assert.Equal(t, buffer.Location{LineIndex: 0, GraphemeIndex: 2}, v.Location())
}

func TestView_MovementDoesNotWrap(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "ab", "cd")

	moves(v, command.Left)
	assert.Equal(t, buffer.Location{LineIndex: 0, GraphemeIndex: 0}, v.Location())

	moves(v, command.End, command.Right, command.Right)
	assert.Equal(t, buffer.Location{LineIndex: 0, GraphemeIndex: 2}, v.Location())

	moves(v, command.Up)
	assert.Equal(t, buffer.Location{LineIndex: 0, GraphemeIndex: 2}, v.Location())
}

func TestView_MoveSnapsToShorterLine(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "long line", "ab")
	moves(v, command.End, command.Down)

	assert.Equal(t, buffer.Location{LineIndex: 1, GraphemeIndex: 2}, v.Location())
}

func TestView_MoveDownStopsAfterLastLine(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "a", "b")

	moves(v, command.Down, command.Down, command.Down, command.Down)

	assert.Equal(t, buffer.Location{LineIndex: 2, GraphemeIndex: 0}, v.Location())
}

func TestView_PageMovement(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line"
	}
	v := newTestView(terminal.Size{Height: 5, Width: 80}, lines...)

	moves(v, command.PageDown)
	assert.Equal(t, 5, v.Location().LineIndex)
	assert.Equal(t, 1, v.Scroll().Row)

	moves(v, command.PageDown, command.PageDown, command.PageDown, command.PageDown)
	assert.Equal(t, 20, v.Location().LineIndex)

	moves(v, command.PageUp)
	assert.Equal(t, 15, v.Location().LineIndex)

	moves(v, command.PageUp, command.PageUp, command.PageUp, command.PageUp)
	assert.Equal(t, 0, v.Location().LineIndex)
	assert.Equal(t, 0, v.Scroll().Row)
}

func TestView_VerticalScroll(t *testing.T) {
	size := terminal.Size{Height: 3, Width: 20}
	v := newTestView(size, "0", "1", "2", "3", "4", "5", "6", "7", "8", "9")
	rec := terminaltest.New(size)
	require.NoError(t, v.Render(rec))

	moves(v, command.Down, command.Down, command.Down, command.Down, command.Down)
	assert.Equal(t, terminal.Position{Row: 3, Col: 0}, v.Scroll())
	assert.Equal(t, terminal.Position{Row: 2, Col: 0}, v.CaretPosition())
	assert.True(t, v.NeedsRedraw())

	require.NoError(t, v.Render(rec))
	assert.Equal(t, []string{"3", "4", "5"}, rec.Rows())

	moves(v, command.Up, command.Up, command.Up)
	assert.Equal(t, 2, v.Scroll().Row)
	assert.Equal(t, terminal.Position{Row: 0, Col: 0}, v.CaretPosition())
}

func TestView_HorizontalScrollClipsWideGraphemes(t *testing.T) {
	size := terminal.Size{Height: 2, Width: 4}
	v := newTestView(size, "ab中cd")
	rec := terminaltest.New(size)

	moves(v, command.Right, command.Right, command.Right)
	assert.Equal(t, 1, v.Scroll().Col)
	assert.Equal(t, terminal.Position{Row: 0, Col: 3}, v.CaretPosition())
	require.NoError(t, v.Render(rec))
	assert.Equal(t, "b中c", rec.Row(0))

	moves(v, command.Right)
	assert.Equal(t, 2, v.Scroll().Col)
	require.NoError(t, v.Render(rec))
	assert.Equal(t, "中cd", rec.Row(0))

	moves(v, command.End)
	assert.Equal(t, 3, v.Scroll().Col)
	require.NoError(t, v.Render(rec))
	assert.Equal(t, "⋯cd", rec.Row(0))
}

func TestView_ResizeKeepsCursorVisible(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "0", "1", "2", "3", "4", "5")
	moves(v, command.Down, command.Down, command.Down, command.Down, command.Down)
	assert.Equal(t, 0, v.Scroll().Row)

	v.Resize(terminal.Size{Height: 2, Width: 80})

	assert.Equal(t, 4, v.Scroll().Row)
	assert.Equal(t, terminal.Position{Row: 1, Col: 0}, v.CaretPosition())
	assert.True(t, v.NeedsRedraw())
}

func TestView_ZeroSizeDoesNotScrollOrDraw(t *testing.T) {
	v := newTestView(terminal.Size{}, "0", "1", "2")
	rec := terminaltest.New(terminal.Size{Height: 3, Width: 3})

	moves(v, command.Down, command.Down, command.End)
	assert.Equal(t, terminal.Position{}, v.Scroll())

	require.NoError(t, v.Render(rec))
	assert.Zero(t, rec.Writes)
	assert.True(t, v.NeedsRedraw())
}

func TestView_RenderOnlyWhenNeeded(t *testing.T) {
	size := terminal.Size{Height: 3, Width: 10}
	v := newTestView(size, "abc")
	rec := terminaltest.New(size)

	require.NoError(t, v.Render(rec))
	writes := rec.Writes
	require.NoError(t, v.Render(rec))
	assert.Equal(t, writes, rec.Writes)

	moves(v, command.Right)
	require.NoError(t, v.Render(rec))
	assert.Equal(t, writes, rec.Writes, "cursor moves inside the viewport do not redraw")

	v.Invalidate()
	require.NoError(t, v.Render(rec))
	assert.Equal(t, 2*writes, rec.Writes)
}

func TestView_RenderErrorKeepsRedrawPending(t *testing.T) {
	size := terminal.Size{Height: 3, Width: 10}
	v := newTestView(size, "abc")
	rec := terminaltest.New(size)
	rec.Err = errors.New("broken pipe")

	err := v.Render(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, rec.Err)
	assert.True(t, v.NeedsRedraw())

	rec.Err = nil
	require.NoError(t, v.Render(rec))
	assert.Equal(t, "abc", rec.Row(0))
	assert.False(t, v.NeedsRedraw())
}

func TestView_HandleCommand(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "ab")

	assert.True(t, v.HandleCommand(command.Normal{Cmd: command.Move{Direction: command.End}}))
	assert.True(t, v.HandleCommand(command.Insert{Cmd: command.InsertChar{Char: 'c'}}))
	assert.True(t, v.HandleCommand(command.Insert{Cmd: command.InsertNewline{}}))
	assert.True(t, v.HandleCommand(command.Insert{Cmd: command.Backspace{}}))
	assert.True(t, v.HandleCommand(command.Insert{Cmd: command.Delete{}}))
	assert.True(t, v.HandleCommand(command.Resize{Size: terminal.Size{Height: 5, Width: 40}}))

	assert.False(t, v.HandleCommand(command.Normal{Cmd: command.Save{}}))
	assert.False(t, v.HandleCommand(command.Quit{}))
	assert.False(t, v.HandleCommand(command.ChangeMode{Mode: command.ModeInsert}))

	assert.Equal(t, []string{"abc"}, v.Buffer().Strings())
	assert.Equal(t, terminal.Size{Height: 5, Width: 40}, v.Size())
}

func TestView_LoadResetsCursor(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "notes.txt", []byte("one\ntwo\n"), 0o644))
	v := New(buffer.FromLines(fs, "x", "y", "z"), terminal.Size{Height: 1, Width: 80}, testInfo)
	moves(v, command.Down, command.Down, command.End)

	require.NoError(t, v.Load("notes.txt"))

	assert.Equal(t, []string{"one", "two"}, v.Buffer().Strings())
	assert.Equal(t, buffer.Location{}, v.Location())
	assert.Equal(t, terminal.Position{}, v.Scroll())

	err := v.Load("missing.txt")
	require.Error(t, err)
	assert.Equal(t, []string{"one", "two"}, v.Buffer().Strings())
}

// Random walks over a document with mixed-width lines must never leave the
// cursor outside the document or the viewport.
func TestView_MovementInvariants(t *testing.T) {
	lines := []string{"", "hello", "中文字", "éé", "a much longer line than the viewport is wide", "x"}
	dirs := []command.Direction{
		command.Up, command.Down, command.Left, command.Right,
		command.PageUp, command.PageDown, command.Home, command.End,
	}
	rng := rand.New(rand.NewSource(7))

	for _, size := range []terminal.Size{{Height: 2, Width: 5}, {Height: 4, Width: 3}, {Height: 24, Width: 80}} {
		v := newTestView(size, lines...)
		for i := 0; i < 500; i++ {
			d := dirs[rng.Intn(len(dirs))]
			v.Move(d)

			loc := v.Location()
			require.GreaterOrEqual(t, loc.LineIndex, 0)
			require.LessOrEqual(t, loc.LineIndex, v.Buffer().Height(), "after %s", d)
			require.GreaterOrEqual(t, loc.GraphemeIndex, 0)
			require.LessOrEqual(t, loc.GraphemeIndex, v.Buffer().GraphemeCount(loc.LineIndex), "after %s", d)

			caret := v.CaretPosition()
			require.Less(t, caret.Row, size.Height, "after %s", d)
			require.Less(t, caret.Col, size.Width, "after %s", d)
			assert.Equal(t, v.cursorPosition().Row-v.Scroll().Row, caret.Row)
			assert.Equal(t, v.cursorPosition().Col-v.Scroll().Col, caret.Col)
		}
	}
}

func TestView_Status(t *testing.T) {
	v := newTestView(terminal.Size{Height: 10, Width: 80}, "中a", "b")
	v.Buffer().SetPath("f.txt")
	moves(v, command.End)

	assert.Equal(t, Status{Path: "f.txt", Height: 2, LineIndex: 0, Column: 3}, v.Status())

	v.InsertChar('z')
	assert.True(t, v.Status().Dirty)
}
