package terminal

// Termbox implementation of Surface. Open switches the terminal to raw mode
// and the alternate screen; Close undoes both and must run on every exit path.

import (
	"fmt"
	"io"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/nsf/termbox-go"
	"golang.org/x/term"

	"github.com/mnkhoi/kedit/internal/text"
)

// Termbox draws through termbox and reads input events from it.
type Termbox struct {
	caret     Position  // Where the next WriteText starts.
	visible   bool      // Whether the hardware cursor is shown.
	out       io.Writer // Receives escape sequences termbox has no API for.
	closeOnce sync.Once
}

// Open initializes termbox. The caller must defer Close.
func Open() (*Termbox, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNotTerminal
	}
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("failed to init termbox: %w", err)
	}
	// Plain escape handling; modifiers other than Ctrl are not reported.
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)
	return &Termbox{out: os.Stdout}, nil
}

// Close restores the terminal. It is safe to call more than once.
func (t *Termbox) Close() {
	t.closeOnce.Do(termbox.Close)
}

// PollEvent blocks until the next input event.
func (t *Termbox) PollEvent() termbox.Event {
	return termbox.PollEvent()
}

func (t *Termbox) Size() (Size, error) {
	w, h := termbox.Size()
	return Size{Height: h, Width: w}, nil
}

func (t *Termbox) MoveCaret(to Position) error {
	t.caret = to
	if t.visible {
		termbox.SetCursor(to.Col, to.Row)
	}
	return nil
}

func (t *Termbox) HideCaret() error {
	t.visible = false
	termbox.HideCursor()
	return nil
}

func (t *Termbox) ShowCaret() error {
	t.visible = true
	termbox.SetCursor(t.caret.Col, t.caret.Row)
	return nil
}

// ClearLine blanks the row the caret is on.
func (t *Termbox) ClearLine() error {
	w, _ := termbox.Size()
	fg, bg := GetThemeColor(ColorDefault)
	for x := 0; x < w; x++ {
		termbox.SetCell(x, t.caret.Row, ' ', fg, bg)
	}
	return nil
}

func (t *Termbox) ClearScreen() error {
	fg, bg := GetThemeColor(ColorDefault)
	return termbox.Clear(fg, bg)
}

func (t *Termbox) WriteText(s string) error {
	return t.WriteStyled(s, ColorDefault)
}

// WriteStyled writes s one grapheme per cell group. termbox cells hold a
// single rune, so only the first rune of a cluster reaches the screen.
func (t *Termbox) WriteStyled(s string, color ColorName) error {
	fg, bg := GetThemeColor(color)
	line := text.NewLine(s)
	for i := 0; i < line.GraphemeCount(); i++ {
		f, _ := line.At(i)
		r, _ := utf8.DecodeRuneInString(f.Glyph())
		termbox.SetCell(t.caret.Col, t.caret.Row, r, fg, bg)
		t.caret.Col += f.Width.Columns()
	}
	return nil
}

func (t *Termbox) Flush() error {
	return termbox.Flush()
}

// SetTitle sets the window title with an OSC 2 sequence.
func (t *Termbox) SetTitle(title string) error {
	_, err := fmt.Fprintf(t.out, "\x1b]2;%s\x07", title)
	return err
}
