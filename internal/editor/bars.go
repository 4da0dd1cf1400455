package editor

// The two rows under the view. The status bar shows the mode, the file and
// the cursor line; the message bar shows the latest notice until it expires.

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/mnkhoi/kedit/internal/command"
	"github.com/mnkhoi/kedit/internal/terminal"
	"github.com/mnkhoi/kedit/internal/view"
)

// status is everything the status bar shows. The bar is redrawn only when it
// changes.
type status struct {
	Mode     command.Mode
	Document view.Status
}

type statusBar struct {
	last        status
	needsRedraw bool
}

func modeColor(mode command.Mode) terminal.ColorName {
	switch mode {
	case command.ModeInsert:
		return terminal.ColorInsertMode
	case command.ModeVisual:
		return terminal.ColorVisualMode
	default:
		return terminal.ColorNormalMode
	}
}

// statusLine lays out the mode segment and the rest of the row for width
// columns. The file name is truncated before the position is dropped.
func statusLine(st status, width int) (string, string) {
	mode := runewidth.Truncate(" "+st.Mode.String()+" ", max(width, 0), "")
	rest := width - runewidth.StringWidth(mode)
	if rest <= 0 {
		return mode, ""
	}

	doc := st.Document
	left := " " + fileName(doc.Path)
	if doc.Dirty {
		left += " [+]"
	}
	right := fmt.Sprintf("%d/%d  col %d ", doc.LineIndex+1, doc.Height, doc.Column+1)

	leftRoom := rest - runewidth.StringWidth(right) - 1
	if leftRoom < runewidth.StringWidth(" x") {
		return mode, runewidth.FillRight(runewidth.Truncate(left, rest, "…"), rest)
	}
	left = runewidth.Truncate(left, leftRoom, "…")
	gap := rest - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	return mode, left + strings.Repeat(" ", gap) + right
}

func (b *statusBar) render(s terminal.Surface, row, width int, st status) error {
	if !b.needsRedraw && st == b.last {
		return nil
	}

	mode, body := statusLine(st, width)
	if err := s.MoveCaret(terminal.Position{Row: row}); err != nil {
		return err
	}
	if err := s.ClearLine(); err != nil {
		return err
	}
	if err := s.WriteStyled(mode, modeColor(st.Mode)); err != nil {
		return err
	}
	if err := s.WriteStyled(body, terminal.ColorStatusBar); err != nil {
		return err
	}

	b.last = st
	b.needsRedraw = false
	return nil
}

type messageBar struct {
	text        string
	isError     bool
	setAt       time.Time
	timeout     time.Duration
	expired     bool
	needsRedraw bool
}

func (b *messageBar) set(text string, isError bool, now time.Time) {
	b.text = text
	b.isError = isError
	b.setAt = now
	b.expired = false
	b.needsRedraw = true
}

// visible returns the text to draw at now. Expired messages draw nothing.
func (b *messageBar) visible(now time.Time) string {
	if b.timeout > 0 && now.Sub(b.setAt) >= b.timeout {
		return ""
	}
	return b.text
}

func (b *messageBar) render(s terminal.Surface, row, width int, now time.Time) error {
	if !b.expired && b.visible(now) == "" && b.text != "" {
		b.expired = true
		b.needsRedraw = true
	}
	if !b.needsRedraw {
		return nil
	}

	color := terminal.ColorMessage
	if b.isError {
		color = terminal.ColorError
	}
	if err := s.MoveCaret(terminal.Position{Row: row}); err != nil {
		return err
	}
	if err := s.ClearLine(); err != nil {
		return err
	}
	if err := s.WriteStyled(runewidth.Truncate(b.visible(now), max(width, 0), ""), color); err != nil {
		return err
	}

	b.needsRedraw = false
	return nil
}
