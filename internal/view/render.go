package view

import (
	"fmt"

	"github.com/mnkhoi/kedit/internal/terminal"
)

// Render draws every viewport row if something changed since the last
// successful Render. The redraw flag is only cleared after all rows were
// written, so a failed Render is retried in full.
func (v *View) Render(s terminal.Surface) error {
	if !v.needsRedraw || v.size.IsZero() {
		return nil
	}

	bannerRow := v.size.Height / 3
	for row := 0; row < v.size.Height; row++ {
		var err error
		if line, ok := v.buffer.Line(v.scroll.Row + row); ok {
			visible := line.VisibleGraphemes(v.scroll.Col, v.scroll.Col+v.size.Width)
			err = renderLine(s, row, visible, terminal.ColorDefault)
		} else if row == bannerRow && v.buffer.IsEmpty() {
			err = renderLine(s, row, v.welcomeMessage(v.size.Width), terminal.ColorWelcome)
		} else {
			err = renderLine(s, row, "~", terminal.ColorEmptyLineMarker)
		}
		if err != nil {
			return fmt.Errorf("render row %d: %w", row, err)
		}
	}

	v.needsRedraw = false
	return nil
}

func renderLine(s terminal.Surface, row int, text string, color terminal.ColorName) error {
	if err := s.MoveCaret(terminal.Position{Row: row}); err != nil {
		return err
	}
	if err := s.ClearLine(); err != nil {
		return err
	}
	return s.WriteStyled(text, color)
}
