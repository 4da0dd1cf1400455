package view

// Builds the welcome banner that appears a third of the way down the viewport
// when the document is empty.

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mnkhoi/kedit/internal/text"
)

// welcomeMessage returns the banner row for a viewport of the given width. The
// row starts with the empty-line marker and the text is centered in what is
// left. When the text does not fit, only the marker is shown.
func (v *View) welcomeMessage(width int) string {
	msg := fmt.Sprintf("%s editor -- version %s", v.info.Name, v.info.Version)
	msgWidth := text.StringWidth(msg)
	if width <= msgWidth {
		return "~"
	}

	padding := (width - msgWidth - 1) / 2
	banner := "~" + strings.Repeat(" ", padding) + msg
	return runewidth.Truncate(banner, width, "")
}
