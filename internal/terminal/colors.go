package terminal

// Prints the theme as a list of color swatches so it can be checked without
// starting the editor.

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/nsf/termbox-go"
)

var colorNames = map[ColorName]string{
	ColorDefault:         "default",
	ColorEmptyLineMarker: "empty-line-marker",
	ColorWelcome:         "welcome",
	ColorStatusBar:       "status-bar",
	ColorNormalMode:      "normal-mode",
	ColorInsertMode:      "insert-mode",
	ColorVisualMode:      "visual-mode",
	ColorMessage:         "message",
	ColorError:           "error",
}

func (n ColorName) String() string {
	if s, ok := colorNames[n]; ok {
		return s
	}
	return fmt.Sprintf("color(%d)", int(n))
}

// paletteIndex returns the 256-color palette index of a termbox attribute in
// Output256 mode, where attribute n stands for index n-1. It returns -1 for
// the terminal default.
func paletteIndex(attr termbox.Attribute) int {
	return int(attr&0x1FF) - 1
}

// swatch returns a printer using the fg and bg attributes. Color output is
// forced on so the swatches survive a pipe.
func swatch(fg, bg termbox.Attribute) *color.Color {
	c := color.New()
	if i := paletteIndex(fg); i >= 0 {
		c.Add(38, 5, color.Attribute(i))
	}
	if i := paletteIndex(bg); i >= 0 {
		c.Add(48, 5, color.Attribute(i))
	}
	c.EnableColor()
	return c
}

// PrintTheme writes one swatch line per theme color to w.
func PrintTheme(w io.Writer) error {
	names := make([]ColorName, 0, len(Theme))
	for name := range Theme {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		fg, bg := GetThemeColor(name)
		label := swatch(fg, bg).Sprintf(" %-18s", name)
		if _, err := fmt.Fprintf(w, "%s fg %3d bg %3d\n", label, int(fg), int(bg)); err != nil {
			return err
		}
	}
	return nil
}
