package terminal

// Color palette used by the editor. Maps semantic color names (like
// ColorStatusBar) to terminal attributes (foreground and background).

import "github.com/nsf/termbox-go"

// Color represents a pair of foreground and background terminal attributes.
type Color struct {
	Background termbox.Attribute
	Foreground termbox.Attribute
}

// ColorName is an enum-like type for semantic color identifiers.
type ColorName int

const (
	ColorDefault         ColorName = iota // Document text.
	ColorEmptyLineMarker                  // The '~' marker for rows past the end of the document.
	ColorWelcome                          // Welcome banner on an empty document.
	ColorStatusBar                        // Status bar background and file information.
	ColorNormalMode                       // Status bar indicator for Normal mode.
	ColorInsertMode                       // Status bar indicator for Insert mode.
	ColorVisualMode                       // Status bar indicator for Visual mode.
	ColorMessage                          // Message bar text.
	ColorError                            // Message bar text for failures.
)

// Theme maps each ColorName to its actual visual attributes.
var Theme = map[ColorName]Color{
	ColorDefault:         {Background: termbox.ColorDefault, Foreground: termbox.Attribute(254)},
	ColorEmptyLineMarker: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(244)},
	ColorWelcome:         {Background: termbox.ColorDefault, Foreground: termbox.Attribute(248)},

	ColorStatusBar:  {Background: termbox.Attribute(250), Foreground: termbox.Attribute(1)},
	ColorNormalMode: {Background: termbox.Attribute(250), Foreground: termbox.Attribute(1)},
	ColorInsertMode: {Background: termbox.Attribute(58), Foreground: termbox.Attribute(255)},
	ColorVisualMode: {Background: termbox.Attribute(30), Foreground: termbox.Attribute(16)},

	ColorMessage: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(248)},
	ColorError:   {Background: termbox.ColorDefault, Foreground: termbox.Attribute(166)},
}

// GetThemeColor returns the foreground and background attributes for a given semantic name.
func GetThemeColor(name ColorName) (termbox.Attribute, termbox.Attribute) {
	if c, ok := Theme[name]; ok {
		return c.Foreground, c.Background
	}
	// Fallback to default if name is not found.
	return termbox.ColorDefault, termbox.ColorDefault
}
