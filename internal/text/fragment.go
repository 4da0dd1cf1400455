// Package text holds the grapheme-aware line model shared by the buffer and
// the view. A Line is a sequence of Fragments, one per grapheme cluster, and
// every Fragment knows how many terminal columns it occupies.
package text

import "github.com/mattn/go-runewidth"

// Width is the number of terminal columns a fragment occupies on screen.
type Width int

const (
	Half Width = 1 // Narrow graphemes, including zero-width ones drawn as a placeholder.
	Full Width = 2 // Wide graphemes such as CJK ideographs and most emoji.
)

// Columns returns the width as a column count.
func (w Width) Columns() int {
	return int(w)
}

func (w Width) String() string {
	if w == Full {
		return "full"
	}
	return "half"
}

const (
	// Placeholder is drawn for graphemes that measure zero columns (control
	// characters, lone combining marks).
	Placeholder = '·'
	// Ellipsis replaces a fragment that straddles the edge of a visible window.
	Ellipsis = '⋯'
)

// measure ignores the East Asian ambiguous width locale setting so a line
// measures the same on every terminal.
var measure = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Fragment is one user-perceived character of a line.
type Fragment struct {
	Grapheme    string // The grapheme cluster as stored in the document.
	Width       Width  // Columns used when drawn.
	Replacement rune   // Drawn instead of Grapheme when non-zero.
}

// NewFragment measures grapheme once and classifies it.
func NewFragment(grapheme string) Fragment {
	f := Fragment{Grapheme: grapheme, Width: Half}
	switch w := measure.StringWidth(grapheme); {
	case w == 0:
		f.Replacement = Placeholder
	case w > 1:
		f.Width = Full
	}
	return f
}

// Glyph returns the text drawn for the fragment.
func (f Fragment) Glyph() string {
	if f.Replacement != 0 {
		return string(f.Replacement)
	}
	return f.Grapheme
}

// StringWidth returns the number of columns s occupies when drawn fragment by
// fragment.
func StringWidth(s string) int {
	return NewLine(s).Width()
}
