package text

// Line keeps the fragments of one document line in text order. Indices passed
// to its methods are grapheme indices; anything outside [0, GraphemeCount()]
// is ignored instead of panicking.

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Line is an ordered sequence of grapheme fragments.
type Line struct {
	fragments []Fragment
}

// NewLine splits s into grapheme clusters and measures each of them.
func NewLine(s string) Line {
	return Line{fragments: fragmentsOf(s)}
}

func fragmentsOf(s string) []Fragment {
	if s == "" {
		return nil
	}
	fragments := make([]Fragment, 0, uniseg.GraphemeClusterCount(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		fragments = append(fragments, NewFragment(cluster))
	}
	return fragments
}

// String returns the original text of the line.
func (l Line) String() string {
	var sb strings.Builder
	for _, f := range l.fragments {
		sb.WriteString(f.Grapheme)
	}
	return sb.String()
}

// GraphemeCount returns the number of fragments.
func (l Line) GraphemeCount() int {
	return len(l.fragments)
}

// At returns the fragment at index i.
func (l Line) At(i int) (Fragment, bool) {
	if i < 0 || i >= len(l.fragments) {
		return Fragment{}, false
	}
	return l.fragments[i], true
}

// Width returns the number of columns the whole line occupies.
func (l Line) Width() int {
	return l.WidthUntil(len(l.fragments))
}

// WidthUntil returns the columns taken by all fragments before index. It maps
// a grapheme index to the column the cursor is drawn at.
func (l Line) WidthUntil(index int) int {
	index = min(max(index, 0), len(l.fragments))
	width := 0
	for _, f := range l.fragments[:index] {
		width += f.Width.Columns()
	}
	return width
}

// VisibleGraphemes renders the columns [start, end) of the line. A fragment
// that is only partially inside the window is drawn as a single Ellipsis.
// The result is never padded.
func (l Line) VisibleGraphemes(start, end int) string {
	if start >= end {
		return ""
	}
	var sb strings.Builder
	pos := 0
	for _, f := range l.fragments {
		if pos >= end {
			break
		}
		fragmentEnd := pos + f.Width.Columns()
		if fragmentEnd > start {
			if pos < start || fragmentEnd > end {
				sb.WriteRune(Ellipsis)
			} else {
				sb.WriteString(f.Glyph())
			}
		}
		pos = fragmentEnd
	}
	return sb.String()
}

// InsertChar inserts ch as a fragment of its own before the fragment at
// index. Neighbouring fragments are left as they are, even when ch would
// extend one of them as a cluster.
func (l *Line) InsertChar(ch rune, index int) {
	if index < 0 || index > len(l.fragments) {
		return
	}
	fragments := make([]Fragment, 0, len(l.fragments)+1)
	fragments = append(fragments, l.fragments[:index]...)
	fragments = append(fragments, NewFragment(string(ch)))
	l.fragments = append(fragments, l.fragments[index:]...)
}

// Split truncates the line at index and returns the removed tail.
func (l *Line) Split(index int) Line {
	index = min(max(index, 0), len(l.fragments))
	tail := make([]Fragment, len(l.fragments)-index)
	copy(tail, l.fragments[index:])
	l.fragments = l.fragments[:index:index]
	return Line{fragments: tail}
}

// Delete removes the fragment at index.
func (l *Line) Delete(index int) {
	if index < 0 || index >= len(l.fragments) {
		return
	}
	l.fragments = append(l.fragments[:index], l.fragments[index+1:]...)
}

// Append joins the fragments of other onto the end of the line.
func (l *Line) Append(other Line) {
	if len(other.fragments) == 0 {
		return
	}
	fragments := make([]Fragment, 0, len(l.fragments)+len(other.fragments))
	fragments = append(fragments, l.fragments...)
	l.fragments = append(fragments, other.fragments...)
}
