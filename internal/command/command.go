// Package command turns raw terminal events into editor commands. Which
// commands exist depends on the current Mode; a few are global and recognized
// in every mode.
package command

import (
	"github.com/mnkhoi/kedit/internal/terminal"
)

// Mode represents the current operational state of the editor.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	default:
		return "NORMAL"
	}
}

// Direction of a cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	PageUp   // One viewport height up.
	PageDown // One viewport height down.
	Home     // Start of the current line.
	End      // End of the current line.
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case PageUp:
		return "page-up"
	case PageDown:
		return "page-down"
	case Home:
		return "home"
	case End:
		return "end"
	}
	return "unknown"
}

// Command is a classified event. The concrete types are Normal, Insert,
// Visual, Resize, ChangeMode, Cancel and Quit.
type Command interface {
	isCommand()
}

// NormalCommand is a command only recognized in Normal mode.
type NormalCommand interface {
	isNormal()
}

// InsertCommand is a command only recognized in Insert mode.
type InsertCommand interface {
	isInsert()
}

// VisualCommand is a command only recognized in Visual mode. There are none
// yet; the mode only supports the global commands.
type VisualCommand interface {
	isVisual()
}

// Move moves the cursor.
type Move struct{ Direction Direction }

// Save writes the document to its file.
type Save struct{}

// InsertChar inserts a character at the cursor.
type InsertChar struct{ Char rune }

// InsertNewline splits the line at the cursor.
type InsertNewline struct{}

// Backspace deletes the grapheme before the cursor.
type Backspace struct{}

// Delete deletes the grapheme under the cursor.
type Delete struct{}

func (Move) isNormal() {}
func (Save) isNormal() {}

func (InsertChar) isInsert()    {}
func (InsertNewline) isInsert() {}
func (Backspace) isInsert()     {}
func (Delete) isInsert()        {}

// Normal wraps a Normal mode command.
type Normal struct{ Cmd NormalCommand }

// Insert wraps an Insert mode command.
type Insert struct{ Cmd InsertCommand }

// Visual wraps a Visual mode command.
type Visual struct{ Cmd VisualCommand }

// Resize carries the new terminal size.
type Resize struct{ Size terminal.Size }

// ChangeMode switches to another mode.
type ChangeMode struct{ Mode Mode }

// Cancel returns to Normal mode from anywhere.
type Cancel struct{}

// Quit ends the session.
type Quit struct{}

func (Normal) isCommand()     {}
func (Insert) isCommand()     {}
func (Visual) isCommand()     {}
func (Resize) isCommand()     {}
func (ChangeMode) isCommand() {}
func (Cancel) isCommand()     {}
func (Quit) isCommand()       {}
