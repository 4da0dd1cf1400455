package command

// Classification of termbox events. Global commands (resize, cancel) are
// checked first, then the table of the current mode. Anything left over is
// reported as an error the caller is expected to ignore.

import (
	"errors"
	"fmt"

	"github.com/nsf/termbox-go"

	"github.com/mnkhoi/kedit/internal/terminal"
)

var (
	// ErrUnsupportedEvent is returned for event types the editor never handles
	// (mouse, interrupt, raw input).
	ErrUnsupportedEvent = errors.New("unsupported event")
	// ErrUnrecognized is returned for key events with no meaning in the
	// current mode.
	ErrUnrecognized = errors.New("unrecognized key")
)

var normalKeys = map[termbox.Key]Direction{
	termbox.KeyArrowUp:    Up,
	termbox.KeyArrowDown:  Down,
	termbox.KeyArrowLeft:  Left,
	termbox.KeyArrowRight: Right,
	termbox.KeyPgup:       PageUp,
	termbox.KeyPgdn:       PageDown,
	termbox.KeyHome:       Home,
	termbox.KeyEnd:        End,
}

var normalLetters = map[rune]Direction{
	'k': Up,
	'j': Down,
	'h': Left,
	'l': Right,
}

// Classify maps ev to a command for the given mode.
func Classify(ev termbox.Event, mode Mode) (Command, error) {
	switch ev.Type {
	case termbox.EventResize:
		return Resize{Size: terminal.Size{Height: ev.Height, Width: ev.Width}}, nil
	case termbox.EventKey:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEvent, eventName(ev.Type))
	}

	if ev.Key == termbox.KeyEsc {
		return Cancel{}, nil
	}

	switch mode {
	case ModeNormal:
		return classifyNormal(ev)
	case ModeInsert:
		return classifyInsert(ev)
	case ModeVisual:
		return classifyVisual(ev)
	}
	return nil, fmt.Errorf("%w: %s in unknown mode %d", ErrUnrecognized, keyName(ev), mode)
}

func classifyNormal(ev termbox.Event) (Command, error) {
	if ev.Ch != 0 {
		switch ev.Ch {
		case 'i':
			return ChangeMode{Mode: ModeInsert}, nil
		case 'v':
			return ChangeMode{Mode: ModeVisual}, nil
		}
		if dir, ok := normalLetters[ev.Ch]; ok {
			return Normal{Cmd: Move{Direction: dir}}, nil
		}
		return nil, unrecognized(ev, ModeNormal)
	}

	switch ev.Key {
	case termbox.KeyCtrlQ:
		return Quit{}, nil
	case termbox.KeyCtrlS:
		return Normal{Cmd: Save{}}, nil
	}
	if dir, ok := normalKeys[ev.Key]; ok {
		return Normal{Cmd: Move{Direction: dir}}, nil
	}
	return nil, unrecognized(ev, ModeNormal)
}

func classifyInsert(ev termbox.Event) (Command, error) {
	if ev.Ch != 0 {
		if ev.Mod&termbox.ModAlt != 0 {
			return nil, unrecognized(ev, ModeInsert)
		}
		return Insert{Cmd: InsertChar{Char: ev.Ch}}, nil
	}

	switch ev.Key {
	case termbox.KeySpace:
		return Insert{Cmd: InsertChar{Char: ' '}}, nil
	case termbox.KeyTab:
		return Insert{Cmd: InsertChar{Char: '\t'}}, nil
	case termbox.KeyEnter:
		return Insert{Cmd: InsertNewline{}}, nil
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return Insert{Cmd: Backspace{}}, nil
	case termbox.KeyDelete:
		return Insert{Cmd: Delete{}}, nil
	}
	return nil, unrecognized(ev, ModeInsert)
}

func classifyVisual(ev termbox.Event) (Command, error) {
	return nil, unrecognized(ev, ModeVisual)
}

func unrecognized(ev termbox.Event, mode Mode) error {
	return fmt.Errorf("%w: %s in %s mode", ErrUnrecognized, keyName(ev), mode)
}

func keyName(ev termbox.Event) string {
	if ev.Ch != 0 {
		return fmt.Sprintf("%q", ev.Ch)
	}
	return fmt.Sprintf("key 0x%04X", uint16(ev.Key))
}

func eventName(t termbox.EventType) string {
	switch t {
	case termbox.EventMouse:
		return "mouse"
	case termbox.EventError:
		return "error"
	case termbox.EventInterrupt:
		return "interrupt"
	case termbox.EventRaw:
		return "raw"
	case termbox.EventNone:
		return "none"
	}
	return fmt.Sprintf("type %d", t)
}
