package editor

// The event loop: draw, wait for one event, apply it, repeat. Everything runs
// on the caller's goroutine.

import (
	"errors"
	"fmt"

	"github.com/nsf/termbox-go"

	"github.com/mnkhoi/kedit/internal/command"
	"github.com/mnkhoi/kedit/internal/logger"
	"github.com/mnkhoi/kedit/internal/terminal"
)

// Run processes events until the quit command. It returns an error only when
// debug mode escalates a failure; otherwise failures are logged and the
// session continues.
func (e *Editor) Run() error {
	e.updateTitle()
	for {
		if err := e.refresh(); err != nil {
			if e.opts.Debug {
				return err
			}
			logger.Warn("terminal surface failure", "error", err)
		}
		if e.shouldQuit {
			break
		}
		if err := e.handleEvent(e.events.PollEvent()); err != nil {
			return err
		}
	}

	if err := e.goodbye(); err != nil {
		if e.opts.Debug {
			return err
		}
		logger.Warn("terminal surface failure", "error", err)
	}
	return nil
}

// handleEvent classifies ev and applies the resulting command.
func (e *Editor) handleEvent(ev termbox.Event) error {
	if ev.Type == termbox.EventError {
		if e.opts.Debug {
			return fmt.Errorf("terminal input: %w", ev.Err)
		}
		logger.Warn("terminal input failure", "error", ev.Err)
		return nil
	}

	cmd, err := command.Classify(ev, e.mode)
	if err != nil {
		if e.opts.Debug && errors.Is(err, command.ErrUnsupportedEvent) {
			return err
		}
		logger.Debug("ignored event", "error", err)
		return nil
	}
	e.execute(cmd)
	return nil
}

func (e *Editor) execute(cmd command.Command) {
	switch c := cmd.(type) {
	case command.Quit:
		e.shouldQuit = true
	case command.Cancel:
		e.setMode(command.ModeNormal)
	case command.ChangeMode:
		e.setMode(c.Mode)
	case command.Resize:
		e.resize(c.Size)
	case command.Normal:
		if _, ok := c.Cmd.(command.Save); ok {
			e.save()
			return
		}
		e.view.HandleCommand(c)
	default:
		e.view.HandleCommand(cmd)
	}
}

// refresh draws whatever changed and places the caret. The caret is hidden
// while drawing so it does not flicker across the screen.
func (e *Editor) refresh() error {
	if err := e.surface.HideCaret(); err != nil {
		return err
	}
	if e.needsClear {
		if err := e.surface.ClearScreen(); err != nil {
			return err
		}
		e.view.Invalidate()
		e.needsClear = false
	}
	if err := e.view.Render(e.surface); err != nil {
		return err
	}

	bottom := e.size.Height - 1
	if e.opts.StatusBar && bottom >= 1 {
		st := status{Mode: e.mode, Document: e.view.Status()}
		if err := e.statusBar.render(e.surface, bottom-1, e.size.Width, st); err != nil {
			return fmt.Errorf("render status bar: %w", err)
		}
	}
	if bottom >= 0 {
		if err := e.messageBar.render(e.surface, bottom, e.size.Width, e.opts.Now()); err != nil {
			return fmt.Errorf("render message bar: %w", err)
		}
	}

	if err := e.surface.MoveCaret(e.view.CaretPosition()); err != nil {
		return err
	}
	if err := e.surface.ShowCaret(); err != nil {
		return err
	}
	return e.surface.Flush()
}

// goodbye leaves a blank screen behind before the terminal is restored.
func (e *Editor) goodbye() error {
	logger.Info("session ended", "dirty", e.view.Buffer().IsDirty())
	if err := e.surface.ClearScreen(); err != nil {
		return err
	}
	if err := e.surface.MoveCaret(terminal.Position{}); err != nil {
		return err
	}
	return e.surface.Flush()
}
