// Package editor runs an editing session. It owns the current mode, routes
// classified input events to the view, and draws the status and message bars
// below it.
package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nsf/termbox-go"
	"github.com/spf13/afero"

	"github.com/mnkhoi/kedit/internal/buffer"
	"github.com/mnkhoi/kedit/internal/command"
	"github.com/mnkhoi/kedit/internal/logger"
	"github.com/mnkhoi/kedit/internal/terminal"
	"github.com/mnkhoi/kedit/internal/view"
)

// HelpMessage is shown in the message bar until the first other message.
const HelpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit"

// EventSource delivers input events. PollEvent blocks until one is available.
type EventSource interface {
	PollEvent() termbox.Event
}

// Options configures a session.
type Options struct {
	Info           view.Info
	Fs             afero.Fs      // Filesystem documents are loaded from and saved to. Nil means the OS.
	Debug          bool          // Turn terminal failures and unsupported events into errors.
	MessageTimeout time.Duration // How long a message stays in the message bar.
	StatusBar      bool
	Title          bool
	Now            func() time.Time // Clock for message expiry. Nil means time.Now.
}

// Editor is a single editing session on one terminal.
type Editor struct {
	surface terminal.Surface
	events  EventSource
	opts    Options

	view       *view.View
	mode       command.Mode
	size       terminal.Size // Whole terminal, including the bars.
	statusBar  statusBar
	messageBar messageBar
	needsClear bool
	shouldQuit bool
}

// New creates a session with an empty document sized to the surface.
func New(surface terminal.Surface, events EventSource, opts Options) (*Editor, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	size, err := surface.Size()
	if err != nil {
		return nil, fmt.Errorf("query terminal size: %w", err)
	}

	e := &Editor{
		surface:    surface,
		events:     events,
		opts:       opts,
		mode:       command.ModeNormal,
		size:       size,
		statusBar:  statusBar{needsRedraw: true},
		messageBar: messageBar{timeout: opts.MessageTimeout},
	}
	e.view = view.New(buffer.New(opts.Fs), e.viewSize(), opts.Info)
	e.messageBar.set(HelpMessage, false, opts.Now())
	return e, nil
}

// Mode returns the current editor mode.
func (e *Editor) Mode() command.Mode {
	return e.mode
}

// View returns the view showing the document.
func (e *Editor) View() *view.View {
	return e.view
}

// Message returns the current message bar text, whether or not it expired.
func (e *Editor) Message() string {
	return e.messageBar.text
}

// chromeRows is the number of rows below the view.
func (e *Editor) chromeRows() int {
	if e.opts.StatusBar {
		return 2
	}
	return 1
}

func (e *Editor) viewSize() terminal.Size {
	return terminal.Size{
		Height: max(e.size.Height-e.chromeRows(), 0),
		Width:  e.size.Width,
	}
}

// Open loads path into the session. A file that does not exist yet starts an
// empty document that the first save creates. Other failures leave the
// document empty and are reported in the message bar.
func (e *Editor) Open(path string) {
	err := e.view.Load(path)
	switch {
	case err == nil:
		b := e.view.Buffer()
		logger.Info("loaded file", "path", path, "lines", b.Height(), "bytes", b.Size())
		e.setMessage(fmt.Sprintf("%q %d lines, %s", path, b.Height(), humanize.Bytes(uint64(b.Size()))))
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("new file", "path", path)
		e.view.Buffer().SetPath(path)
		e.setMessage(fmt.Sprintf("%q [New]", path))
	default:
		logger.Error("failed to load file", "path", path, "error", err)
		e.setError("ERR: could not open file: " + path)
	}
	e.updateTitle()
}

func (e *Editor) save() {
	b := e.view.Buffer()
	if b.Path() == "" {
		e.setError("ERR: no file name")
		return
	}
	if err := e.view.Save(); err != nil {
		logger.Error("failed to save file", "path", b.Path(), "error", err)
		e.setError(fmt.Sprintf("ERR: could not write %s: %v", b.Path(), errors.Unwrap(err)))
		return
	}
	logger.Info("saved file", "path", b.Path(), "lines", b.Height(), "bytes", b.Size())
	e.setMessage(fmt.Sprintf("%q written, %d lines, %s", b.Path(), b.Height(), humanize.Bytes(uint64(b.Size()))))
	e.updateTitle()
}

func (e *Editor) setMessage(text string) {
	e.messageBar.set(text, false, e.opts.Now())
}

func (e *Editor) setError(text string) {
	e.messageBar.set(text, true, e.opts.Now())
}

func (e *Editor) setMode(mode command.Mode) {
	if mode == e.mode {
		return
	}
	logger.Debug("mode change", "from", e.mode.String(), "to", mode.String())
	e.mode = mode
}

func (e *Editor) resize(to terminal.Size) {
	e.size = to
	e.view.Resize(e.viewSize())
	e.statusBar.needsRedraw = true
	e.messageBar.needsRedraw = true
	e.needsClear = true
}

func (e *Editor) updateTitle() {
	if !e.opts.Title {
		return
	}
	if err := e.surface.SetTitle(e.title()); err != nil {
		logger.Warn("failed to set title", "error", err)
	}
}

func (e *Editor) title() string {
	return fileName(e.view.Buffer().Path()) + " - " + e.opts.Info.Name
}

func fileName(path string) string {
	if path == "" {
		return "[No Name]"
	}
	return path
}
