// Package tui is the terminal front end: it composites session events into
// a tcell screen and feeds terminal input back to the editor as key and
// mouse notation.
package tui

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/rs/zerolog"

	"github.com/illfygli/neophyte/internal/event"
	"github.com/illfygli/neophyte/internal/nvim"
	"github.com/illfygli/neophyte/internal/ui"
)

// Options adjusts front end behavior from configuration.
type Options struct {
	// Mouse gates terminal mouse reporting. The editor still asks for
	// mouse input through the redraw stream; with Mouse false those
	// requests are ignored.
	Mouse bool
}

// TUI owns the terminal for the lifetime of one editor session.
type TUI struct {
	log     zerolog.Logger
	screen  tcell.Screen
	session *nvim.Session
	state   *ui.State
	opts    Options
	mouse   mouseTracker

	pasting bool
	paste   strings.Builder
}

// New wires a front end around a not yet initialized screen and a running
// session.
func New(screen tcell.Screen, session *nvim.Session, opts Options, log zerolog.Logger) *TUI {
	return &TUI{
		log:     log.With().Str("component", "tui").Logger(),
		screen:  screen,
		session: session,
		state:   ui.New(log),
		opts:    opts,
	}
}

// Run initializes the terminal, attaches the UI, and loops until the
// session ends. The terminal is restored before it returns.
func (t *TUI) Run() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer t.screen.Fini()

	if t.opts.Mouse {
		t.screen.EnableMouse()
	}
	t.screen.EnablePaste()
	t.screen.EnableFocus()

	cols, rows := t.screen.Size()
	t.session.AttachUI(cols, rows)

	quit := make(chan struct{})
	defer close(quit)
	terminal := make(chan tcell.Event, 16)
	go t.screen.ChannelEvents(terminal, quit)

	events := t.session.Events()
	replies := t.session.Responses()
	for {
		select {
		case batch, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			t.apply(batch)
		case reply, ok := <-replies:
			if !ok {
				replies = nil
				continue
			}
			if reply.Err != nil {
				t.log.Warn().Uint64("msgid", reply.MsgID).Err(reply.Err).Msg("editor rejected a call")
			}
		case ev, ok := <-terminal:
			if !ok {
				terminal = nil
				continue
			}
			t.handleTerminal(ev)
		case <-t.session.Done():
			return t.session.Err()
		}
	}
}

// apply folds a redraw batch into the screen state and performs the events
// aimed at the terminal itself.
func (t *TUI) apply(batch []event.Event) {
	for _, ev := range batch {
		switch ev := ev.(type) {
		case event.Flush:
			t.draw()
		case event.Bell, event.VisualBell:
			t.screen.Beep()
		case event.Suspend:
			t.suspend()
		case event.SetTitle:
			t.state.Apply(ev)
			t.screen.SetTitle(ev.Title)
		case event.Mouse:
			t.state.Apply(ev)
			if ev.Enabled && t.opts.Mouse {
				t.screen.EnableMouse()
			} else {
				t.screen.DisableMouse()
			}
		default:
			t.state.Apply(ev)
		}
	}
}

func (t *TUI) draw() {
	sc := t.state.Composite()
	defaults := t.state.DefaultColors()

	t.screen.Fill(' ', styleFor(event.Attributes{}, defaults))
	for row := 0; row < sc.Height; row++ {
		for col := 0; col < sc.Width; {
			cell := sc.Cells[row][col]
			if cell.Text == "" {
				// Continuation of a wide character.
				col++
				continue
			}
			style := styleFor(t.state.Attr(cell.HlID), defaults)
			main, comb, width := splitCluster(cell.Text)
			t.screen.SetContent(col, row, main, comb, style)
			col += max(width, 1)
		}
	}

	if sc.CursorVisible {
		mode, _ := t.state.Mode()
		t.screen.SetCursorStyle(cursorStyle(t.state.CursorShape(), mode.BlinkOn > 0))
		t.screen.ShowCursor(sc.CursorCol, sc.CursorRow)
	} else {
		t.screen.HideCursor()
	}
	t.screen.Show()
}

// splitCluster breaks a cell's text into the leading rune, its combining
// runes, and the cluster's display width.
func splitCluster(text string) (rune, []rune, int) {
	gr := uniseg.NewGraphemes(text)
	if !gr.Next() {
		return ' ', nil, 1
	}
	runes := gr.Runes()
	return runes[0], runes[1:], gr.Width()
}

func (t *TUI) handleTerminal(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if t.pasting {
			t.pasteKey(ev)
			return
		}
		if keys, ok := keyNotation(ev); ok {
			t.session.Input(keys)
		}
	case *tcell.EventMouse:
		if !t.state.MouseEnabled() {
			return
		}
		button, action, mods, ok := t.mouse.translate(ev)
		if !ok {
			return
		}
		x, y := ev.Position()
		grid, row, col := t.state.GridAt(y, x)
		t.session.InputMouse(button, action, mods, grid, row, col)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.session.TryResize(cols, rows)
	case *tcell.EventPaste:
		if ev.Start() {
			t.pasting = true
			t.paste.Reset()
			return
		}
		t.pasting = false
		if t.paste.Len() > 0 {
			t.session.Paste(t.paste.String())
		}
	case *tcell.EventFocus:
		t.session.Call("nvim_ui_set_focus", ev.Focused)
	}
}

// pasteKey accumulates bracketed paste content, which arrives as ordinary
// key events between the paste markers.
func (t *TUI) pasteKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		t.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter:
		t.paste.WriteByte('\n')
	case tcell.KeyTab:
		t.paste.WriteByte('\t')
	}
}

// suspend hands the terminal back to the shell until the process is
// continued.
func (t *TUI) suspend() {
	if err := t.screen.Suspend(); err != nil {
		t.log.Warn().Err(err).Msg("suspend failed")
		return
	}
	_ = syscall.Kill(os.Getpid(), syscall.SIGTSTP)
	if err := t.screen.Resume(); err != nil {
		t.log.Error().Err(err).Msg("resume failed")
		return
	}
	t.draw()
}
