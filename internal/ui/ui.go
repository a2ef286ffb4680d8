// Package ui keeps the client-side picture of the editor screen: grid
// contents, highlight definitions, default colors, cursor, mode, and window
// layout. It consumes decoded redraw events and composites the grids into a
// single screen for a front end to draw.
//
// A State is not safe for concurrent use; the goroutine applying events
// owns it.
package ui

import (
	"github.com/rs/zerolog"

	"github.com/illfygli/neophyte/internal/event"
)

// outerGrid covers the whole screen; every other grid is placed on top.
const outerGrid = 1

// State is the accumulated screen state between redraw flushes.
type State struct {
	log zerolog.Logger

	grids     map[int]*Grid
	places    map[int]*placement
	viewports map[int]event.WinViewport

	highlights map[int]event.Attributes
	groups     map[string]int
	defaults   event.DefaultColorsSet

	title string
	icon  string

	busy  bool
	mouse bool

	modes              []event.ModeInfo
	modeIdx            int
	modeName           string
	cursorStyleEnabled bool

	cursorGrid int
	cursorRow  int
	cursorCol  int

	options map[string]any
}

// New returns an empty screen state.
func New(log zerolog.Logger) *State {
	return &State{
		log:        log.With().Str("component", "ui").Logger(),
		grids:      make(map[int]*Grid),
		places:     make(map[int]*placement),
		viewports:  make(map[int]event.WinViewport),
		highlights: make(map[int]event.Attributes),
		groups:     make(map[string]int),
		options:    make(map[string]any),
		cursorGrid: outerGrid,
	}
}

// Apply folds one event into the state. Events that only concern the front
// end, like Flush and Bell, are ignored here.
func (s *State) Apply(ev event.Event) {
	switch ev := ev.(type) {
	case event.GridResize:
		s.grid(ev.Grid).resize(ev.Width, ev.Height)
	case event.GridLine:
		if g, ok := s.grids[ev.Grid]; ok {
			g.setRow(ev.Row, ev.ColStart, ev.Cells)
		} else {
			s.log.Debug().Int("grid", ev.Grid).Msg("line for a grid that was never sized")
		}
	case event.GridClear:
		if g, ok := s.grids[ev.Grid]; ok {
			g.clear()
		}
	case event.GridDestroy:
		delete(s.grids, ev.Grid)
		delete(s.places, ev.Grid)
		delete(s.viewports, ev.Grid)
	case event.GridCursorGoto:
		s.cursorGrid = ev.Grid
		s.cursorRow = ev.Row
		s.cursorCol = ev.Col
	case event.GridScroll:
		if g, ok := s.grids[ev.Grid]; ok {
			g.scroll(ev.Top, ev.Bot, ev.Left, ev.Right, ev.Rows)
		}

	case event.HlAttrDefine:
		s.highlights[ev.ID] = ev.RGB
	case event.HlGroupSet:
		s.groups[ev.Name] = ev.ID
	case event.DefaultColorsSet:
		s.defaults = ev

	case event.ModeInfoSet:
		s.cursorStyleEnabled = ev.CursorStyleEnabled
		s.modes = ev.Modes
		if s.modeIdx >= len(s.modes) {
			s.modeIdx = 0
		}
	case event.ModeChange:
		s.modeIdx = ev.Idx
		s.modeName = ev.Name

	case event.SetTitle:
		s.title = ev.Title
	case event.SetIcon:
		s.icon = ev.Icon
	case event.Busy:
		s.busy = ev.Active
	case event.Mouse:
		s.mouse = ev.Enabled
	case event.OptionSet:
		s.options[ev.Name] = ev.Value

	case event.WinPos:
		s.places[ev.Grid] = &placement{
			win: ev.Win,
			row: ev.StartRow,
			col: ev.StartCol,
		}
		s.grid(ev.Grid).resize(ev.Width, ev.Height)
	case event.WinFloatPos:
		zindex := ev.ZIndex
		if zindex <= 0 {
			zindex = zFloat
		}
		s.places[ev.Grid] = &placement{
			win:        ev.Win,
			float:      true,
			anchor:     ev.Anchor,
			anchorGrid: ev.AnchorGrid,
			anchorRow:  ev.AnchorRow,
			anchorCol:  ev.AnchorCol,
			zindex:     zindex,
		}
	case event.WinHide:
		if p, ok := s.places[ev.Grid]; ok {
			p.hidden = true
		}
	case event.WinClose:
		delete(s.places, ev.Grid)
	case event.WinViewport:
		s.viewports[ev.Grid] = ev
	case event.MsgSetPos:
		s.places[ev.Grid] = &placement{
			msg:      true,
			row:      ev.Row,
			scrolled: ev.Scrolled,
			sepChar:  ev.SepChar,
		}
	}
}

func (s *State) grid(id int) *Grid {
	g, ok := s.grids[id]
	if !ok {
		g = newGrid(id, 0, 0)
		s.grids[id] = g
	}
	return g
}

// Size is the outer grid's dimensions.
func (s *State) Size() (width, height int) {
	if g, ok := s.grids[outerGrid]; ok {
		return g.Width, g.Height
	}
	return 0, 0
}

// Title is the window title requested by the editor.
func (s *State) Title() string { return s.title }

// Icon is the minimized-window title requested by the editor.
func (s *State) Icon() string { return s.icon }

// Busy reports whether the editor wants the cursor hidden.
func (s *State) Busy() bool { return s.busy }

// MouseEnabled reports whether the editor wants mouse input.
func (s *State) MouseEnabled() bool { return s.mouse }

// Attr looks up a defined highlight. Id 0 and unknown ids mean default
// colors, reported as the zero Attributes.
func (s *State) Attr(id int) event.Attributes {
	return s.highlights[id]
}

// DefaultColors is the most recent default color set.
func (s *State) DefaultColors() event.DefaultColorsSet {
	return s.defaults
}

// Group resolves a highlight group name to its attribute id.
func (s *State) Group(name string) (int, bool) {
	id, ok := s.groups[name]
	return id, ok
}

// Mode is the active mode's info, if mode information has arrived.
func (s *State) Mode() (event.ModeInfo, bool) {
	if s.modeIdx < 0 || s.modeIdx >= len(s.modes) {
		return event.ModeInfo{}, false
	}
	return s.modes[s.modeIdx], true
}

// CursorShape is the active mode's cursor shape, block when unknown or when
// the editor told us not to style the cursor.
func (s *State) CursorShape() event.CursorShape {
	if !s.cursorStyleEnabled {
		return event.CursorBlock
	}
	m, ok := s.Mode()
	if !ok {
		return event.CursorBlock
	}
	return m.CursorShape
}

// Option returns the value of a UI option the editor has reported.
func (s *State) Option(name string) (any, bool) {
	v, ok := s.options[name]
	return v, ok
}

// Viewport returns the last reported viewport for a window grid.
func (s *State) Viewport(grid int) (event.WinViewport, bool) {
	vp, ok := s.viewports[grid]
	return vp, ok
}
