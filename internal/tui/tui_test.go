package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/illfygli/neophyte/internal/event"
	"github.com/illfygli/neophyte/internal/ui"
)

func newTestTUI(t *testing.T) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(10, 4)

	tui := &TUI{
		log:    zerolog.Nop(),
		screen: sim,
		state:  ui.New(zerolog.Nop()),
		opts:   Options{Mouse: true},
	}
	return tui, sim
}

func TestDrawRendersCompositedState(t *testing.T) {
	tui, sim := newTestTUI(t)
	tui.state.Apply(event.GridResize{Grid: 1, Width: 4, Height: 2})
	tui.state.Apply(event.DefaultColorsSet{FG: 0xffffff, BG: 0x101010})
	tui.state.Apply(event.HlAttrDefine{ID: 2, RGB: event.Attributes{Foreground: rgbp(0xff0000)}})
	tui.state.Apply(event.GridLine{Grid: 1, Row: 0, Cells: []event.Cell{
		{Text: "h", HlID: intp(2)},
		{Text: "i", HlID: intp(0)},
	}})
	tui.state.Apply(event.GridCursorGoto{Grid: 1, Row: 0, Col: 1})

	tui.draw()

	cells, width, _ := sim.GetContents()
	at := func(x, y int) tcell.SimCell { return cells[y*width+x] }

	if got := at(0, 0).Runes[0]; got != 'h' {
		t.Errorf("cell (0,0) = %q, want h", got)
	}
	if got := at(1, 0).Runes[0]; got != 'i' {
		t.Errorf("cell (1,0) = %q, want i", got)
	}
	fg, _, _ := at(0, 0).Style.Decompose()
	if fg != tcell.NewHexColor(0xff0000) {
		t.Errorf("cell (0,0) fg = %v, want red", fg)
	}
	fg, _, _ = at(1, 0).Style.Decompose()
	if fg != tcell.NewHexColor(0xffffff) {
		t.Errorf("cell (1,0) fg = %v, want default", fg)
	}

	x, y, visible := sim.GetCursor()
	if !visible || x != 1 || y != 0 {
		t.Errorf("cursor = (%d,%d) visible=%v, want (1,0) visible", x, y, visible)
	}
}

func TestDrawHandlesWideCharacters(t *testing.T) {
	tui, sim := newTestTUI(t)
	tui.state.Apply(event.GridResize{Grid: 1, Width: 6, Height: 1})
	tui.state.Apply(event.GridLine{Grid: 1, Row: 0, Cells: []event.Cell{
		{Text: "世", HlID: intp(0)},
		{Text: ""},
		{Text: "x"},
	}})

	tui.draw()

	cells, width, _ := sim.GetContents()
	if got := cells[0].Runes[0]; got != '世' {
		t.Errorf("cell (0,0) = %q, want 世", got)
	}
	if got := cells[2].Runes[0]; got != 'x' {
		t.Errorf("cell (2,0) = %q, want x", got)
	}
	_ = width
}

func TestDrawHidesCursorWhenBusy(t *testing.T) {
	tui, sim := newTestTUI(t)
	tui.state.Apply(event.GridResize{Grid: 1, Width: 2, Height: 1})
	tui.state.Apply(event.GridCursorGoto{Grid: 1, Row: 0, Col: 0})
	tui.state.Apply(event.Busy{Active: true})

	tui.draw()

	if _, _, visible := sim.GetCursor(); visible {
		t.Error("cursor visible while the editor is busy")
	}
}

func TestSplitCluster(t *testing.T) {
	tests := []struct {
		text  string
		main  rune
		comb  int
		width int
	}{
		{"a", 'a', 0, 1},
		{"世", '世', 0, 2},
		{"é", 'e', 1, 1},
		{"", ' ', 0, 1},
	}
	for _, tt := range tests {
		main, comb, width := splitCluster(tt.text)
		if main != tt.main || len(comb) != tt.comb || width != tt.width {
			t.Errorf("splitCluster(%q) = (%q, %d combining, width %d), want (%q, %d, %d)",
				tt.text, main, len(comb), width, tt.main, tt.comb, tt.width)
		}
	}
}
