package ui

import (
	"sort"

	"github.com/illfygli/neophyte/internal/event"
	"github.com/illfygli/neophyte/internal/rpc"
)

// Stacking planes for composition. Regular windows sit on the outer grid,
// floats above them at their own z-index, the message area above all.
const (
	zWindow  = 0
	zFloat   = 50
	zMessage = 200
)

// placement fixes a grid onto the screen. Regular windows carry absolute
// offsets; floats are anchored to a corner of another grid and resolved at
// composition time.
type placement struct {
	win    rpc.Window
	row    int
	col    int
	hidden bool

	float      bool
	anchor     event.Anchor
	anchorGrid int
	anchorRow  float64
	anchorCol  float64
	zindex     int

	msg      bool
	scrolled bool
	sepChar  string
}

// Screen is the result of compositing every visible grid onto the outer
// grid's area, plus the cursor in screen coordinates.
type Screen struct {
	Width  int
	Height int
	Cells  [][]Cell

	CursorRow     int
	CursorCol     int
	CursorVisible bool
}

// Composite flattens all visible grids in stacking order into a single
// screen-sized cell array.
func (s *State) Composite() *Screen {
	outer, ok := s.grids[outerGrid]
	if !ok {
		return &Screen{}
	}

	sc := &Screen{
		Width:  outer.Width,
		Height: outer.Height,
		Cells:  make([][]Cell, outer.Height),
	}
	for row := range sc.Cells {
		sc.Cells[row] = make([]Cell, outer.Width)
		copy(sc.Cells[row], outer.Cells[row])
	}

	for _, id := range s.stackingOrder() {
		if row, col, ok := s.resolvePos(id, nil); ok {
			sc.blit(s.grids[id], row, col)
		}
	}

	if row, col, ok := s.cursorScreenPos(); ok && !s.busy {
		sc.CursorRow = row
		sc.CursorCol = col
		sc.CursorVisible = true
	}
	return sc
}

func (sc *Screen) blit(g *Grid, atRow, atCol int) {
	for row := 0; row < g.Height; row++ {
		dst := atRow + row
		if dst < 0 || dst >= sc.Height {
			continue
		}
		for col := 0; col < g.Width; col++ {
			if c := atCol + col; c >= 0 && c < sc.Width {
				sc.Cells[dst][c] = g.Cells[row][col]
			}
		}
	}
}

// stackingOrder lists placed, visible grids bottom to top. Ties break on
// grid id so composition is deterministic.
func (s *State) stackingOrder() []int {
	ids := make([]int, 0, len(s.places))
	for id, p := range s.places {
		if p.hidden {
			continue
		}
		if _, ok := s.grids[id]; !ok {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		zi, zj := s.places[ids[i]].z(), s.places[ids[j]].z()
		if zi != zj {
			return zi < zj
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (p *placement) z() int {
	switch {
	case p.msg:
		return zMessage
	case p.float:
		return p.zindex
	default:
		return zWindow
	}
}

// resolvePos yields a grid's top-left corner in screen coordinates. Floats
// chase their anchor grid; the visited set breaks anchor cycles.
func (s *State) resolvePos(id int, visited map[int]bool) (row, col int, ok bool) {
	if id == outerGrid {
		return 0, 0, true
	}
	p, found := s.places[id]
	if !found || p.hidden || visited[id] {
		return 0, 0, false
	}

	if !p.float {
		return p.row, p.col, true
	}

	if visited == nil {
		visited = make(map[int]bool)
	}
	visited[id] = true
	baseRow, baseCol, ok := s.resolvePos(p.anchorGrid, visited)
	if !ok {
		return 0, 0, false
	}
	row = baseRow + int(p.anchorRow)
	col = baseCol + int(p.anchorCol)

	g, found := s.grids[id]
	if !found {
		return 0, 0, false
	}
	switch p.anchor {
	case event.AnchorNE:
		col -= g.Width
	case event.AnchorSW:
		row -= g.Height
	case event.AnchorSE:
		row -= g.Height
		col -= g.Width
	}
	return row, col, true
}

// GridAt finds the topmost grid covering a screen position and translates
// it into that grid's local coordinates. The outer grid catches anything
// not covered by a window.
func (s *State) GridAt(row, col int) (grid, localRow, localCol int) {
	order := s.stackingOrder()
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		atRow, atCol, ok := s.resolvePos(id, nil)
		if !ok {
			continue
		}
		g := s.grids[id]
		if row >= atRow && row < atRow+g.Height && col >= atCol && col < atCol+g.Width {
			return id, row - atRow, col - atCol
		}
	}
	return outerGrid, row, col
}

func (s *State) cursorScreenPos() (row, col int, ok bool) {
	g, found := s.grids[s.cursorGrid]
	if !found {
		return 0, 0, false
	}
	if s.cursorRow < 0 || s.cursorRow >= g.Height || s.cursorCol < 0 || s.cursorCol >= g.Width {
		return 0, 0, false
	}
	atRow, atCol, ok := s.resolvePos(s.cursorGrid, nil)
	if !ok {
		return 0, 0, false
	}
	return atRow + s.cursorRow, atCol + s.cursorCol, true
}
