package ui

import "github.com/illfygli/neophyte/internal/event"

// Cell is a single grid cell: one grapheme cluster and the id of the
// highlight attributes that style it. A continuation cell (right half of a
// wide character) has empty Text.
type Cell struct {
	Text string
	HlID int
}

// EmptyCell returns a blank cell with default highlighting.
func EmptyCell() Cell {
	return Cell{Text: " "}
}

// Grid is a rectangular character grid owned by the editor. Grid 1 is the
// outer grid covering the whole screen; with per-window grids enabled every
// window draws into its own.
type Grid struct {
	ID     int
	Width  int
	Height int
	Cells  [][]Cell
}

func newGrid(id, width, height int) *Grid {
	g := &Grid{ID: id}
	g.resize(width, height)
	return g
}

// resize reallocates the cell array, keeping the overlapping region and
// filling newly exposed cells with blanks.
func (g *Grid) resize(width, height int) {
	cells := make([][]Cell, height)
	for row := range cells {
		cells[row] = make([]Cell, width)
		for col := range cells[row] {
			if row < g.Height && col < g.Width {
				cells[row][col] = g.Cells[row][col]
			} else {
				cells[row][col] = EmptyCell()
			}
		}
	}
	g.Width = width
	g.Height = height
	g.Cells = cells
}

// clear blanks every cell.
func (g *Grid) clear() {
	for row := range g.Cells {
		for col := range g.Cells[row] {
			g.Cells[row][col] = EmptyCell()
		}
	}
}

// setRow writes one run of decoded cells starting at colStart. A cell
// without its own highlight id continues the previous cell's; a repeat
// count expands the cell in place. Writes past the right edge are dropped.
func (g *Grid) setRow(row, colStart int, cells []event.Cell) {
	if row < 0 || row >= g.Height {
		return
	}
	col := colStart
	hl := 0
	for _, c := range cells {
		if c.HlID != nil {
			hl = *c.HlID
		}
		repeat := 1
		if c.Repeat != nil {
			repeat = *c.Repeat
		}
		for i := 0; i < repeat; i++ {
			if col < 0 || col >= g.Width {
				return
			}
			g.Cells[row][col] = Cell{Text: c.Text, HlID: hl}
			col++
		}
	}
}

// scroll moves the region rows in [top,bot) and cols in [left,right) by
// rows lines. Positive rows moves content up, negative down. Cells scrolled
// into the region keep their old contents; the editor redraws them with
// separate line events.
func (g *Grid) scroll(top, bot, left, right, rows int) {
	top = max(top, 0)
	bot = min(bot, g.Height)
	left = max(left, 0)
	right = min(right, g.Width)
	if top >= bot || left >= right || rows == 0 {
		return
	}

	if rows > 0 {
		for row := top; row < bot-rows; row++ {
			copy(g.Cells[row][left:right], g.Cells[row+rows][left:right])
		}
	} else {
		for row := bot - 1; row >= top-rows; row-- {
			copy(g.Cells[row][left:right], g.Cells[row+rows][left:right])
		}
	}
}
