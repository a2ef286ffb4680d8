package event

import "fmt"

// GridResize announces a grid's new size in cells.
type GridResize struct {
	Grid   int
	Width  int
	Height int
}

func (GridResize) isEvent() {}

// Cell is one run of text within a grid_line tuple. HlID is nil when the
// run continues the previous cell's highlight; Repeat is nil for a single
// occurrence.
type Cell struct {
	Text   string
	HlID   *int
	Repeat *int
}

// GridLine redraws part of a grid row starting at ColStart.
type GridLine struct {
	Grid     int
	Row      int
	ColStart int
	Cells    []Cell
	// Wrap marks the row as continuing onto the next one; older editors
	// omit it.
	Wrap bool
}

func (GridLine) isEvent() {}

// GridClear empties a grid to the default highlight.
type GridClear struct {
	Grid int
}

func (GridClear) isEvent() {}

// GridDestroy retires a grid id.
type GridDestroy struct {
	Grid int
}

func (GridDestroy) isEvent() {}

// GridCursorGoto moves the cursor. The named grid becomes the focused one.
type GridCursorGoto struct {
	Grid int
	Row  int
	Col  int
}

func (GridCursorGoto) isEvent() {}

// GridScroll shifts the region [Top, Bot) x [Left, Right) by Rows; positive
// values move content toward the top. Cols is reserved and currently always
// zero on the wire.
type GridScroll struct {
	Grid  int
	Top   int
	Bot   int
	Left  int
	Right int
	Rows  int
	Cols  int
}

func (GridScroll) isEvent() {}

func (d *Decoder) parseGridResize(t tuple) (Event, error) {
	grid, err := t.int(0, "grid")
	if err != nil {
		return nil, err
	}
	width, err := t.int(1, "width")
	if err != nil {
		return nil, err
	}
	height, err := t.int(2, "height")
	if err != nil {
		return nil, err
	}
	return GridResize{Grid: grid, Width: width, Height: height}, nil
}

func (d *Decoder) parseGridLine(t tuple) (Event, error) {
	grid, err := t.int(0, "grid")
	if err != nil {
		return nil, err
	}
	row, err := t.int(1, "row")
	if err != nil {
		return nil, err
	}
	colStart, err := t.int(2, "col_start")
	if err != nil {
		return nil, err
	}
	rawCells, err := t.array(3, "cells")
	if err != nil {
		return nil, err
	}
	ev := GridLine{Grid: grid, Row: row, ColStart: colStart, Cells: make([]Cell, 0, len(rawCells))}
	for i, rawCell := range rawCells {
		cell, err := parseCell(rawCell)
		if err != nil {
			return nil, fmt.Errorf("cells[%d]: %w", i, err)
		}
		ev.Cells = append(ev.Cells, cell)
	}
	if t.len() > 4 {
		if ev.Wrap, err = t.bool(4, "wrap"); err != nil {
			return nil, err
		}
	}
	return ev, nil
}

// parseCell reads [text, hl_id, repeat] where the trailing elements are
// optional but ordered: repeat never appears without hl_id.
func parseCell(raw any) (Cell, error) {
	vals, ok := raw.([]any)
	if !ok {
		return Cell{}, fmt.Errorf("got %T, want array", raw)
	}
	t := tuple{name: "cell", vals: vals}
	var cell Cell
	text, err := t.string(0, "text")
	if err != nil {
		return cell, err
	}
	cell.Text = text
	if t.len() > 1 {
		hl, err := t.int(1, "hl_id")
		if err != nil {
			return cell, err
		}
		cell.HlID = &hl
	}
	if t.len() > 2 {
		repeat, err := t.int(2, "repeat")
		if err != nil {
			return cell, err
		}
		cell.Repeat = &repeat
	}
	return cell, nil
}

func (d *Decoder) parseGridClear(t tuple) (Event, error) {
	grid, err := t.int(0, "grid")
	if err != nil {
		return nil, err
	}
	return GridClear{Grid: grid}, nil
}

func (d *Decoder) parseGridDestroy(t tuple) (Event, error) {
	grid, err := t.int(0, "grid")
	if err != nil {
		return nil, err
	}
	return GridDestroy{Grid: grid}, nil
}

func (d *Decoder) parseGridCursorGoto(t tuple) (Event, error) {
	grid, err := t.int(0, "grid")
	if err != nil {
		return nil, err
	}
	row, err := t.int(1, "row")
	if err != nil {
		return nil, err
	}
	col, err := t.int(2, "col")
	if err != nil {
		return nil, err
	}
	return GridCursorGoto{Grid: grid, Row: row, Col: col}, nil
}

func (d *Decoder) parseGridScroll(t tuple) (Event, error) {
	var ev GridScroll
	var err error
	if ev.Grid, err = t.int(0, "grid"); err != nil {
		return nil, err
	}
	if ev.Top, err = t.int(1, "top"); err != nil {
		return nil, err
	}
	if ev.Bot, err = t.int(2, "bot"); err != nil {
		return nil, err
	}
	if ev.Left, err = t.int(3, "left"); err != nil {
		return nil, err
	}
	if ev.Right, err = t.int(4, "right"); err != nil {
		return nil, err
	}
	if ev.Rows, err = t.int(5, "rows"); err != nil {
		return nil, err
	}
	if ev.Cols, err = t.int(6, "cols"); err != nil {
		return nil, err
	}
	return ev, nil
}
