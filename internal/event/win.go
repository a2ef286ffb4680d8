package event

import (
	"fmt"

	"github.com/illfygli/neophyte/internal/rpc"
)

// WinPos places a window's grid on the global layout, in cell coordinates
// of grid 1.
type WinPos struct {
	Grid     int
	Win      rpc.Window
	StartRow int
	StartCol int
	Width    int
	Height   int
}

func (WinPos) isEvent() {}

// Anchor is the corner of a floating window that its position refers to.
type Anchor int

const (
	AnchorNW Anchor = iota
	AnchorNE
	AnchorSW
	AnchorSE
)

// String returns the wire name of the anchor.
func (a Anchor) String() string {
	switch a {
	case AnchorNW:
		return "NW"
	case AnchorNE:
		return "NE"
	case AnchorSW:
		return "SW"
	case AnchorSE:
		return "SE"
	default:
		return fmt.Sprintf("anchor(%d)", int(a))
	}
}

func parseAnchor(s string) (Anchor, error) {
	switch s {
	case "NW":
		return AnchorNW, nil
	case "NE":
		return AnchorNE, nil
	case "SW":
		return AnchorSW, nil
	case "SE":
		return AnchorSE, nil
	default:
		return 0, fmt.Errorf("unknown anchor %q", s)
	}
}

// WinFloatPos places a floating window's grid relative to another grid.
// Row and column are fractional cell positions.
type WinFloatPos struct {
	Grid       int
	Win        rpc.Window
	Anchor     Anchor
	AnchorGrid int
	AnchorRow  float64
	AnchorCol  float64
	Focusable  bool
	ZIndex     int
}

func (WinFloatPos) isEvent() {}

// WinHide removes a grid from the layout without destroying it.
type WinHide struct {
	Grid int
}

func (WinHide) isEvent() {}

// WinClose closes the window owning a grid.
type WinClose struct {
	Grid int
}

func (WinClose) isEvent() {}

// WinViewport reports the visible buffer range of a window, for scrollbar
// style decorations. ScrollDelta is how far the top line moved since the
// last report.
type WinViewport struct {
	Grid        int
	Win         rpc.Window
	Topline     int
	Botline     int
	Curline     int
	Curcol      int
	Linecount   int
	ScrollDelta int
}

func (WinViewport) isEvent() {}

// MsgSetPos positions the message grid when its area scrolls the rest of
// the screen.
type MsgSetPos struct {
	Grid     int
	Row      int
	Scrolled bool
	SepChar  string
}

func (MsgSetPos) isEvent() {}

func (d *Decoder) parseWinPos(t tuple) (Event, error) {
	var ev WinPos
	var err error
	if ev.Grid, err = t.int(0, "grid"); err != nil {
		return nil, err
	}
	if ev.Win, err = t.window(1, "win"); err != nil {
		return nil, err
	}
	if ev.StartRow, err = t.int(2, "start_row"); err != nil {
		return nil, err
	}
	if ev.StartCol, err = t.int(3, "start_col"); err != nil {
		return nil, err
	}
	if ev.Width, err = t.int(4, "width"); err != nil {
		return nil, err
	}
	if ev.Height, err = t.int(5, "height"); err != nil {
		return nil, err
	}
	return ev, nil
}

func (d *Decoder) parseWinFloatPos(t tuple) (Event, error) {
	var ev WinFloatPos
	var err error
	if ev.Grid, err = t.int(0, "grid"); err != nil {
		return nil, err
	}
	if ev.Win, err = t.window(1, "win"); err != nil {
		return nil, err
	}
	anchor, err := t.string(2, "anchor")
	if err != nil {
		return nil, err
	}
	if ev.Anchor, err = parseAnchor(anchor); err != nil {
		return nil, err
	}
	if ev.AnchorGrid, err = t.int(3, "anchor_grid"); err != nil {
		return nil, err
	}
	if ev.AnchorRow, err = t.float(4, "anchor_row"); err != nil {
		return nil, err
	}
	if ev.AnchorCol, err = t.float(5, "anchor_col"); err != nil {
		return nil, err
	}
	if ev.Focusable, err = t.bool(6, "focusable"); err != nil {
		return nil, err
	}
	if t.len() > 7 {
		if ev.ZIndex, err = t.int(7, "zindex"); err != nil {
			return nil, err
		}
	}
	return ev, nil
}

func (d *Decoder) parseWinHide(t tuple) (Event, error) {
	grid, err := t.int(0, "grid")
	if err != nil {
		return nil, err
	}
	return WinHide{Grid: grid}, nil
}

func (d *Decoder) parseWinClose(t tuple) (Event, error) {
	grid, err := t.int(0, "grid")
	if err != nil {
		return nil, err
	}
	return WinClose{Grid: grid}, nil
}

func (d *Decoder) parseWinViewport(t tuple) (Event, error) {
	var ev WinViewport
	var err error
	if ev.Grid, err = t.int(0, "grid"); err != nil {
		return nil, err
	}
	if ev.Win, err = t.window(1, "win"); err != nil {
		return nil, err
	}
	if ev.Topline, err = t.int(2, "topline"); err != nil {
		return nil, err
	}
	if ev.Botline, err = t.int(3, "botline"); err != nil {
		return nil, err
	}
	if ev.Curline, err = t.int(4, "curline"); err != nil {
		return nil, err
	}
	if ev.Curcol, err = t.int(5, "curcol"); err != nil {
		return nil, err
	}
	if t.len() > 6 {
		if ev.Linecount, err = t.int(6, "linecount"); err != nil {
			return nil, err
		}
	}
	if t.len() > 7 {
		if ev.ScrollDelta, err = t.int(7, "scroll_delta"); err != nil {
			return nil, err
		}
	}
	return ev, nil
}

func (d *Decoder) parseMsgSetPos(t tuple) (Event, error) {
	var ev MsgSetPos
	var err error
	if ev.Grid, err = t.int(0, "grid"); err != nil {
		return nil, err
	}
	if ev.Row, err = t.int(1, "row"); err != nil {
		return nil, err
	}
	if ev.Scrolled, err = t.bool(2, "scrolled"); err != nil {
		return nil, err
	}
	if ev.SepChar, err = t.string(3, "sep_char"); err != nil {
		return nil, err
	}
	return ev, nil
}
