package event

import "fmt"

// SetTitle carries the text for the window title.
type SetTitle struct {
	Title string
}

func (SetTitle) isEvent() {}

// SetIcon carries the text for the minimized-window icon title.
type SetIcon struct {
	Icon string
}

func (SetIcon) isEvent() {}

// CursorShape is the form the cursor takes in a mode.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorHorizontal
	CursorVertical
)

// String returns the wire name of the shape.
func (s CursorShape) String() string {
	switch s {
	case CursorBlock:
		return "block"
	case CursorHorizontal:
		return "horizontal"
	case CursorVertical:
		return "vertical"
	default:
		return fmt.Sprintf("cursorshape(%d)", int(s))
	}
}

func parseCursorShape(s string) (CursorShape, error) {
	switch s {
	case "block":
		return CursorBlock, nil
	case "horizontal":
		return CursorHorizontal, nil
	case "vertical":
		return CursorVertical, nil
	default:
		return 0, fmt.Errorf("unknown cursor shape %q", s)
	}
}

// ModeInfo describes cursor rendition for one editor mode.
type ModeInfo struct {
	CursorShape    CursorShape
	CellPercentage int
	BlinkWait      int
	BlinkOn        int
	BlinkOff       int
	AttrID         int
	AttrIDLm       int
	ShortName      string
	Name           string
	MouseShape     int
}

// ModeInfoSet replaces the mode table. Index positions match the ModeIdx of
// later ModeChange events.
type ModeInfoSet struct {
	CursorStyleEnabled bool
	Modes              []ModeInfo
}

func (ModeInfoSet) isEvent() {}

// ModeChange selects the active mode.
type ModeChange struct {
	Name string
	Idx  int
}

func (ModeChange) isEvent() {}

// OptionSet reports a UI-relevant option value at startup or on change.
type OptionSet struct {
	Name  string
	Value any
}

func (OptionSet) isEvent() {}

// Busy reports whether the editor wants the cursor hidden while it works.
type Busy struct {
	Active bool
}

func (Busy) isEvent() {}

// Mouse reports whether the editor currently wants mouse events.
type Mouse struct {
	Enabled bool
}

func (Mouse) isEvent() {}

// Suspend asks the frontend to suspend itself (ctrl-z).
type Suspend struct{}

func (Suspend) isEvent() {}

// Bell rings the audible bell.
type Bell struct{}

func (Bell) isEvent() {}

// VisualBell flashes instead of ringing.
type VisualBell struct{}

func (VisualBell) isEvent() {}

// Flush marks the end of a redraw round; the screen state is now consistent
// and may be presented.
type Flush struct{}

func (Flush) isEvent() {}

func (d *Decoder) parseSetTitle(t tuple) (Event, error) {
	title, err := t.string(0, "title")
	if err != nil {
		return nil, err
	}
	return SetTitle{Title: title}, nil
}

func (d *Decoder) parseSetIcon(t tuple) (Event, error) {
	icon, err := t.string(0, "icon")
	if err != nil {
		return nil, err
	}
	return SetIcon{Icon: icon}, nil
}

func (d *Decoder) parseModeInfoSet(t tuple) (Event, error) {
	enabled, err := t.bool(0, "cursor_style_enabled")
	if err != nil {
		return nil, err
	}
	rawModes, err := t.array(1, "mode_infos")
	if err != nil {
		return nil, err
	}
	ev := ModeInfoSet{CursorStyleEnabled: enabled, Modes: make([]ModeInfo, 0, len(rawModes))}
	for i, rawMode := range rawModes {
		mode, err := d.parseModeInfo(rawMode)
		if err != nil {
			return nil, fmt.Errorf("mode_infos[%d]: %w", i, err)
		}
		ev.Modes = append(ev.Modes, mode)
	}
	return ev, nil
}

func (d *Decoder) parseModeInfo(raw any) (ModeInfo, error) {
	m, err := asTable(raw)
	if err != nil {
		return ModeInfo{}, err
	}
	var info ModeInfo
	for key, v := range m {
		switch key {
		case "cursor_shape":
			s, ok := asString(v)
			if !ok {
				return info, fmt.Errorf("key %q: got %T, want string", key, v)
			}
			shape, err := parseCursorShape(s)
			if err != nil {
				return info, err
			}
			info.CursorShape = shape
		case "cell_percentage":
			if err := setInt(&info.CellPercentage, key, v); err != nil {
				return info, err
			}
		case "blinkwait":
			if err := setInt(&info.BlinkWait, key, v); err != nil {
				return info, err
			}
		case "blinkon":
			if err := setInt(&info.BlinkOn, key, v); err != nil {
				return info, err
			}
		case "blinkoff":
			if err := setInt(&info.BlinkOff, key, v); err != nil {
				return info, err
			}
		case "attr_id":
			if err := setInt(&info.AttrID, key, v); err != nil {
				return info, err
			}
		case "attr_id_lm":
			if err := setInt(&info.AttrIDLm, key, v); err != nil {
				return info, err
			}
		case "short_name":
			s, ok := asString(v)
			if !ok {
				return info, fmt.Errorf("key %q: got %T, want string", key, v)
			}
			info.ShortName = s
		case "name":
			s, ok := asString(v)
			if !ok {
				return info, fmt.Errorf("key %q: got %T, want string", key, v)
			}
			info.Name = s
		case "mouse_shape":
			if err := setInt(&info.MouseShape, key, v); err != nil {
				return info, err
			}
		default:
			d.log.Debug().Str("key", key).Msg("ignoring unknown mode info key")
		}
	}
	return info, nil
}

func setInt(dst *int, key string, v any) error {
	n, ok := asInt(v)
	if !ok {
		return fmt.Errorf("key %q: got %T, want integer", key, v)
	}
	*dst = n
	return nil
}

func (d *Decoder) parseModeChange(t tuple) (Event, error) {
	name, err := t.string(0, "mode")
	if err != nil {
		return nil, err
	}
	idx, err := t.int(1, "mode_idx")
	if err != nil {
		return nil, err
	}
	return ModeChange{Name: name, Idx: idx}, nil
}

func (d *Decoder) parseOptionSet(t tuple) (Event, error) {
	name, err := t.string(0, "name")
	if err != nil {
		return nil, err
	}
	value, err := t.at(1, "value")
	if err != nil {
		return nil, err
	}
	return OptionSet{Name: name, Value: value}, nil
}

func (d *Decoder) parseBusyStart(tuple) (Event, error)  { return Busy{Active: true}, nil }
func (d *Decoder) parseBusyStop(tuple) (Event, error)   { return Busy{Active: false}, nil }
func (d *Decoder) parseMouseOn(tuple) (Event, error)    { return Mouse{Enabled: true}, nil }
func (d *Decoder) parseMouseOff(tuple) (Event, error)   { return Mouse{Enabled: false}, nil }
func (d *Decoder) parseSuspend(tuple) (Event, error)    { return Suspend{}, nil }
func (d *Decoder) parseBell(tuple) (Event, error)       { return Bell{}, nil }
func (d *Decoder) parseVisualBell(tuple) (Event, error) { return VisualBell{}, nil }
func (d *Decoder) parseFlush(tuple) (Event, error)      { return Flush{}, nil }
