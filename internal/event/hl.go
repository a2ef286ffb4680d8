package event

import "fmt"

// RGB is a packed 24-bit color as sent by the editor.
type RGB uint32

func (c RGB) R() uint8 { return uint8(c >> 16) }
func (c RGB) G() uint8 { return uint8(c >> 8) }
func (c RGB) B() uint8 { return uint8(c) }

// String returns the color in #rrggbb form.
func (c RGB) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Attributes describes a highlight's rendition. Color fields are nil when
// the highlight leaves them to the defaults; flag fields default to off.
type Attributes struct {
	Foreground *RGB
	Background *RGB
	Special    *RGB

	Reverse       bool
	Italic        bool
	Bold          bool
	Strikethrough bool
	Underline     bool
	Undercurl     bool
	Underdouble   bool
	Underdotted   bool
	Underdashed   bool
	Altfont       bool

	// Blend is the transparency level 0..100 applied to the background.
	Blend int
}

// HlKind classifies what a highlight id was created for.
type HlKind int

const (
	HlKindUI HlKind = iota
	HlKindSyntax
	HlKindTerminal
)

// String returns the wire name of the kind.
func (k HlKind) String() string {
	switch k {
	case HlKindUI:
		return "ui"
	case HlKindSyntax:
		return "syntax"
	case HlKindTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("hlkind(%d)", int(k))
	}
}

func parseHlKind(s string) (HlKind, error) {
	switch s {
	case "ui":
		return HlKindUI, nil
	case "syntax":
		return HlKindSyntax, nil
	case "terminal":
		return HlKindTerminal, nil
	default:
		return 0, fmt.Errorf("unknown highlight kind %q", s)
	}
}

// HlInfo describes the source of a highlight definition.
type HlInfo struct {
	Kind   HlKind
	UIName string
	HiName string
	ID     int
}

// HlAttrDefine adds or redefines one highlight table entry.
type HlAttrDefine struct {
	ID    int
	RGB   Attributes
	Cterm Attributes
	Info  []HlInfo
}

func (HlAttrDefine) isEvent() {}

// HlGroupSet announces the builtin highlight group's current table id.
type HlGroupSet struct {
	Name string
	ID   int
}

func (HlGroupSet) isEvent() {}

// DefaultColorsSet sets the colors used when a highlight leaves a channel
// unset. Terminal color ids may be absent on the wire and default to zero.
type DefaultColorsSet struct {
	FG      RGB
	BG      RGB
	Special RGB
	CtermFG int
	CtermBG int
}

func (DefaultColorsSet) isEvent() {}

func (d *Decoder) parseHlAttrDefine(t tuple) (Event, error) {
	id, err := t.int(0, "id")
	if err != nil {
		return nil, err
	}
	rgbAttrs, err := t.table(1, "rgb_attrs")
	if err != nil {
		return nil, err
	}
	rgb, err := d.parseAttributes(rgbAttrs)
	if err != nil {
		return nil, fmt.Errorf("rgb_attrs: %w", err)
	}
	ctermAttrs, err := t.table(2, "cterm_attrs")
	if err != nil {
		return nil, err
	}
	cterm, err := d.parseAttributes(ctermAttrs)
	if err != nil {
		return nil, fmt.Errorf("cterm_attrs: %w", err)
	}
	ev := HlAttrDefine{ID: id, RGB: rgb, Cterm: cterm}

	// The info trailer arrives only with ext_hlstate; tolerate its absence.
	if t.len() > 3 {
		rawInfo, err := t.array(3, "info")
		if err != nil {
			return nil, err
		}
		for i, rawEntry := range rawInfo {
			info, err := d.parseHlInfo(rawEntry)
			if err != nil {
				return nil, fmt.Errorf("info[%d]: %w", i, err)
			}
			ev.Info = append(ev.Info, info)
		}
	}
	return ev, nil
}

func (d *Decoder) parseAttributes(m map[string]any) (Attributes, error) {
	var attrs Attributes
	for key, v := range m {
		switch key {
		case "foreground":
			if err := setColor(&attrs.Foreground, key, v); err != nil {
				return attrs, err
			}
		case "background":
			if err := setColor(&attrs.Background, key, v); err != nil {
				return attrs, err
			}
		case "special":
			if err := setColor(&attrs.Special, key, v); err != nil {
				return attrs, err
			}
		case "reverse":
			if err := setFlag(&attrs.Reverse, key, v); err != nil {
				return attrs, err
			}
		case "italic":
			if err := setFlag(&attrs.Italic, key, v); err != nil {
				return attrs, err
			}
		case "bold":
			if err := setFlag(&attrs.Bold, key, v); err != nil {
				return attrs, err
			}
		case "strikethrough":
			if err := setFlag(&attrs.Strikethrough, key, v); err != nil {
				return attrs, err
			}
		case "underline":
			if err := setFlag(&attrs.Underline, key, v); err != nil {
				return attrs, err
			}
		case "undercurl":
			if err := setFlag(&attrs.Undercurl, key, v); err != nil {
				return attrs, err
			}
		case "underdouble":
			if err := setFlag(&attrs.Underdouble, key, v); err != nil {
				return attrs, err
			}
		case "underdotted":
			if err := setFlag(&attrs.Underdotted, key, v); err != nil {
				return attrs, err
			}
		case "underdashed":
			if err := setFlag(&attrs.Underdashed, key, v); err != nil {
				return attrs, err
			}
		case "altfont":
			if err := setFlag(&attrs.Altfont, key, v); err != nil {
				return attrs, err
			}
		case "blend":
			n, ok := asInt(v)
			if !ok {
				return attrs, fmt.Errorf("key %q: got %T, want integer", key, v)
			}
			attrs.Blend = n
		default:
			d.log.Debug().Str("key", key).Msg("ignoring unknown highlight attribute")
		}
	}
	return attrs, nil
}

func setColor(dst **RGB, key string, v any) error {
	n, ok := asInt(v)
	if !ok {
		return fmt.Errorf("key %q: got %T, want color", key, v)
	}
	c := RGB(uint32(n))
	*dst = &c
	return nil
}

func setFlag(dst *bool, key string, v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("key %q: got %T, want bool", key, v)
	}
	*dst = b
	return nil
}

func (d *Decoder) parseHlInfo(raw any) (HlInfo, error) {
	m, err := asTable(raw)
	if err != nil {
		return HlInfo{}, err
	}
	var info HlInfo
	for key, v := range m {
		switch key {
		case "kind":
			s, ok := asString(v)
			if !ok {
				return info, fmt.Errorf("key %q: got %T, want string", key, v)
			}
			kind, err := parseHlKind(s)
			if err != nil {
				return info, err
			}
			info.Kind = kind
		case "ui_name":
			s, ok := asString(v)
			if !ok {
				return info, fmt.Errorf("key %q: got %T, want string", key, v)
			}
			info.UIName = s
		case "hi_name":
			s, ok := asString(v)
			if !ok {
				return info, fmt.Errorf("key %q: got %T, want string", key, v)
			}
			info.HiName = s
		case "id":
			n, ok := asInt(v)
			if !ok {
				return info, fmt.Errorf("key %q: got %T, want integer", key, v)
			}
			info.ID = n
		default:
			d.log.Debug().Str("key", key).Msg("ignoring unknown highlight info key")
		}
	}
	return info, nil
}

func (d *Decoder) parseHlGroupSet(t tuple) (Event, error) {
	name, err := t.string(0, "name")
	if err != nil {
		return nil, err
	}
	id, err := t.int(1, "hl_id")
	if err != nil {
		return nil, err
	}
	return HlGroupSet{Name: name, ID: id}, nil
}

func (d *Decoder) parseDefaultColorsSet(t tuple) (Event, error) {
	fg, err := t.int(0, "rgb_fg")
	if err != nil {
		return nil, err
	}
	bg, err := t.int(1, "rgb_bg")
	if err != nil {
		return nil, err
	}
	sp, err := t.int(2, "rgb_sp")
	if err != nil {
		return nil, err
	}
	ev := DefaultColorsSet{FG: RGB(uint32(fg)), BG: RGB(uint32(bg)), Special: RGB(uint32(sp))}
	if t.len() > 3 {
		if ev.CtermFG, err = t.int(3, "cterm_fg"); err != nil {
			return nil, err
		}
	}
	if t.len() > 4 {
		if ev.CtermBG, err = t.int(4, "cterm_bg"); err != nil {
			return nil, err
		}
	}
	return ev, nil
}
