package event

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func rgbp(c RGB) *RGB { return &c }

func TestParseHlAttrDefine(t *testing.T) {
	d := newTestDecoder()
	ev, err := d.Decode("hl_attr_define", []any{
		int64(5),
		map[string]any{
			"foreground": int64(0xff0000),
			"background": int64(0x00ff00),
			"special":    int64(0x0000ff),
			"bold":       true,
			"undercurl":  true,
			"blend":      int64(30),
		},
		map[string]any{"reverse": true},
		[]any{
			map[string]any{"kind": "syntax", "hi_name": "String", "id": int64(5)},
		},
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := HlAttrDefine{
		ID: 5,
		RGB: Attributes{
			Foreground: rgbp(RGB(0xff0000)),
			Background: rgbp(RGB(0x00ff00)),
			Special:    rgbp(RGB(0x0000ff)),
			Bold:       true,
			Undercurl:  true,
			Blend:      30,
		},
		Cterm: Attributes{Reverse: true},
		Info:  []HlInfo{{Kind: HlKindSyntax, HiName: "String", ID: 5}},
	}
	if !reflect.DeepEqual(ev, want) {
		t.Errorf("event = %#v, want %#v", ev, want)
	}
}

func TestParseHlAttrDefineUnknownKeyTolerated(t *testing.T) {
	var buf bytes.Buffer
	d := NewDecoder(zerolog.New(&buf))
	ev, err := d.Decode("hl_attr_define", []any{
		int64(1),
		map[string]any{"bold": true, "some_future_attr": int64(9)},
		map[string]any{},
		[]any{},
	})
	if err != nil {
		t.Fatalf("unknown attribute key must not fail the event: %v", err)
	}
	attr, ok := ev.(HlAttrDefine)
	if !ok || !attr.RGB.Bold {
		t.Errorf("known keys around the unknown one were lost: %#v", ev)
	}
	if !strings.Contains(buf.String(), "some_future_attr") {
		t.Error("unknown key was not logged")
	}
}

func TestParseHlAttrDefineUnknownKindFails(t *testing.T) {
	d := newTestDecoder()
	_, err := d.Decode("hl_attr_define", []any{
		int64(1),
		map[string]any{},
		map[string]any{},
		[]any{map[string]any{"kind": "cosmic"}},
	})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), "cosmic") {
		t.Errorf("error %q does not name the offending kind", err)
	}
}

func TestDecodeBatchUnknownKindDropsOnlyThatEvent(t *testing.T) {
	d := newTestDecoder()
	events := d.DecodeBatch([]any{
		[]any{"hl_attr_define",
			[]any{int64(1), map[string]any{"bold": true}, map[string]any{}, []any{}},
			[]any{int64(2), map[string]any{}, map[string]any{}, []any{map[string]any{"kind": "cosmic"}}},
			[]any{int64(3), map[string]any{"italic": true}, map[string]any{}, []any{}},
		},
	})
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 survivors", len(events))
	}
	first, second := events[0].(HlAttrDefine), events[1].(HlAttrDefine)
	if first.ID != 1 || second.ID != 3 {
		t.Errorf("surviving ids = %d, %d; want 1, 3", first.ID, second.ID)
	}
}

func TestParseDefaultColorsSet(t *testing.T) {
	d := newTestDecoder()
	ev, err := d.Decode("default_colors_set", []any{
		int64(0xffffff), int64(0x101010), int64(0xff00ff), int64(7), int64(0),
	})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := DefaultColorsSet{FG: 0xffffff, BG: 0x101010, Special: 0xff00ff, CtermFG: 7}
	if ev != want {
		t.Errorf("event = %#v, want %#v", ev, want)
	}

	ev, err = d.Decode("default_colors_set", []any{int64(1), int64(2), int64(3)})
	if err != nil {
		t.Fatalf("Decode without cterm trailers: %v", err)
	}
	if want := (DefaultColorsSet{FG: 1, BG: 2, Special: 3}); ev != want {
		t.Errorf("event = %#v, want %#v", ev, want)
	}
}

func TestParseHlGroupSet(t *testing.T) {
	d := newTestDecoder()
	ev, err := d.Decode("hl_group_set", []any{"Normal", int64(12)})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := (HlGroupSet{Name: "Normal", ID: 12}); ev != want {
		t.Errorf("event = %#v, want %#v", ev, want)
	}
}

func TestRGBChannels(t *testing.T) {
	c := RGB(0x123456)
	if c.R() != 0x12 || c.G() != 0x34 || c.B() != 0x56 {
		t.Errorf("channels = %02x %02x %02x, want 12 34 56", c.R(), c.G(), c.B())
	}
	if c.String() != "#123456" {
		t.Errorf("String() = %q, want #123456", c.String())
	}
}
