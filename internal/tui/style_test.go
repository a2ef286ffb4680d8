package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/illfygli/neophyte/internal/event"
)

func rgbp(v uint32) *event.RGB {
	c := event.RGB(v)
	return &c
}

func intp(n int) *int { return &n }

var testDefaults = event.DefaultColorsSet{FG: 0xffffff, BG: 0x101010, Special: 0xff00ff}

func TestStyleForDefaults(t *testing.T) {
	style := styleFor(event.Attributes{}, testDefaults)
	fg, bg, attrs := style.Decompose()
	if fg != tcell.NewHexColor(0xffffff) {
		t.Errorf("fg = %v", fg)
	}
	if bg != tcell.NewHexColor(0x101010) {
		t.Errorf("bg = %v", bg)
	}
	if attrs != tcell.AttrNone {
		t.Errorf("attrs = %v, want none", attrs)
	}
}

func TestStyleForOverridesAndFlags(t *testing.T) {
	attr := event.Attributes{
		Foreground: rgbp(0xff0000),
		Background: rgbp(0x00ff00),
		Bold:       true,
		Italic:     true,
	}
	style := styleFor(attr, testDefaults)
	fg, bg, attrs := style.Decompose()
	if fg != tcell.NewHexColor(0xff0000) || bg != tcell.NewHexColor(0x00ff00) {
		t.Errorf("colors = %v / %v", fg, bg)
	}
	if attrs&tcell.AttrBold == 0 || attrs&tcell.AttrItalic == 0 {
		t.Errorf("attrs = %v, want bold italic", attrs)
	}
}

func TestStyleForReverseSwapsColors(t *testing.T) {
	style := styleFor(event.Attributes{Reverse: true}, testDefaults)
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewHexColor(0x101010) || bg != tcell.NewHexColor(0xffffff) {
		t.Errorf("reverse gave fg %v bg %v", fg, bg)
	}
}

func TestBlendMixesTowardBackground(t *testing.T) {
	tests := []struct {
		fg, bg event.RGB
		pct    int
		want   event.RGB
	}{
		{0xffffff, 0x000000, 0, 0xffffff},
		{0xffffff, 0x000000, 100, 0x000000},
		{0xffffff, 0x000000, 50, 0x808080},
		{0x000000, 0xff0000, 50, 0x800000},
	}
	for _, tt := range tests {
		if got := blend(tt.fg, tt.bg, tt.pct); got != tt.want {
			t.Errorf("blend(%v, %v, %d) = %v, want %v", tt.fg, tt.bg, tt.pct, got, tt.want)
		}
	}
}

func TestCursorStyleMapping(t *testing.T) {
	tests := []struct {
		shape event.CursorShape
		blink bool
		want  tcell.CursorStyle
	}{
		{event.CursorBlock, false, tcell.CursorStyleSteadyBlock},
		{event.CursorBlock, true, tcell.CursorStyleBlinkingBlock},
		{event.CursorHorizontal, false, tcell.CursorStyleSteadyUnderline},
		{event.CursorHorizontal, true, tcell.CursorStyleBlinkingUnderline},
		{event.CursorVertical, false, tcell.CursorStyleSteadyBar},
		{event.CursorVertical, true, tcell.CursorStyleBlinkingBar},
	}
	for _, tt := range tests {
		if got := cursorStyle(tt.shape, tt.blink); got != tt.want {
			t.Errorf("cursorStyle(%v, %v) = %v, want %v", tt.shape, tt.blink, got, tt.want)
		}
	}
}
