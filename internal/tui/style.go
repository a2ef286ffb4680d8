package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/illfygli/neophyte/internal/event"
)

// styleFor renders highlight attributes into a tcell style, falling back to
// the default colors for unset channels.
func styleFor(attr event.Attributes, def event.DefaultColorsSet) tcell.Style {
	fg := def.FG
	if attr.Foreground != nil {
		fg = *attr.Foreground
	}
	bg := def.BG
	if attr.Background != nil {
		bg = *attr.Background
	}
	sp := def.Special
	if attr.Special != nil {
		sp = *attr.Special
	}

	if attr.Reverse {
		fg, bg = bg, fg
	}
	if attr.Blend > 0 {
		fg = blend(fg, bg, attr.Blend)
	}

	style := tcell.StyleDefault.
		Foreground(toColor(fg)).
		Background(toColor(bg))

	if attr.Bold {
		style = style.Bold(true)
	}
	if attr.Italic {
		style = style.Italic(true)
	}
	if attr.Strikethrough {
		style = style.StrikeThrough(true)
	}

	switch {
	case attr.Undercurl:
		style = style.Underline(tcell.UnderlineStyleCurly, toColor(sp))
	case attr.Underdouble:
		style = style.Underline(tcell.UnderlineStyleDouble, toColor(sp))
	case attr.Underdotted:
		style = style.Underline(tcell.UnderlineStyleDotted, toColor(sp))
	case attr.Underdashed:
		style = style.Underline(tcell.UnderlineStyleDashed, toColor(sp))
	case attr.Underline:
		style = style.Underline(true)
	}

	return style
}

func toColor(c event.RGB) tcell.Color {
	return tcell.NewHexColor(int32(c))
}

// blend mixes the foreground toward the background, pct 0 keeping the
// foreground and 100 disappearing into the background. The editor uses it
// for translucent floats.
func blend(fg, bg event.RGB, pct int) event.RGB {
	t := min(float64(pct), 100) / 100
	a := toColorful(fg)
	b := toColorful(bg)
	return fromColorful(a.BlendRgb(b, t).Clamped())
}

func toColorful(c event.RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
	}
}

func fromColorful(c colorful.Color) event.RGB {
	r := uint32(c.R*255 + 0.5)
	g := uint32(c.G*255 + 0.5)
	b := uint32(c.B*255 + 0.5)
	return event.RGB(r<<16 | g<<8 | b)
}

// cursorStyle picks the terminal cursor form for the active mode.
func cursorStyle(shape event.CursorShape, blinking bool) tcell.CursorStyle {
	switch shape {
	case event.CursorHorizontal:
		if blinking {
			return tcell.CursorStyleBlinkingUnderline
		}
		return tcell.CursorStyleSteadyUnderline
	case event.CursorVertical:
		if blinking {
			return tcell.CursorStyleBlinkingBar
		}
		return tcell.CursorStyleSteadyBar
	default:
		if blinking {
			return tcell.CursorStyleBlinkingBlock
		}
		return tcell.CursorStyleSteadyBlock
	}
}
