package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/illfygli/neophyte/internal/nvim"
)

// specialKeys maps tcell key codes to the editor's angle-bracket key names.
// tcell aliases some control codes to these (enter is ctrl-m and so on);
// the named form wins.
var specialKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "CR",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Tab",
	tcell.KeyBackspace:  "BS",
	tcell.KeyBackspace2: "BS",
	tcell.KeyEscape:     "Esc",
	tcell.KeyDelete:     "Del",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// keyNotation translates a terminal key event into the editor's input
// notation, like "a", "<lt>", "<C-w>", or "<C-S-F5>". It reports false for
// keys that have no editor equivalent.
func keyNotation(ev *tcell.EventKey) (string, bool) {
	mods := ev.Modifiers()
	key := ev.Key()

	if name, ok := specialKeys[key]; ok {
		// Backtab is terminal speak for shift-tab.
		if key == tcell.KeyBacktab {
			mods |= tcell.ModShift
		}
		return wrap(name, mods), true
	}

	switch key {
	case tcell.KeyRune:
		return runeNotation(ev.Rune(), mods)
	case tcell.KeyCtrlSpace:
		return wrap("Space", mods|tcell.ModCtrl), true
	case tcell.KeyCtrlBackslash:
		return wrap("Bslash", mods|tcell.ModCtrl), true
	case tcell.KeyCtrlRightSq:
		return wrap("]", mods|tcell.ModCtrl), true
	case tcell.KeyCtrlCarat:
		return wrap("^", mods|tcell.ModCtrl), true
	case tcell.KeyCtrlUnderscore:
		return wrap("_", mods|tcell.ModCtrl), true
	}

	// The remaining control-letter codes fold back to <C-letter>.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		letter := string(rune('a' + key - tcell.KeyCtrlA))
		return wrap(letter, mods|tcell.ModCtrl), true
	}

	return "", false
}

func runeNotation(r rune, mods tcell.ModMask) (string, bool) {
	if r == 0 {
		return "", false
	}

	name := string(r)
	switch r {
	case ' ':
		return wrap("Space", mods), true
	case '<':
		if mods&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
			return "<lt>", true
		}
		name = "lt"
	}

	// Shift is already baked into the rune itself.
	mods &^= tcell.ModShift
	if mods == 0 {
		return name, true
	}
	return wrap(name, mods), true
}

// wrap builds the bracketed form with modifier prefixes, e.g. <C-S-Up>.
func wrap(name string, mods tcell.ModMask) string {
	var sb strings.Builder
	sb.WriteByte('<')
	if mods&tcell.ModCtrl != 0 {
		sb.WriteString("C-")
	}
	if mods&tcell.ModShift != 0 {
		sb.WriteString("S-")
	}
	if mods&tcell.ModAlt != 0 {
		sb.WriteString("A-")
	}
	if mods&tcell.ModMeta != 0 {
		sb.WriteString("D-")
	}
	sb.WriteString(name)
	sb.WriteByte('>')
	return sb.String()
}

func inputModifiers(mods tcell.ModMask) nvim.Modifiers {
	var m nvim.Modifiers
	if mods&tcell.ModCtrl != 0 {
		m |= nvim.ModCtrl
	}
	if mods&tcell.ModShift != 0 {
		m |= nvim.ModShift
	}
	if mods&(tcell.ModAlt|tcell.ModMeta) != 0 {
		m |= nvim.ModAlt
	}
	return m
}

// mouseTracker turns tcell's level-triggered button reports into the
// editor's press/drag/release vocabulary.
type mouseTracker struct {
	held tcell.ButtonMask
}

const primaryButtons = tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle

// translate reports what changed since the previous mouse event. Motion
// with no button held is not reported.
func (m *mouseTracker) translate(ev *tcell.EventMouse) (nvim.Button, nvim.Action, nvim.Modifiers, bool) {
	mods := inputModifiers(ev.Modifiers())

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return nvim.ButtonWheel, nvim.ActionUp, mods, true
	case ev.Buttons()&tcell.WheelDown != 0:
		return nvim.ButtonWheel, nvim.ActionDown, mods, true
	case ev.Buttons()&tcell.WheelLeft != 0:
		return nvim.ButtonWheel, nvim.ActionLeft, mods, true
	case ev.Buttons()&tcell.WheelRight != 0:
		return nvim.ButtonWheel, nvim.ActionRight, mods, true
	}

	buttons := ev.Buttons() & primaryButtons
	pressed := buttons &^ m.held
	released := m.held &^ buttons
	m.held = buttons

	switch {
	case pressed != 0:
		return buttonName(pressed), nvim.ActionPress, mods, true
	case released != 0:
		return buttonName(released), nvim.ActionRelease, mods, true
	case buttons != 0:
		return buttonName(buttons), nvim.ActionDrag, mods, true
	}
	return 0, 0, 0, false
}

func buttonName(b tcell.ButtonMask) nvim.Button {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return nvim.ButtonLeft
	case b&tcell.ButtonMiddle != 0:
		return nvim.ButtonMiddle
	default:
		return nvim.ButtonRight
	}
}
