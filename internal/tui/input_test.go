package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/illfygli/neophyte/internal/nvim"
)

func TestKeyNotation(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		mods tcell.ModMask
		want string
	}{
		{"plain letter", tcell.KeyRune, 'a', 0, "a"},
		{"uppercase letter", tcell.KeyRune, 'X', tcell.ModShift, "X"},
		{"less than", tcell.KeyRune, '<', 0, "<lt>"},
		{"space", tcell.KeyRune, ' ', 0, "<Space>"},
		{"alt letter", tcell.KeyRune, 'x', tcell.ModAlt, "<A-x>"},
		{"alt less than", tcell.KeyRune, '<', tcell.ModAlt, "<A-lt>"},
		{"ctrl space", tcell.KeyCtrlSpace, 0, tcell.ModCtrl, "<C-Space>"},
		{"ctrl letter", tcell.KeyCtrlA, 0x01, tcell.ModCtrl, "<C-a>"},
		{"ctrl w", tcell.KeyCtrlW, 0x17, tcell.ModCtrl, "<C-w>"},
		{"ctrl backslash", tcell.KeyCtrlBackslash, 0, tcell.ModCtrl, "<C-Bslash>"},
		{"enter", tcell.KeyEnter, 0, 0, "<CR>"},
		{"escape", tcell.KeyEscape, 0, 0, "<Esc>"},
		{"tab", tcell.KeyTab, 0, 0, "<Tab>"},
		{"shift tab", tcell.KeyBacktab, 0, 0, "<S-Tab>"},
		{"backspace", tcell.KeyBackspace2, 0, 0, "<BS>"},
		{"delete", tcell.KeyDelete, 0, 0, "<Del>"},
		{"arrow", tcell.KeyUp, 0, 0, "<Up>"},
		{"chorded arrow", tcell.KeyUp, 0, tcell.ModCtrl | tcell.ModShift, "<C-S-Up>"},
		{"function key", tcell.KeyF5, 0, 0, "<F5>"},
		{"alt function key", tcell.KeyF2, 0, tcell.ModAlt, "<A-F2>"},
		{"page down", tcell.KeyPgDn, 0, 0, "<PageDown>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.key, tt.r, tt.mods)
			got, ok := keyNotation(ev)
			if !ok {
				t.Fatalf("keyNotation(%v) not translated", tt.key)
			}
			if got != tt.want {
				t.Errorf("keyNotation = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyNotationIgnoresUnmapped(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyHelp, 0, 0)
	if got, ok := keyNotation(ev); ok {
		t.Errorf("unmapped key translated to %q", got)
	}
}

func TestMouseButtonLifecycle(t *testing.T) {
	var tracker mouseTracker

	steps := []struct {
		name    string
		buttons tcell.ButtonMask
		mods    tcell.ModMask
		button  nvim.Button
		action  nvim.Action
		ok      bool
	}{
		{"press", tcell.Button1, 0, nvim.ButtonLeft, nvim.ActionPress, true},
		{"drag", tcell.Button1, 0, nvim.ButtonLeft, nvim.ActionDrag, true},
		{"release", tcell.ButtonNone, 0, nvim.ButtonLeft, nvim.ActionRelease, true},
		{"idle motion", tcell.ButtonNone, 0, 0, 0, false},
		{"right press", tcell.Button2, 0, nvim.ButtonRight, nvim.ActionPress, true},
		{"right release", tcell.ButtonNone, 0, nvim.ButtonRight, nvim.ActionRelease, true},
		{"middle press", tcell.Button3, 0, nvim.ButtonMiddle, nvim.ActionPress, true},
		{"middle release", tcell.ButtonNone, 0, nvim.ButtonMiddle, nvim.ActionRelease, true},
	}
	for _, tt := range steps {
		ev := tcell.NewEventMouse(0, 0, tt.buttons, tt.mods)
		button, action, _, ok := tracker.translate(ev)
		if ok != tt.ok {
			t.Fatalf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
		}
		if !ok {
			continue
		}
		if button != tt.button || action != tt.action {
			t.Errorf("%s: got (%v, %v), want (%v, %v)", tt.name, button, action, tt.button, tt.action)
		}
	}
}

func TestMouseWheel(t *testing.T) {
	var tracker mouseTracker

	button, action, mods, ok := tracker.translate(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModCtrl))
	if !ok || button != nvim.ButtonWheel || action != nvim.ActionUp {
		t.Errorf("wheel up = (%v, %v, %v)", button, action, ok)
	}
	if mods != nvim.ModCtrl {
		t.Errorf("mods = %v, want ctrl", mods)
	}

	_, action, _, ok = tracker.translate(tcell.NewEventMouse(0, 0, tcell.WheelDown, 0))
	if !ok || action != nvim.ActionDown {
		t.Errorf("wheel down = (%v, %v)", action, ok)
	}
}

func TestInputModifiers(t *testing.T) {
	tests := []struct {
		mods tcell.ModMask
		want nvim.Modifiers
	}{
		{0, 0},
		{tcell.ModCtrl, nvim.ModCtrl},
		{tcell.ModShift | tcell.ModAlt, nvim.ModShift | nvim.ModAlt},
		{tcell.ModMeta, nvim.ModAlt},
	}
	for _, tt := range tests {
		if got := inputModifiers(tt.mods); got != tt.want {
			t.Errorf("inputModifiers(%v) = %v, want %v", tt.mods, got, tt.want)
		}
	}
}
