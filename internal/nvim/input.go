package nvim

import "strings"

// Button identifies a mouse button for InputMouse.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonWheel
	ButtonMove
)

// String returns the wire name of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonWheel:
		return "wheel"
	case ButtonMove:
		return "move"
	default:
		return "left"
	}
}

// Action is what the button did. Press, Drag, and Release apply to buttons;
// the directions apply to the wheel.
type Action int

const (
	ActionPress Action = iota
	ActionDrag
	ActionRelease
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
)

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionDrag:
		return "drag"
	case ActionRelease:
		return "release"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	default:
		return "press"
	}
}

// Modifiers is the set of modifier keys held during an input.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
)

// String encodes the set in the editor's modifier notation.
func (m Modifiers) String() string {
	var sb strings.Builder
	if m&ModCtrl != 0 {
		sb.WriteByte('C')
	}
	if m&ModShift != 0 {
		sb.WriteByte('S')
	}
	if m&ModAlt != 0 {
		sb.WriteByte('A')
	}
	return sb.String()
}
