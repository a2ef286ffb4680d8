// Package event decodes the editor's UI notification payloads into a closed
// set of typed events. Payloads are positional tuples with optional trailing
// fields; map-shaped sub-values tolerate unknown keys so newer editors keep
// working, while unknown enumerated values fail the event that carries them.
package event

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Event is one decoded editor notification. The set is closed; consumers
// type-switch on the concrete types.
type Event interface {
	isEvent()
}

// Standard errors returned by the decoder.
var (
	// ErrUnknownEvent indicates an event name absent from the registry.
	ErrUnknownEvent = errors.New("unknown event name")
)

// DecodeError reports a single event tuple that could not be decoded. It
// names the event and, through the wrapped error, the field at fault.
type DecodeError struct {
	Event string
	Err   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Event, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error { return e.Err }

type parseFunc func(*Decoder, tuple) (Event, error)

var parsers = map[string]parseFunc{
	"set_title":          (*Decoder).parseSetTitle,
	"set_icon":           (*Decoder).parseSetIcon,
	"mode_info_set":      (*Decoder).parseModeInfoSet,
	"option_set":         (*Decoder).parseOptionSet,
	"mode_change":        (*Decoder).parseModeChange,
	"busy_start":         (*Decoder).parseBusyStart,
	"busy_stop":          (*Decoder).parseBusyStop,
	"mouse_on":           (*Decoder).parseMouseOn,
	"mouse_off":          (*Decoder).parseMouseOff,
	"suspend":            (*Decoder).parseSuspend,
	"bell":               (*Decoder).parseBell,
	"visual_bell":        (*Decoder).parseVisualBell,
	"flush":              (*Decoder).parseFlush,
	"grid_resize":        (*Decoder).parseGridResize,
	"default_colors_set": (*Decoder).parseDefaultColorsSet,
	"hl_attr_define":     (*Decoder).parseHlAttrDefine,
	"hl_group_set":       (*Decoder).parseHlGroupSet,
	"grid_line":          (*Decoder).parseGridLine,
	"grid_clear":         (*Decoder).parseGridClear,
	"grid_destroy":       (*Decoder).parseGridDestroy,
	"grid_cursor_goto":   (*Decoder).parseGridCursorGoto,
	"grid_scroll":        (*Decoder).parseGridScroll,
	"win_pos":            (*Decoder).parseWinPos,
	"win_float_pos":      (*Decoder).parseWinFloatPos,
	"win_hide":           (*Decoder).parseWinHide,
	"win_close":          (*Decoder).parseWinClose,
	"win_viewport":       (*Decoder).parseWinViewport,
	"msg_set_pos":        (*Decoder).parseMsgSetPos,
}

// Decoder turns redraw notification payloads into typed events.
type Decoder struct {
	log zerolog.Logger
}

// NewDecoder creates a decoder logging through log.
func NewDecoder(log zerolog.Logger) *Decoder {
	return &Decoder{log: log.With().Str("component", "event").Logger()}
}

// Decode decodes a single named event tuple.
func (d *Decoder) Decode(name string, args []any) (Event, error) {
	parse, ok := parsers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	ev, err := parse(d, tuple{name: name, vals: args})
	if err != nil {
		return nil, &DecodeError{Event: name, Err: err}
	}
	return ev, nil
}

// DecodeBatch splits a redraw notification's params into typed events, in
// order. Each entry is [name, tuple, tuple, ...] and every tuple yields one
// event. A tuple that fails to decode is logged and dropped without
// disturbing its siblings; unknown event names are skipped since the
// protocol grows by addition.
func (d *Decoder) DecodeBatch(params []any) []Event {
	events := make([]Event, 0, len(params))
	for _, raw := range params {
		entry, ok := raw.([]any)
		if !ok || len(entry) == 0 {
			d.log.Warn().Msg("redraw entry is not a named tuple list")
			continue
		}
		name, ok := asString(entry[0])
		if !ok {
			d.log.Warn().Msgf("redraw entry name is %T, want string", entry[0])
			continue
		}
		for _, rawArgs := range entry[1:] {
			args, ok := rawArgs.([]any)
			if !ok {
				d.log.Warn().Str("event", name).Msg("event tuple is not an array")
				continue
			}
			ev, err := d.Decode(name, args)
			if err != nil {
				if errors.Is(err, ErrUnknownEvent) {
					d.log.Debug().Str("event", name).Msg("skipping unknown event")
					break
				}
				d.log.Warn().Err(err).Str("event", name).Msg("dropping undecodable event")
				continue
			}
			events = append(events, ev)
		}
	}
	return events
}
