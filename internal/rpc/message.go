// Package rpc implements the msgpack-rpc wire protocol spoken with an
// embedded Neovim over its standard streams: the three fixed-arity message
// envelopes, self-describing parameter values, and the extension types
// Neovim uses for remote object handles.
package rpc

import "fmt"

// Kind is the envelope tag carried as the first element of every message.
type Kind int

const (
	KindRequest      Kind = 0
	KindResponse     Kind = 1
	KindNotification Kind = 2
)

// String returns the protocol name of the message kind.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindResponse:
		return "response"
	case KindNotification:
		return "notification"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Message is one decoded msgpack-rpc envelope: a Request, Response, or
// Notification.
type Message interface {
	Kind() Kind
}

// Request asks the peer to invoke a method. MsgID is unique among in-flight
// requests for the lifetime of the session and correlates the eventual
// Response.
type Request struct {
	MsgID  uint64
	Method string
	Params []any
}

// Kind implements Message.
func (Request) Kind() Kind { return KindRequest }

// Response answers the request bearing the same MsgID. Exactly one of Error
// and Result is meaningful; Error is non-nil when the call failed.
type Response struct {
	MsgID  uint64
	Error  any
	Result any
}

// Kind implements Message.
func (Response) Kind() Kind { return KindResponse }

// Err converts the wire error payload, if any, into a Go error. Neovim
// reports call failures as [type, message] pairs; any other non-nil shape is
// preserved verbatim in the message.
func (r Response) Err() error {
	if r.Error == nil {
		return nil
	}
	if pair, ok := r.Error.([]any); ok && len(pair) == 2 {
		if msg, ok := pair[1].(string); ok {
			return &RemoteError{Code: looseInt(pair[0]), Message: msg}
		}
	}
	return &RemoteError{Message: fmt.Sprint(r.Error)}
}

// Notification invokes a method on the peer with no reply expected.
type Notification struct {
	Method string
	Params []any
}

// Kind implements Message.
func (Notification) Kind() Kind { return KindNotification }

// looseInt widens any integer the decoder may produce. Non-integers map to
// zero.
func looseInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case uint64:
		return int64(n)
	case int:
		return int64(n)
	default:
		return 0
	}
}
