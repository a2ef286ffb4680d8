package rpc

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec reads and writes msgpack-rpc envelopes over a byte stream pair.
// Reads and writes are independent; each side must be driven by a single
// goroutine. Every write is flushed whole so messages never interleave.
type Codec struct {
	dec *msgpack.Decoder
	buf *bufio.Writer
	enc *msgpack.Encoder
}

// NewCodec wraps the subprocess's output stream r and input stream w.
func NewCodec(r io.Reader, w io.Writer) *Codec {
	buf := bufio.NewWriter(w)
	return &Codec{
		dec: msgpack.NewDecoder(bufio.NewReader(r)),
		buf: buf,
		enc: msgpack.NewEncoder(buf),
	}
}

// ReadMessage decodes the next envelope from the stream.
//
// io.EOF is returned only for a stream that ends cleanly between messages
// and signals expected shutdown. A stream cut mid-message yields an error
// wrapping io.ErrUnexpectedEOF, and anything that is not a msgpack-rpc
// envelope yields an error wrapping ErrMalformed; both are fatal to the
// stream.
func (c *Codec) ReadMessage() (Message, error) {
	arity, err := c.dec.DecodeArrayLen()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: envelope: %v", ErrMalformed, err)
	}
	msg, err := c.decodeBody(arity)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("stream cut mid-message: %w", io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	return msg, nil
}

func (c *Codec) decodeBody(arity int) (Message, error) {
	if arity < 3 || arity > 4 {
		return nil, fmt.Errorf("%w: envelope arity %d", ErrMalformed, arity)
	}
	tag, err := c.dec.DecodeInt64()
	if err != nil {
		return nil, c.malformed(err, "kind tag")
	}
	switch Kind(tag) {
	case KindRequest:
		if arity != 4 {
			return nil, fmt.Errorf("%w: request arity %d", ErrMalformed, arity)
		}
		msgid, err := c.dec.DecodeUint64()
		if err != nil {
			return nil, c.malformed(err, "request msgid")
		}
		method, err := c.dec.DecodeString()
		if err != nil {
			return nil, c.malformed(err, "request method")
		}
		params, err := c.decodeParams("request params")
		if err != nil {
			return nil, err
		}
		return Request{MsgID: msgid, Method: method, Params: params}, nil

	case KindResponse:
		if arity != 4 {
			return nil, fmt.Errorf("%w: response arity %d", ErrMalformed, arity)
		}
		msgid, err := c.dec.DecodeUint64()
		if err != nil {
			return nil, c.malformed(err, "response msgid")
		}
		errv, err := c.dec.DecodeInterfaceLoose()
		if err != nil {
			return nil, c.malformed(err, "response error")
		}
		result, err := c.dec.DecodeInterfaceLoose()
		if err != nil {
			return nil, c.malformed(err, "response result")
		}
		return Response{MsgID: msgid, Error: errv, Result: result}, nil

	case KindNotification:
		if arity != 3 {
			return nil, fmt.Errorf("%w: notification arity %d", ErrMalformed, arity)
		}
		method, err := c.dec.DecodeString()
		if err != nil {
			return nil, c.malformed(err, "notification method")
		}
		params, err := c.decodeParams("notification params")
		if err != nil {
			return nil, err
		}
		return Notification{Method: method, Params: params}, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind tag %d", ErrMalformed, tag)
	}
}

func (c *Codec) decodeParams(what string) ([]any, error) {
	v, err := c.dec.DecodeInterfaceLoose()
	if err != nil {
		return nil, c.malformed(err, what)
	}
	params, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: got %T, want array", ErrMalformed, what, v)
	}
	return params, nil
}

// malformed tags a field-level decode failure, letting stream-end errors
// through untouched so ReadMessage can classify truncation.
func (c *Codec) malformed(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrMalformed, what, err)
}

// WriteMessage encodes one envelope and flushes it to the stream.
func (c *Codec) WriteMessage(m Message) error {
	var err error
	switch m := m.(type) {
	case Request:
		err = c.enc.Encode([]any{int(KindRequest), m.MsgID, m.Method, emptyIfNil(m.Params)})
	case Response:
		err = c.enc.Encode([]any{int(KindResponse), m.MsgID, m.Error, m.Result})
	case Notification:
		err = c.enc.Encode([]any{int(KindNotification), m.Method, emptyIfNil(m.Params)})
	default:
		return fmt.Errorf("%w: cannot encode %T", ErrMalformed, m)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.Kind(), err)
	}
	if err := c.buf.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", m.Kind(), err)
	}
	return nil
}

// emptyIfNil keeps params an array on the wire; nil would encode as msgpack
// nil, which the protocol forbids for the params position.
func emptyIfNil(params []any) []any {
	if params == nil {
		return []any{}
	}
	return params
}
