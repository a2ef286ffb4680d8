package rpc

import (
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// Remote object handles. Neovim encodes buffer, window, and tabpage
// references as msgpack extension values whose payload is a msgpack-encoded
// integer id.
type (
	Buffer  int64
	Window  int64
	Tabpage int64
)

// Extension type ids assigned by the Neovim API metadata.
const (
	extBuffer  int8 = 0
	extWindow  int8 = 1
	extTabpage int8 = 2
)

func init() {
	msgpack.RegisterExtEncoder(extBuffer, Buffer(0), encodeHandle)
	msgpack.RegisterExtDecoder(extBuffer, Buffer(0), decodeHandle)
	msgpack.RegisterExtEncoder(extWindow, Window(0), encodeHandle)
	msgpack.RegisterExtDecoder(extWindow, Window(0), decodeHandle)
	msgpack.RegisterExtEncoder(extTabpage, Tabpage(0), encodeHandle)
	msgpack.RegisterExtDecoder(extTabpage, Tabpage(0), decodeHandle)
}

func encodeHandle(_ *msgpack.Encoder, v reflect.Value) ([]byte, error) {
	return msgpack.Marshal(v.Int())
}

func decodeHandle(d *msgpack.Decoder, v reflect.Value, _ int) error {
	id, err := d.DecodeInt64()
	if err != nil {
		return err
	}
	v.SetInt(id)
	return nil
}
