package rpc

import (
	"errors"
	"fmt"
)

// Standard errors returned by the codec.
var (
	// ErrMalformed indicates bytes that cannot be a msgpack-rpc envelope:
	// a non-array at message position, a wrong arity, an unknown kind tag,
	// or a mistyped envelope field. The stream is unusable afterwards.
	ErrMalformed = errors.New("malformed rpc message")
)

// RemoteError is a call failure reported by the peer in a Response.
type RemoteError struct {
	Code    int64
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
}
