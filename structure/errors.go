package structure

import (
	"errors"
	"fmt"
)

// Error kinds. Every decode failure matches exactly one of these with errors.Is.
var (
	ErrTruncatedStream    = errors.New("truncated stream")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrOversizedStructure = errors.New("oversized structure")
	ErrInvalidEncoding    = errors.New("invalid encoding")
	ErrCorruptStructure   = errors.New("corrupt structure")
)

// DecodeError records where in the stream decoding stopped.
type DecodeError struct {
	Offset int64  // byte offset of the field that failed
	Field  string // name of the field being read
	Detail string
	Err    error // one of the Err* kinds
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%v reading %s at offset %d", e.Err, e.Field, e.Offset)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
