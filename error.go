package interop

import (
	"errors"
	"fmt"
)

// Kind classifies an Error. A Kind also matches errors of that kind through
// errors.Is:
//
//	if errors.Is(err, interop.KindInvalidEncoding) { ... }
type Kind uint8

const (
	// A message raised by the value being encoded or decoded.
	KindCustom Kind = iota + 1
	// An error from the general serialization layer, such as an unsupported
	// type or a destination that does not fit the encoded value.
	KindSerde
	// The encoded bytes are malformed, truncated, or followed by extra data.
	KindInvalidEncoding
	// A reader or writer failed. Only Reader and Writer report this kind.
	KindIO
)

var ErrUnsupportedOrigin = errors.New("interop: unsupported origin")

type Error struct {
	Kind Kind

	// Origin is the mid-end that reported the error. For KindInvalidEncoding
	// it tells which decoder rejected the bytes.
	Origin Origin

	// Msg is set for KindCustom.
	Msg string

	// Err is the error reported by the underlying library.
	Err error
}

// Custom returns an error carrying msg verbatim. Encoders and decoders of
// user types return it to report value-specific failures.
func Custom(msg string) *Error {
	return &Error{Kind: KindCustom, Msg: msg}
}

func Customf(format string, args ...any) *Error {
	return Custom(fmt.Sprintf(format, args...))
}

func (k Kind) String() string {
	switch k {
	case KindCustom:
		return "custom"
	case KindSerde:
		return "serde"
	case KindInvalidEncoding:
		return "invalid encoding"
	case KindIO:
		return "i/o failure"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) Error() string {
	return "interop: " + k.String()
}

func (e *Error) Error() string {
	prefix := "interop: "
	if e.Origin != 0 {
		prefix += e.Origin.String() + ": "
	}

	switch e.Kind {
	case KindCustom:
		return prefix + e.Msg
	case KindSerde:
		if e.Err != nil {
			return prefix + e.Err.Error()
		}
	}

	if e.Err != nil {
		return fmt.Sprintf("%s%s (%s)", prefix, e.Kind, e.Err.Error())
	}
	return prefix + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}
