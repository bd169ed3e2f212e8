package interop

import (
	"errors"
	"fmt"

	"github.com/pwnedgod/interop/codec"
	"github.com/pwnedgod/interop/codec/msgpack"
)

type (
	midEnd struct {
		name  string
		codec codec.Codec

		// Encoding into memory with no size limit cannot fail for this
		// mid-end, so an encode error is a fault instead of an Error.
		infallibleEncode bool
	}

	target uint8
)

const (
	memoryTarget target = iota
	streamTarget
)

// Mid-ends other than msgpack add themselves from init in their own files,
// which build tags can leave out.
var midEnds = map[Origin]midEnd{
	OriginMsgpack: {name: "msgpack", codec: msgpack.NewCodec()},
}

func register(o Origin, m midEnd) {
	if _, ok := midEnds[o]; ok {
		panic("interop: origin registered twice: " + m.name)
	}
	midEnds[o] = m
}

// New creates an Interop by encoding v with the mid-end named by o.
//
// It panics with a *Fault if o is not compiled into this build, or if a
// mid-end whose in-memory encoding cannot fail reports an error.
func New(o Origin, v any) (*Interop, error) {
	return construct("New", o, v)
}

// Extract decodes i into dst, which must be a pointer, through the mid-end
// named by o.
//
// It panics with a *Fault if i was not constructed using o.
func Extract(i *Interop, o Origin, dst any) error {
	return extract("Extract", i, o, dst)
}

// Check reports whether i holds exactly one well-formed value of its origin,
// without decoding it into a destination. A failure is a KindInvalidEncoding
// Error.
func (i *Interop) Check() error {
	if i == nil {
		panic(newFault("Check", "called on nil Interop", nil))
	}

	m := lookup("Check", i.origin)
	c, ok := m.codec.(codec.Checker)
	if !ok {
		return nil
	}
	if err := c.Wellformed(i.repr); err != nil {
		return mapError("Check", i.origin, err, memoryTarget)
	}
	return nil
}

func construct(op string, o Origin, v any) (*Interop, error) {
	m := lookup(op, o)

	repr, err := m.codec.Marshal(v)
	if err != nil {
		if m.infallibleEncode {
			panic(newFault(op, fmt.Sprintf("failed to encode using %s into memory with no size limit", o), err))
		}
		return nil, mapError(op, o, err, memoryTarget)
	}

	return &Interop{
		repr:   repr,
		origin: o,
	}, nil
}

func extract(op string, i *Interop, o Origin, dst any) error {
	if i == nil {
		panic(newFault(op, "called on nil Interop", nil))
	}
	if i.origin != o {
		panic(newFault(op, fmt.Sprintf("called on value constructed using %s, expected %s", i.origin, o), nil))
	}

	m := lookup(op, o)
	if err := m.codec.Unmarshal(i.repr, dst); err != nil {
		return mapError(op, o, err, memoryTarget)
	}

	return nil
}

func lookup(op string, o Origin) midEnd {
	m, ok := midEnds[o]
	if !ok {
		panic(newFault(op, fmt.Sprintf("called with %s, which is not compiled into this build", o), nil))
	}
	return m
}

// mapError folds a mid-end error into an *Error. Outcomes that the fixed
// unbounded configuration rules out, and I/O failures against memory, panic.
func mapError(op string, o Origin, err error, t target) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Origin != 0 {
			return e
		}
		mapped := *e
		mapped.Origin = o
		return &mapped
	}

	switch {
	case errors.Is(err, codec.ErrLimit):
		panic(newFault(op, fmt.Sprintf("hit a %s size limit with no limit configured", o), err))
	case errors.Is(err, codec.ErrIO):
		if t == memoryTarget {
			panic(newFault(op, fmt.Sprintf("hit a %s i/o failure against an in-memory target", o), err))
		}
		return &Error{Kind: KindIO, Origin: o, Err: err}
	case errors.Is(err, codec.ErrMalformed), errors.Is(err, codec.ErrTrailingData):
		return &Error{Kind: KindInvalidEncoding, Origin: o, Err: err}
	}

	return &Error{Kind: KindSerde, Origin: o, Err: err}
}
