//go:build !interop_nocbor

package interop

import (
	"github.com/pwnedgod/interop/codec/cbor"
)

const (
	// The Interop was constructed using cbor.
	OriginCBOR Origin = 2
)

func init() {
	register(OriginCBOR, midEnd{
		name:             "cbor",
		codec:            cbor.NewCodec(),
		infallibleEncode: true,
	})
}

type cborInterop struct {
	_      struct{} `cbor:",toarray"`
	Repr   []byte
	Origin uint64
}

// FromCBOR creates an Interop by encoding v with cbor.
//
// Encoding into memory with no size limit is not expected to fail, so a
// failure is not returned: FromCBOR panics with a *Fault instead, for
// example when v holds a channel or a function, or is nested deeper than
// the decoder accepts.
func FromCBOR(v any) *Interop {
	// construct panics instead of returning an error for cbor.
	i, _ := construct("FromCBOR", OriginCBOR, v)
	return i
}

// ToCBOR decodes an Interop made with cbor back into a T.
//
// It panics with a *Fault if i was not constructed using cbor.
func ToCBOR[T any](i *Interop) (T, error) {
	var v T
	if err := extract("ToCBOR", i, OriginCBOR, &v); err != nil {
		var zeroValue T
		return zeroValue, err
	}
	return v, nil
}

// MarshalCBOR writes the Interop as a two element array of the encoded bytes
// and the origin discriminant.
func (i Interop) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cborInterop{
		Repr:   i.repr,
		Origin: uint64(i.origin),
	})
}

func (i *Interop) UnmarshalCBOR(data []byte) error {
	var w cborInterop
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}

	origin, err := decodeOrigin(OriginCBOR, w.Origin)
	if err != nil {
		return err
	}

	i.repr = w.Repr
	i.origin = origin
	return nil
}
