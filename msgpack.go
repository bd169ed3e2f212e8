package interop

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// FromMsgpack creates an Interop by encoding v with msgpack.
//
// Errors returned by custom encoders of v are kept when they are an *Error,
// other failures are reported as KindSerde.
func FromMsgpack(v any) (*Interop, error) {
	return construct("FromMsgpack", OriginMsgpack, v)
}

// ToMsgpack decodes an Interop made with msgpack back into a T.
//
// It panics with a *Fault if i was not constructed using msgpack.
func ToMsgpack[T any](i *Interop) (T, error) {
	var v T
	if err := extract("ToMsgpack", i, OriginMsgpack, &v); err != nil {
		var zeroValue T
		return zeroValue, err
	}
	return v, nil
}

// EncodeMsgpack writes the Interop as a two element array of the encoded
// bytes and the origin discriminant.
func (i Interop) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeBytes(i.repr); err != nil {
		return err
	}
	return enc.EncodeUint(uint64(i.origin))
}

func (i *Interop) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return &Error{
			Kind:   KindInvalidEncoding,
			Origin: OriginMsgpack,
			Err:    fmt.Errorf("interop: wrapper has %d fields, want 2", n),
		}
	}

	repr, err := decodeRepr(dec)
	if err != nil {
		return err
	}

	raw, err := dec.DecodeUint64()
	if err != nil {
		return err
	}

	origin, err := decodeOrigin(OriginMsgpack, raw)
	if err != nil {
		return err
	}

	i.repr = repr
	i.origin = origin
	return nil
}

// reprChunk bounds how far an allocation can run ahead of the bytes actually
// read when a bin header claims more data than the source holds.
const reprChunk = 64 << 10

func decodeRepr(dec *msgpack.Decoder) ([]byte, error) {
	n, err := dec.DecodeBytesLen()
	if err != nil || n <= 0 {
		return nil, err
	}

	repr := make([]byte, 0, min(n, reprChunk))
	for len(repr) < n {
		chunk := min(n-len(repr), reprChunk)
		repr = append(repr, make([]byte, chunk)...)
		if err := dec.ReadFull(repr[len(repr)-chunk:]); err != nil {
			return nil, err
		}
	}
	return repr, nil
}

// decodeOrigin validates an origin discriminant read by the by mid-end.
func decodeOrigin(by Origin, raw uint64) (Origin, error) {
	if raw > math.MaxUint8 || !Origin(raw).Supported() {
		return 0, &Error{
			Kind:   KindInvalidEncoding,
			Origin: by,
			Err:    fmt.Errorf("%w: %d", ErrUnsupportedOrigin, raw),
		}
	}
	return Origin(raw), nil
}
