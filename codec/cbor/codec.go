package cbor

import (
	"errors"
	"io"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/pwnedgod/interop/codec"
)

// encMode uses Core Deterministic Encoding: sorted map keys, smallest
// integer encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode runs with every size limit raised to the library maximum, which
// is as close to unbounded as the decoder allows.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec/cbor: encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxNestedLevels:  65535,
		MaxArrayElements: math.MaxInt32,
		MaxMapPairs:      math.MaxInt32,
		// Generic targets get map[string]any so decoded documents can be
		// handed straight to encoding/json.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec/cbor: decoder initialization failed: " + err.Error())
	}
}

type cborCodec struct {
}

func NewCodec() codec.Codec {
	return &cborCodec{}
}

// Marshal also rejects values nested deeper than the decoder accepts, so that
// everything it produces can be decoded again.
func (c cborCodec) Marshal(v any) ([]byte, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	if err := decMode.Wellformed(data); err != nil {
		return nil, classify(err)
	}
	return data, nil
}

func (c cborCodec) Unmarshal(data []byte, v any) error {
	return Unmarshal(data, v)
}

func (c cborCodec) Wellformed(data []byte) error {
	return classify(decMode.Wellformed(data))
}

// Marshal encodes v using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes exactly one CBOR data item from data into v.
func Unmarshal(data []byte, v any) error {
	return classify(decMode.Unmarshal(data, v))
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		syntaxErr   *cbor.SyntaxError
		semanticErr *cbor.SemanticError
		extraErr    *cbor.ExtraneousDataError
		nestedErr   *cbor.MaxNestedLevelError
		arrayErr    *cbor.MaxArrayElementsError
		mapErr      *cbor.MaxMapPairsError
	)

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return codec.Tag(codec.ErrMalformed, err)
	case errors.As(err, &syntaxErr), errors.As(err, &semanticErr):
		return codec.Tag(codec.ErrMalformed, err)
	case errors.As(err, &extraErr):
		return codec.Tag(codec.ErrTrailingData, err)
	case errors.As(err, &nestedErr), errors.As(err, &arrayErr), errors.As(err, &mapErr):
		return codec.Tag(codec.ErrLimit, err)
	}

	return err
}
