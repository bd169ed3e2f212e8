package protobuf

import (
	"errors"
	"fmt"
	"math"

	"github.com/pwnedgod/interop/codec"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
)

var (
	marshalOptions   = proto.MarshalOptions{Deterministic: true}
	unmarshalOptions = proto.UnmarshalOptions{
		// The encoder has no depth limit, so the decoder must not have one
		// either.
		RecursionLimit: math.MaxInt32,
	}
)

type protoCodec struct {
}

func NewCodec() codec.Codec {
	return &protoCodec{}
}

func (c protoCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("protobuf: %T does not implement proto.Message", v)
	}
	return marshalOptions.Marshal(m)
}

func (c protoCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("protobuf: %T does not implement proto.Message", v)
	}

	if err := unmarshalOptions.Unmarshal(data, m); err != nil {
		// Every wire-level failure from the protobuf runtime matches proto.Error.
		if errors.Is(err, proto.Error) {
			return codec.Tag(codec.ErrMalformed, err)
		}
		return err
	}
	return nil
}

func (c protoCodec) Wellformed(data []byte) error {
	return Wellformed(data)
}

// Wellformed walks the wire format of data field by field without a schema.
func Wellformed(data []byte) error {
	for len(data) > 0 {
		_, _, n := protowire.ConsumeField(data)
		if n < 0 {
			return codec.Tag(codec.ErrMalformed, protowire.ParseError(n))
		}
		data = data[n:]
	}
	return nil
}
