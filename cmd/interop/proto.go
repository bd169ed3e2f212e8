//go:build !interop_noproto

package main

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/pwnedgod/interop"
)

// Documents travel through protobuf as google.protobuf.Value.
func init() {
	valueCodecs[interop.OriginProto] = valueCodec{
		pack: func(doc any) (*interop.Interop, error) {
			value, err := structpb.NewValue(doc)
			if err != nil {
				return nil, fmt.Errorf("convert to protobuf value: %w", err)
			}
			return interop.FromProto(value)
		},
		unpack: func(i *interop.Interop) (any, error) {
			value, err := interop.ToProto[structpb.Value](i)
			if err != nil {
				return nil, err
			}
			return value.AsInterface(), nil
		},
	}
}
