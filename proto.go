//go:build !interop_noproto

package interop

import (
	"github.com/pwnedgod/interop/codec/protobuf"
	"google.golang.org/protobuf/proto"
)

const (
	// The Interop was constructed using protobuf.
	OriginProto Origin = 3
)

func init() {
	register(OriginProto, midEnd{
		name:  "proto",
		codec: protobuf.NewCodec(),
	})
}

// FromProto creates an Interop by encoding the message v with protobuf.
func FromProto[T proto.Message](v T) (*Interop, error) {
	return construct("FromProto", OriginProto, v)
}

// ToProto decodes an Interop made with protobuf into a new message of type T.
//
//	msg, err := interop.ToProto[wrapperspb.StringValue](i)
//
// It panics with a *Fault if i was not constructed using protobuf.
func ToProto[T any, PT interface {
	*T
	proto.Message
}](i *Interop) (PT, error) {
	msg := PT(new(T))
	if err := extract("ToProto", i, OriginProto, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
