package protobuf_test

import (
	"testing"

	"github.com/pwnedgod/interop/codec"
	"github.com/pwnedgod/interop/codec/protobuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestRoundTrip(t *testing.T) {
	c := protobuf.NewCodec()

	data, err := c.Marshal(wrapperspb.String("x"))
	require.NoError(t, err)

	decoded := new(wrapperspb.StringValue)
	require.NoError(t, c.Unmarshal(data, decoded))
	assert.Equal(t, "x", decoded.GetValue())
}

func TestRejectsNonMessages(t *testing.T) {
	c := protobuf.NewCodec()

	_, err := c.Marshal("x")
	assert.Error(t, err)

	var s string
	assert.Error(t, c.Unmarshal([]byte{0x0a, 0x01, 'x'}, &s))
}

func TestUnmarshalMalformed(t *testing.T) {
	decoded := new(wrapperspb.StringValue)
	err := protobuf.NewCodec().Unmarshal([]byte{0x0a, 0x05, 'x'}, decoded)
	assert.ErrorIs(t, err, codec.ErrMalformed)
}

func TestWellformed(t *testing.T) {
	assert.NoError(t, protobuf.Wellformed(nil))
	assert.NoError(t, protobuf.Wellformed([]byte{0x08, 0x07, 0x12, 0x01, 'x'}))
	assert.ErrorIs(t, protobuf.Wellformed([]byte{0x08}), codec.ErrMalformed)
	assert.ErrorIs(t, protobuf.Wellformed([]byte{0x12, 0x05, 'x'}), codec.ErrMalformed)
}
