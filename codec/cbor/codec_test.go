package cbor_test

import (
	"bytes"
	"testing"

	"github.com/pwnedgod/interop/codec"
	"github.com/pwnedgod/interop/codec/cbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalIsDeterministic(t *testing.T) {
	first, err := cbor.Marshal(map[string]int{"b": 2, "a": 1, "c": 3})
	require.NoError(t, err)

	again, err := cbor.Marshal(map[string]int{"c": 3, "a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestUnmarshalGenericMaps(t *testing.T) {
	data, err := cbor.Marshal(map[string]any{"name": "x"})
	require.NoError(t, err)

	var decoded any
	require.NoError(t, cbor.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]any{"name": "x"}, decoded)
}

func TestUnmarshalErrors(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"empty", nil, codec.ErrMalformed},
		{"truncated", []byte{0x82, 0x01}, codec.ErrMalformed},
		{"reserved additional information", []byte{0x1c}, codec.ErrMalformed},
		{"trailing", []byte{0x01, 0x02}, codec.ErrTrailingData},
		{"nested too deep", append(bytes.Repeat([]byte{0x81}, 70000), 0x00), codec.ErrLimit},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var decoded any
			assert.ErrorIs(t, cbor.Unmarshal(c.data, &decoded), c.expected)
		})
	}
}

func TestUnmarshalTypeMismatchIsUntagged(t *testing.T) {
	data, err := cbor.Marshal("hello")
	require.NoError(t, err)

	var decoded int
	err = cbor.Unmarshal(data, &decoded)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, codec.ErrMalformed)
}

func TestWellformed(t *testing.T) {
	c := cbor.NewCodec().(codec.Checker)

	assert.NoError(t, c.Wellformed([]byte{0x82, 0x01, 0x61, 'x'}))
	assert.ErrorIs(t, c.Wellformed([]byte{0x82, 0x01}), codec.ErrMalformed)
	assert.ErrorIs(t, c.Wellformed([]byte{0x01, 0x02}), codec.ErrTrailingData)
}
