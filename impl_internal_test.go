package interop

import (
	"errors"
	"io"
	"testing"

	"github.com/pwnedgod/interop/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	errLib := errors.New("library failure")

	t.Run("it keeps custom errors and fills in the origin", func(t *testing.T) {
		custom := Custom("bad value")
		err := mapError("op", OriginMsgpack, custom, memoryTarget)

		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, KindCustom, e.Kind)
		assert.Equal(t, OriginMsgpack, e.Origin)
		assert.Equal(t, Origin(0), custom.Origin)
	})

	t.Run("it maps malformed and trailing data to invalid encoding", func(t *testing.T) {
		for _, sentinel := range []error{codec.ErrMalformed, codec.ErrTrailingData} {
			err := mapError("op", OriginMsgpack, codec.Tag(sentinel, errLib), memoryTarget)
			assert.ErrorIs(t, err, KindInvalidEncoding)
			assert.ErrorIs(t, err, errLib)
		}
	})

	t.Run("it maps everything else to serde", func(t *testing.T) {
		err := mapError("op", OriginMsgpack, errLib, memoryTarget)
		assert.ErrorIs(t, err, KindSerde)
		assert.ErrorIs(t, err, errLib)
	})

	t.Run("it faults on size limits", func(t *testing.T) {
		for _, tgt := range []target{memoryTarget, streamTarget} {
			assert.Panics(t, func() {
				_ = mapError("op", OriginMsgpack, codec.Tag(codec.ErrLimit, errLib), tgt)
			})
		}
	})

	t.Run("it faults on i/o against memory", func(t *testing.T) {
		assert.PanicsWithError(t, "interop: op hit a msgpack i/o failure against an in-memory target (codec: i/o failure: unexpected EOF)", func() {
			_ = mapError("op", OriginMsgpack, codec.Tag(codec.ErrIO, io.ErrUnexpectedEOF), memoryTarget)
		})
	})

	t.Run("it reports i/o against streams", func(t *testing.T) {
		err := mapError("op", OriginMsgpack, codec.Tag(codec.ErrIO, errLib), streamTarget)
		assert.ErrorIs(t, err, KindIO)
		assert.ErrorIs(t, err, errLib)
	})
}

func TestErrorMessages(t *testing.T) {
	errLib := errors.New("library failure")

	cases := []struct {
		err      *Error
		expected string
	}{
		{Custom("bad value"), "interop: bad value"},
		{&Error{Kind: KindCustom, Origin: OriginMsgpack, Msg: "bad value"}, "interop: msgpack: bad value"},
		{&Error{Kind: KindSerde, Origin: OriginMsgpack, Err: errLib}, "interop: msgpack: library failure"},
		{&Error{Kind: KindInvalidEncoding, Origin: OriginMsgpack, Err: errLib}, "interop: msgpack: invalid encoding (library failure)"},
		{&Error{Kind: KindIO, Err: errLib}, "interop: i/o failure (library failure)"},
		{&Error{Kind: KindInvalidEncoding}, "interop: invalid encoding"},
	}

	for _, c := range cases {
		assert.EqualError(t, c.err, c.expected)
	}

	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.EqualError(t, KindSerde, "interop: serde")
	assert.Equal(t, "interop: 3 is odd", Customf("%d is odd", 3).Error())
}

func TestFaultMessages(t *testing.T) {
	assert.EqualError(t, newFault("ToCBOR", "called on value constructed using msgpack", nil),
		"interop: ToCBOR called on value constructed using msgpack")

	errLib := errors.New("library failure")
	fault := newFault("FromCBOR", "failed", errLib)
	assert.EqualError(t, fault, "interop: FromCBOR failed (library failure)")
	assert.ErrorIs(t, fault, errLib)
}

func TestRegisterTwicePanics(t *testing.T) {
	assert.Panics(t, func() {
		register(OriginMsgpack, midEnds[OriginMsgpack])
	})
}
