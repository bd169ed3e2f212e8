package msgpack

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pwnedgod/interop/codec"
	"github.com/vmihailenco/msgpack/v5"
)

type encoderEntry struct {
	buf *bytes.Buffer
	enc *msgpack.Encoder
}

var encoderPool = sync.Pool{
	New: func() any {
		buf := new(bytes.Buffer)
		return &encoderEntry{buf: buf, enc: NewEncoder(buf)}
	},
}

var decoderPool = sync.Pool{
	New: func() any {
		return msgpack.NewDecoder(nil)
	},
}

type msgpackCodec struct {
}

func NewCodec() codec.Codec {
	return &msgpackCodec{}
}

// NewEncoder returns an encoder with sorted map keys and compact integers, so
// the same value always encodes to the same bytes.
func NewEncoder(w io.Writer) *msgpack.Encoder {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)
	return enc
}

func NewDecoder(r io.Reader) *msgpack.Decoder {
	return msgpack.NewDecoder(r)
}

func (c msgpackCodec) Marshal(v any) ([]byte, error) {
	entry := encoderPool.Get().(*encoderEntry)
	entry.buf.Reset()

	if err := entry.enc.Encode(v); err != nil {
		encoderPool.Put(entry)
		return nil, err
	}

	// Copy result before returning to pool.
	data := make([]byte, entry.buf.Len())
	copy(data, entry.buf.Bytes())
	encoderPool.Put(entry)

	return data, nil
}

// Unmarshal checks that data holds exactly one complete value before decoding
// it. The decoder sizes slices and maps from their headers, so a corrupted
// length must be rejected before it reaches an allocation.
func (c msgpackCodec) Unmarshal(data []byte, v any) error {
	if err := Wellformed(data); err != nil {
		return err
	}

	dec := decoderPool.Get().(*msgpack.Decoder)
	dec.Reset(bytes.NewReader(data))
	err := dec.Decode(v)
	dec.Reset(nil)
	decoderPool.Put(dec)

	// The bytes are well-formed, so a failure here means the value does not
	// fit the destination.
	return err
}

func (c msgpackCodec) Wellformed(data []byte) error {
	return Wellformed(data)
}

// Wellformed reports whether data holds exactly one complete msgpack value.
func Wellformed(data []byte) error {
	r := bytes.NewReader(data)
	if err := msgpack.NewDecoder(r).Skip(); err != nil {
		return codec.Tag(codec.ErrMalformed, err)
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: %d bytes after value", codec.ErrTrailingData, r.Len())
	}
	return nil
}

