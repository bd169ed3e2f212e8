package interop

import (
	"errors"
	"io"

	"github.com/pwnedgod/interop/codec"
	"github.com/pwnedgod/interop/codec/msgpack"
	vmsgpack "github.com/vmihailenco/msgpack/v5"
)

// Writer writes Interop values to a stream in their msgpack wrapper form.
// A Writer is not safe for concurrent use.
type Writer struct {
	w   *recordingWriter
	enc *vmsgpack.Encoder
}

// Reader reads Interop values written by a Writer.
// A Reader is not safe for concurrent use, and should be discarded after it
// returns an error other than io.EOF.
type Reader struct {
	r   *recordingReader
	dec *vmsgpack.Decoder
}

func NewWriter(w io.Writer) *Writer {
	rw := &recordingWriter{w: w}
	return &Writer{
		w:   rw,
		enc: msgpack.NewEncoder(rw),
	}
}

func NewReader(r io.Reader) *Reader {
	rr := &recordingReader{r: r}
	return &Reader{
		r:   rr,
		dec: msgpack.NewDecoder(rr),
	}
}

// Write writes i to the underlying stream. Failures of the underlying writer
// are reported as KindIO.
func (w *Writer) Write(i *Interop) error {
	if i == nil {
		panic(newFault("Write", "called on nil Interop", nil))
	}

	if err := w.enc.Encode(i); err != nil {
		return mapError("Write", OriginMsgpack, w.w.tag(err), streamTarget)
	}
	return nil
}

// Read reads the next Interop from the stream. It returns io.EOF, unwrapped,
// when the stream ends between two values.
func (r *Reader) Read() (*Interop, error) {
	if _, err := r.dec.PeekCode(); err != nil {
		if errors.Is(err, io.EOF) && r.r.err == nil {
			return nil, io.EOF
		}
		return nil, mapError("Read", OriginMsgpack, r.r.tag(err), streamTarget)
	}

	i := new(Interop)
	if err := r.dec.Decode(i); err != nil {
		err = r.r.tag(err)
		// The destination is always a wrapper, so anything other than a
		// stream failure means the bytes are not one.
		if !errors.Is(err, codec.ErrIO) {
			err = codec.Tag(codec.ErrMalformed, err)
		}
		return nil, mapError("Read", OriginMsgpack, err, streamTarget)
	}

	return i, nil
}

// recordingWriter keeps the first error of the underlying writer so that it
// can be told apart from encoder errors.
type recordingWriter struct {
	w   io.Writer
	err error
}

func (rw *recordingWriter) Write(p []byte) (int, error) {
	if rw.err != nil {
		return 0, rw.err
	}

	n, err := rw.w.Write(p)
	if err != nil {
		rw.err = err
	}
	return n, err
}

func (rw *recordingWriter) tag(err error) error {
	if rw.err != nil {
		return codec.Tag(codec.ErrIO, rw.err)
	}
	return err
}

// recordingReader keeps the first error of the underlying reader other than
// io.EOF, which only marks the end of the stream.
type recordingReader struct {
	r   io.Reader
	err error
}

func (rr *recordingReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil && err != io.EOF && rr.err == nil {
		rr.err = err
	}
	return n, err
}

func (rr *recordingReader) tag(err error) error {
	if rr.err != nil {
		return codec.Tag(codec.ErrIO, rr.err)
	}
	return err
}
