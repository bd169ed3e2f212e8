package codec

type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Checker is implemented by codecs that can tell malformed input apart from
// input that is well-formed but does not fit the destination value.
type Checker interface {
	Wellformed(data []byte) error
}
