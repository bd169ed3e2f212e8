package interop

// Truncate returns a copy of i with the last byte of the encoded value cut.
func Truncate(i *Interop) *Interop {
	return WithRepr(i, i.repr[:len(i.repr)-1])
}

// WithRepr returns a copy of i holding repr under the same origin.
func WithRepr(i *Interop, repr []byte) *Interop {
	return &Interop{repr: repr, origin: i.origin}
}

func Repr(i *Interop) []byte {
	return append([]byte(nil), i.repr...)
}
