package interop

import (
	"fmt"
	"slices"
	"strings"
)

type (
	// Origin is the serialization mid-end an Interop was made from.
	Origin uint8

	// Interop holds a value encoded by one serialization mid-end together with
	// the origin of that encoding. It can only be decoded again through the
	// same mid-end.
	//
	// The zero value has no origin and cannot be decoded. Use one of the
	// From functions or New to build an Interop.
	Interop struct {
		repr   []byte
		origin Origin
	}
)

const (
	// The Interop was constructed using msgpack.
	OriginMsgpack Origin = 1
)

func (o Origin) String() string {
	if m, ok := midEnds[o]; ok {
		return m.name
	}
	if o == 0 {
		return "unknown"
	}
	return fmt.Sprintf("Origin(%d)", uint8(o))
}

// Supported reports whether the mid-end is compiled into this build.
func (o Origin) Supported() bool {
	_, ok := midEnds[o]
	return ok
}

// ParseOrigin returns the supported origin with the given name.
func ParseOrigin(name string) (Origin, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for o, m := range midEnds {
		if m.name == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedOrigin, name)
}

// Origins lists the origins compiled into this build in ascending order.
func Origins() []Origin {
	origins := make([]Origin, 0, len(midEnds))
	for o := range midEnds {
		origins = append(origins, o)
	}
	slices.Sort(origins)
	return origins
}

// Origin returns the mid-end that produced the encoded value.
func (i Interop) Origin() Origin {
	return i.origin
}

// Len returns the size of the encoded value in bytes.
func (i Interop) Len() int {
	return len(i.repr)
}

func (i Interop) String() string {
	return fmt.Sprintf("Interop{origin: %s, len: %d}", i.origin, len(i.repr))
}
