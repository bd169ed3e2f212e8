package codec

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed    = errors.New("codec: malformed input")
	ErrTrailingData = errors.New("codec: trailing data")
	ErrLimit        = errors.New("codec: limit exceeded")
	ErrIO           = errors.New("codec: i/o failure")
)

// Tag wraps err so that it matches both sentinel and the original error.
func Tag(sentinel error, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
