package wire

import "errors"

// ErrOverflow is returned when a varint exceeds the decoder's configured
// width limit.
var ErrOverflow = errors.New("wire: varint overflow")

// ErrNegative is returned when a caller attempts to encode a negative
// value as a uvarint.
var ErrNegative = errors.New("wire: negative value is not a valid uvarint")

// ErrWidth is returned when a fixed-width integer width is not one of
// 1, 2, 4, or 8 bytes.
var ErrWidth = errors.New("wire: fixed-width integer width must be 1, 2, 4, or 8")
