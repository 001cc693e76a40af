package wire

import (
	"context"

	"github.com/xmrwire/codec/transport"
)

// EncodeFixed writes v as width little-endian bytes (low-order first) to t.
// width must be 1, 2, 4, or 8; signedness does not alter the wire form —
// callers choose the interpretation of the raw bits.
func EncodeFixed(ctx context.Context, t transport.Transport, v uint64, width int) error {
	buf, err := fixedBuf(width)
	if err != nil {
		return err
	}
	for i := range buf {
		buf[i] = byte(v >> (8 * uint(i)))
	}
	return t.WriteAll(ctx, buf)
}

// DecodeFixed reads width little-endian bytes from t and reconstructs the
// integer they represent.
func DecodeFixed(ctx context.Context, t transport.Transport, width int) (uint64, error) {
	buf, err := fixedBuf(width)
	if err != nil {
		return 0, err
	}
	if err := t.ReadExact(ctx, buf); err != nil {
		return 0, err
	}
	var v uint64
	for i, b := range buf {
		v |= uint64(b) << (8 * uint(i))
	}
	return v, nil
}

func fixedBuf(width int) ([]byte, error) {
	switch width {
	case 1, 2, 4, 8:
		return make([]byte, width), nil
	default:
		return nil, ErrWidth
	}
}

// FitsWidth reports whether v is representable in width bytes, i.e.
// v < 2^(8*width). It is used to reject out-of-range values at encode time
// (spec.md §7 EncodeError: value does not satisfy schema preconditions).
func FitsWidth(v uint64, width int) bool {
	if width >= 8 {
		return true
	}
	limit := uint64(1) << (8 * uint(width))
	return v < limit
}
