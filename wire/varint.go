// Package wire implements the leaf-level byte codecs the archive dispatch
// engine recurses down to: a 7-bit-continuation little-endian variable
// length unsigned integer ("uvarint") and little-endian fixed-width
// integers of 1, 2, 4, and 8 bytes.
//
// Both codecs operate directly against a transport.Transport so that a
// single-byte scratch buffer can live on the caller's stack for the
// duration of one encode/decode call, rather than being a shared,
// process-wide buffer that concurrent passes could stomp on.
package wire

import (
	"context"
	"math/big"

	"github.com/xmrwire/codec/transport"
)

// MaxVarintBytes bounds the number of continuation bytes DecodeUvarint will
// read before giving up with ErrOverflow. 128 bytes (896 bits) comfortably
// covers every value this codec's schemas are expected to carry (including
// the 77-bit values produced by Monero-style key-offset deltas) while still
// rejecting a malicious or corrupt stream that never terminates its varint.
const MaxVarintBytes = 128

// EncodeUvarint writes v, a non-negative integer of arbitrary size, to t
// using the standard 7-bit-continuation little-endian varint encoding.
func EncodeUvarint(ctx context.Context, t transport.Transport, v *big.Int) error {
	if v.Sign() < 0 {
		return ErrNegative
	}

	n := new(big.Int).Set(v)
	var group big.Int
	var buf [1]byte
	for {
		group.And(n, big.NewInt(0x7f))
		n.Rsh(n, 7)
		if n.Sign() == 0 {
			buf[0] = byte(group.Uint64())
			if err := t.WriteAll(ctx, buf[:]); err != nil {
				return err
			}
			return nil
		}
		buf[0] = byte(group.Uint64()) | 0x80
		if err := t.WriteAll(ctx, buf[:]); err != nil {
			return err
		}
	}
}

// DecodeUvarint reads a 7-bit-continuation little-endian varint from t.
func DecodeUvarint(ctx context.Context, t transport.Transport) (*big.Int, error) {
	result := new(big.Int)
	var shift uint
	var buf [1]byte
	for i := 0; ; i++ {
		if i >= MaxVarintBytes {
			return nil, ErrOverflow
		}
		if err := t.ReadExact(ctx, buf[:]); err != nil {
			return nil, err
		}
		b := buf[0]

		group := new(big.Int).SetUint64(uint64(b & 0x7f))
		group.Lsh(group, shift)
		result.Or(result, group)

		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// EncodedLen returns the number of bytes EncodeUvarint would emit for v.
func EncodedLen(v *big.Int) int {
	if v.Sign() == 0 {
		return 1
	}
	bits := v.BitLen()
	return (bits + 6) / 7
}
