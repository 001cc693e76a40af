// Package transport defines the byte-stream contract the codec runs on top
// of: read exactly N bytes, or write all of a buffer. Transports provide no
// framing of their own; that is the archive dispatch engine's job.
package transport

import (
	"context"
	"errors"
)

// ErrEndOfStream is returned by ReadExact when the transport has fewer
// bytes available than were requested.
var ErrEndOfStream = errors.New("transport: end of stream")

// ErrWrite is returned by WriteAll when the transport fails to accept all
// of the given bytes.
var ErrWrite = errors.New("transport: write failed")

// Transport is the only thing the codec requires of its I/O substrate.
// Both methods are suspension points: in a cooperative scheduling model
// they may yield while awaiting I/O progress, which Go expresses as a
// blocking call that honors ctx's cancellation rather than an async/await
// keyword pair.
//
// A single Transport must not be driven by more than one encode or decode
// pass at a time; independent Transports may be driven concurrently.
type Transport interface {
	// ReadExact fills buf completely or returns ErrEndOfStream (wrapped)
	// if the stream is exhausted first.
	ReadExact(ctx context.Context, buf []byte) error

	// WriteAll writes every byte of buf or returns ErrWrite (wrapped).
	WriteAll(ctx context.Context, buf []byte) error
}
