package transport

import (
	"context"
	"fmt"
)

// Memory is an in-memory Transport backed by a growable byte buffer with an
// integer read cursor: reads consume from the cursor, writes append. It is
// the canonical transport for tests and for length-prefix backpatching.
//
// The zero value is an empty, ready-to-use buffer.
type Memory struct {
	buf   []byte
	index int
}

// NewMemory creates a Memory transport pre-seeded with buf as its readable
// contents. The returned Memory takes ownership of buf.
func NewMemory(buf []byte) *Memory {
	return &Memory{buf: buf}
}

// ReadExact implements Transport.
func (m *Memory) ReadExact(ctx context.Context, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	avail := len(m.buf) - m.index
	if avail < len(buf) {
		return fmt.Errorf("%w: wanted %d bytes, had %d", ErrEndOfStream, len(buf), avail)
	}
	copy(buf, m.buf[m.index:])
	m.index += len(buf)
	return nil
}

// WriteAll implements Transport.
func (m *Memory) WriteAll(ctx context.Context, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.buf = append(m.buf, buf...)
	return nil
}

// Bytes returns the unread remainder of the buffer. The slice aliases the
// Memory's storage; callers must not mutate it if they intend to keep
// reading.
func (m *Memory) Bytes() []byte {
	return m.buf[m.index:]
}

// Written returns every byte ever written to this Memory, irrespective of
// how much has since been read.
func (m *Memory) Written() []byte {
	return m.buf
}

// Len returns the number of unread bytes remaining.
func (m *Memory) Len() int {
	return len(m.buf) - m.index
}

// Reset clears the buffer back to empty.
func (m *Memory) Reset() {
	m.buf = nil
	m.index = 0
}
