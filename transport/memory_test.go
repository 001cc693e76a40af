package transport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmrwire/codec/transport"
)

func TestMemoryWriteThenRead(t *testing.T) {
	ctx := context.Background()
	m := transport.NewMemory(nil)

	require.NoError(t, m.WriteAll(ctx, []byte{1, 2, 3}))
	require.NoError(t, m.WriteAll(ctx, []byte{4, 5}))

	buf := make([]byte, 3)
	require.NoError(t, m.ReadExact(ctx, buf))
	assert.Equal(t, []byte{1, 2, 3}, buf)
	assert.Equal(t, 2, m.Len())

	buf2 := make([]byte, 2)
	require.NoError(t, m.ReadExact(ctx, buf2))
	assert.Equal(t, []byte{4, 5}, buf2)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryShortReadIsEndOfStream(t *testing.T) {
	// Scenario S6: decoding a fixed 32-byte blob from a 10-byte stream.
	ctx := context.Background()
	m := transport.NewMemory(make([]byte, 10))
	buf := make([]byte, 32)
	err := m.ReadExact(ctx, buf)
	assert.ErrorIs(t, err, transport.ErrEndOfStream)
}

func TestMemoryPreSeeded(t *testing.T) {
	ctx := context.Background()
	m := transport.NewMemory([]byte{9, 8, 7})
	buf := make([]byte, 1)
	require.NoError(t, m.ReadExact(ctx, buf))
	assert.Equal(t, byte(9), buf[0])
	assert.Equal(t, []byte{8, 7}, m.Bytes())
}

func TestMemoryReset(t *testing.T) {
	ctx := context.Background()
	m := transport.NewMemory(nil)
	require.NoError(t, m.WriteAll(ctx, []byte{1, 2}))
	m.Reset()
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Written())
}

func TestMemoryRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := transport.NewMemory([]byte{1, 2, 3})
	err := m.ReadExact(ctx, make([]byte, 1))
	assert.ErrorIs(t, err, context.Canceled)
}
