package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, bb.Cap())
	assert.Equal(t, 1024, bb.Available())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(StreamBufferDefaultSize)
	_, _ = bb.Write([]byte("some data"))
	originalCap := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(4)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, _ = bb.Write([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.Bytes())
}

func TestByteBuffer_Clone(t *testing.T) {
	t.Run("empty buffer clones to nil", func(t *testing.T) {
		bb := NewByteBuffer(16)
		require.Nil(t, bb.Clone())
	})

	t.Run("clone is exact size and detached", func(t *testing.T) {
		bb := NewByteBuffer(64)
		_, _ = bb.Write([]byte{9, 8, 7})

		clone := bb.Clone()
		require.Equal(t, []byte{9, 8, 7}, clone)
		require.Equal(t, 3, cap(clone))

		bb.B[0] = 0
		require.Equal(t, byte(9), clone[0])
	})
}

// =============================================================================
// ByteBuffer Grow Tests
// =============================================================================

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity does not reallocate", func(t *testing.T) {
		bb := NewByteBuffer(StreamBufferDefaultSize)
		bb.Grow(100)
		assert.Equal(t, StreamBufferDefaultSize, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(StreamBufferDefaultSize)
		bb.B = append(bb.B, make([]byte, StreamBufferDefaultSize)...)

		bb.Grow(1)

		assert.Equal(t, 2*StreamBufferDefaultSize, bb.Cap())
		assert.Equal(t, StreamBufferDefaultSize, bb.Len())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * StreamBufferDefaultSize
		bb := &ByteBuffer{B: make([]byte, size)}

		bb.Grow(1)

		assert.Equal(t, size+size/4, bb.Cap())
	})

	t.Run("request larger than growth step", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(10 * StreamBufferDefaultSize)
		assert.GreaterOrEqual(t, bb.Available(), 10*StreamBufferDefaultSize)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(4)
		_, _ = bb.Write([]byte("keep"))
		bb.Grow(StreamBufferDefaultSize * 2)
		assert.Equal(t, []byte("keep"), bb.Bytes())
	})
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestGetStreamBuffer(t *testing.T) {
	bb := GetStreamBuffer(3 * StreamBufferDefaultSize)
	defer PutStreamBuffer(bb)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Available(), 3*StreamBufferDefaultSize)
}

func TestPutStreamBuffer_NilBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		PutStreamBuffer(nil)
		PutSnapshotBuffer(nil)
	})
}

func TestByteBufferPool_ResetOnPut(t *testing.T) {
	p := NewByteBufferPool(16, 0)
	bb := p.Get()
	_, _ = bb.Write([]byte("stale"))
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "buffer from pool should be reset")
}

func TestByteBufferPool_DropsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(16, 32)
	big := NewByteBuffer(64)
	_, _ = big.Write([]byte("x"))

	p.Put(big)

	// An oversized buffer is never reset because it is not retained.
	assert.Equal(t, 1, big.Len())
}

func TestGetSnapshotBuffer(t *testing.T) {
	bb := GetSnapshotBuffer()
	defer PutSnapshotBuffer(bb)

	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), SnapshotBufferDefaultSize)
}

func TestStreamPool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			bb := GetStreamBuffer(n * 10)
			_, _ = bb.Write(make([]byte, n))
			PutStreamBuffer(bb)
		}(i + 1)
	}
	wg.Wait()
}
