package pool

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, capacity, bb.Cap(), "new buffer should have specified capacity")
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(16)

	require.NoError(t, bb.WriteByte('i'))
	bb.AppendInt(-42)
	require.NoError(t, bb.WriteByte('e'))
	n, err := bb.WriteString("4:")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	n, err = bb.Write([]byte("spam"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	bb.AppendUint(18446744073709551615)

	require.Equal(t, "i-42e4:spam18446744073709551615", string(bb.Bytes()))
}

func TestByteBuffer_Clone(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.WriteString("le")

	out := bb.Clone()
	bb.Reset()
	_, _ = bb.WriteString("de")

	require.Equal(t, []byte("le"), out, "clone must not alias the buffer")
}

func TestByteBuffer_Truncate(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.WriteString("d3:cow")

	bb.Truncate(1)
	require.Equal(t, "d", string(bb.Bytes()))

	require.Panics(t, func() { bb.Truncate(5) })
	require.Panics(t, func() { bb.Truncate(-1) })
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		assert.Equal(t, 100, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		_, _ = bb.WriteString("0123456789")
		bb.Grow(1)
		assert.Equal(t, 10+EncodeBufferDefaultSize, bb.Cap())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * EncodeBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		assert.Equal(t, size+size/4, bb.Cap())
	})

	t.Run("request larger than growth step", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(EncodeBufferDefaultSize * 3)
		assert.GreaterOrEqual(t, bb.Cap(), EncodeBufferDefaultSize*3)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(2)
		_, _ = bb.WriteString("le")
		bb.Grow(1000)
		assert.Equal(t, "le", string(bb.Bytes()))
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.WriteString("4:spam")

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
	require.Equal(t, "4:spam", out.String())

	_, err = bb.WriteTo(failingWriter{})
	require.Error(t, err)
}

func TestByteBufferPool_GetPut(t *testing.T) {
	bbp := NewByteBufferPool(64, 256)

	bb := bbp.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	_, _ = bb.WriteString("data")
	bbp.Put(bb)

	again := bbp.Get()
	require.Equal(t, 0, again.Len(), "pooled buffers come back empty")
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	bbp := NewByteBufferPool(8, 16)

	big := NewByteBuffer(1024)
	_, _ = big.WriteString("oversized")
	bbp.Put(big)

	// The oversized buffer is dropped, so it keeps its contents.
	require.Equal(t, "oversized", string(big.Bytes()))

	bbp.Put(nil)
}

func TestDefaultEncodePool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bb := GetEncodeBuffer()
				_, _ = bb.WriteString("l4:spame")
				if string(bb.Bytes()) != "l4:spame" {
					t.Errorf("unexpected buffer contents %q", bb.Bytes())
				}
				PutEncodeBuffer(bb)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkPool_GetWritePut(b *testing.B) {
	payload := []byte("d3:cow3:moo4:spam4:eggse")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		bb := GetEncodeBuffer()
		_, _ = bb.Write(payload)
		PutEncodeBuffer(bb)
	}
}
