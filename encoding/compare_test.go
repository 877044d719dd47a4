package encoding

import (
	"bytes"
	"testing"

	"github.com/arloliu/bencode/value"
	"github.com/stretchr/testify/require"
)

func keysOf(pairs []value.Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = string(p.Key)
	}

	return out
}

func TestByteOrder(t *testing.T) {
	require.Negative(t, ByteOrder([]byte("a"), []byte("b")))
	require.Negative(t, ByteOrder([]byte("Z"), []byte("a")), "uppercase sorts before lowercase")
	require.Negative(t, ByteOrder([]byte("10"), []byte("9")), "numeric-looking keys compare as bytes")
	require.Negative(t, ByteOrder([]byte("ab"), []byte("abc")), "prefix sorts first")
	require.Negative(t, ByteOrder([]byte{0x7f}, []byte{0x80}), "bytes compare unsigned")
	require.Zero(t, ByteOrder(nil, []byte{}))
}

func TestSortPairs(t *testing.T) {
	t.Run("sorts by raw bytes", func(t *testing.T) {
		pairs := []value.Pair{
			value.Entry("zebra", 1),
			value.Entry("cow", 2),
			value.Entry("Cow", 3),
			value.Entry("10", 4),
			value.Entry("9", 5),
		}
		SortPairs(pairs, nil)
		require.Equal(t, []string{"10", "9", "Cow", "cow", "zebra"}, keysOf(pairs))
		require.True(t, IsStrictlySorted(pairs, ByteOrder))
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		pairs := []value.Pair{value.Entry("k", 1), value.Entry("a", 0), value.Entry("k", 2)}
		SortPairs(pairs, ByteOrder)
		require.Equal(t, 1, pairs[1].Value)
		require.Equal(t, 2, pairs[2].Value)
		require.False(t, IsStrictlySorted(pairs, ByteOrder))
	})

	t.Run("injected comparator", func(t *testing.T) {
		reverse := func(a, b []byte) int { return bytes.Compare(b, a) }
		pairs := []value.Pair{value.Entry("a", 1), value.Entry("c", 2), value.Entry("b", 3)}
		SortPairs(pairs, reverse)
		require.Equal(t, []string{"c", "b", "a"}, keysOf(pairs))
		require.True(t, IsStrictlySorted(pairs, reverse))
		require.False(t, IsStrictlySorted(pairs, nil))
	})
}

func BenchmarkSortPairs(b *testing.B) {
	base := make([]value.Pair, 0, 64)
	for i := 0; i < 64; i++ {
		base = append(base, value.Pair{Key: []byte{byte(64 - i), 'k'}})
	}
	pairs := make([]value.Pair, len(base))

	b.ReportAllocs()
	for b.Loop() {
		copy(pairs, base)
		SortPairs(pairs, ByteOrder)
	}
}
