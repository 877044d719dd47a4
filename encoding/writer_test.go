package encoding

import (
	"bytes"
	"math"
	"testing"

	"github.com/arloliu/bencode/errs"
	"github.com/arloliu/bencode/value"
	"github.com/stretchr/testify/require"
)

func TestWriter_Integer(t *testing.T) {
	tests := []struct {
		name string
		in   value.Integer
		want string
	}{
		{"zero", value.Int(0), "i0e"},
		{"negative", value.Int(-5), "i-5e"},
		{"positive", value.Int(42), "i42e"},
		{"min int64", value.Int(math.MinInt64), "i-9223372036854775808e"},
		{"max uint64", value.Uint(math.MaxUint64), "i18446744073709551615e"},
		{"big", value.ParseInteger("100000000000000000000"), "i100000000000000000000e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(0)
			defer w.Release()

			require.NoError(t, w.WriteInteger(tt.in))
			require.Equal(t, tt.want, string(w.Bytes()))

			out, err := AppendInteger(nil, tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(out))
		})
	}
}

func TestWriter_InvalidIntegerWritesNothing(t *testing.T) {
	w := NewWriter(0)
	defer w.Release()

	w.BeginList()
	err := w.WriteInteger(value.BigInt(nil))
	require.ErrorIs(t, err, errs.ErrInvalidInteger)
	require.Equal(t, "l", string(w.Bytes()))

	out, err := AppendInteger([]byte("l"), value.ParseInteger("-0"))
	require.ErrorIs(t, err, errs.ErrInvalidInteger)
	require.Equal(t, "l", string(out))
}

func TestWriter_Int64(t *testing.T) {
	w := NewWriter(0)
	defer w.Release()

	w.WriteInt64(-17)
	require.Equal(t, "i-17e", string(w.Bytes()))
}

func TestWriter_ByteString(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, "0:"},
		{"ascii", []byte("spam"), "4:spam"},
		{"multi-byte text counts bytes", []byte("héllo"), "6:héllo"},
		{"binary", []byte{0x00, 0xff, ':'}, "3:\x00\xff:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(0)
			defer w.Release()

			w.WriteByteString(tt.in)
			require.Equal(t, tt.want, string(w.Bytes()))

			w.Reset()
			w.WriteString(string(tt.in))
			require.Equal(t, tt.want, string(w.Bytes()))

			require.Equal(t, tt.want, string(AppendByteString(nil, tt.in)))
		})
	}
}

func TestWriter_Framing(t *testing.T) {
	w := NewWriter(64)
	defer w.Release()

	w.BeginDict()
	w.WriteString("spam")
	w.BeginList()
	w.WriteString("a")
	w.WriteString("b")
	w.End()
	w.End()

	require.Equal(t, "d4:spaml1:a1:bee", string(w.Bytes()))
	require.Equal(t, 16, w.Len())

	detached := w.Detach()
	w.Reset()
	w.BeginList()
	w.End()
	require.Equal(t, "d4:spaml1:a1:bee", string(detached))
	require.Equal(t, "le", string(w.Bytes()))

	var out bytes.Buffer
	n, err := w.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, "le", out.String())
}

func TestWriter_ReleaseTwice(t *testing.T) {
	w := NewWriter(0)
	w.Release()
	w.Release()
}
