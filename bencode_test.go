package bencode

import (
	"bytes"
	"crypto/sha1" //nolint:gosec
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bencode/encoder"
	"github.com/arloliu/bencode/errs"
	"github.com/arloliu/bencode/format"
	"github.com/arloliu/bencode/internal/hash"
	"github.com/arloliu/bencode/value"
)

// mirror parses exactly the grammar Encode produces, into value types.
// Dictionaries decode to ordered value.Dict so "de" survives a round trip.
type mirror struct {
	data []byte
	pos  int
}

func decodeMirror(data []byte) (any, error) {
	m := &mirror{data: data}
	v, err := m.next()
	if err != nil {
		return nil, err
	}
	if m.pos != len(data) {
		return nil, fmt.Errorf("trailing data at %d", m.pos)
	}

	return v, nil
}

func (m *mirror) next() (any, error) {
	if m.pos >= len(m.data) {
		return nil, errors.New("unexpected end")
	}

	switch c := m.data[m.pos]; {
	case c == format.TokenInteger:
		end := bytes.IndexByte(m.data[m.pos:], format.TokenEnd)
		if end < 0 {
			return nil, errors.New("unterminated integer")
		}
		n := value.ParseInteger(string(m.data[m.pos+1 : m.pos+end]))
		if !n.Valid() {
			return nil, errors.New("non-canonical integer")
		}
		m.pos += end + 1

		return n, nil
	case c == format.TokenList:
		m.pos++
		var list value.List
		for m.pos < len(m.data) && m.data[m.pos] != format.TokenEnd {
			v, err := m.next()
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		m.pos++

		return list, nil
	case c == format.TokenDictionary:
		m.pos++
		var (
			pairs []value.Pair
			prev  []byte
		)
		for m.pos < len(m.data) && m.data[m.pos] != format.TokenEnd {
			k, err := m.next()
			if err != nil {
				return nil, err
			}
			key, ok := k.(value.ByteString)
			if !ok {
				return nil, errors.New("dictionary key is not a byte string")
			}
			if prev != nil && bytes.Compare(prev, key) >= 0 {
				return nil, errors.New("dictionary keys out of order")
			}
			prev = key

			v, err := m.next()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, value.Pair{Key: key, Value: v})
		}
		m.pos++

		return value.NewDict(pairs...), nil
	case c >= '0' && c <= '9':
		sep := bytes.IndexByte(m.data[m.pos:], format.TokenSeparator)
		if sep < 0 {
			return nil, errors.New("missing length separator")
		}
		n, err := strconv.Atoi(string(m.data[m.pos : m.pos+sep]))
		if err != nil {
			return nil, err
		}
		start := m.pos + sep + 1
		if start+n > len(m.data) {
			return nil, errors.New("byte string exceeds input")
		}
		m.pos = start + n

		return value.ByteString(m.data[start:m.pos]), nil
	default:
		return nil, fmt.Errorf("unexpected byte %q at %d", c, m.pos)
	}
}

type metainfo struct {
	Announce string   `bencode:"announce"`
	Info     infoDict `bencode:"info"`
	Comment  string   `bencode:"comment,omitempty"`
}

type infoDict struct {
	Name        string `bencode:"name"`
	PieceLength int64  `bencode:"piece length"`
	Pieces      []byte `bencode:"pieces"`
	Length      int64  `bencode:"length"`
}

func sampleMetainfo() metainfo {
	return metainfo{
		Announce: "http://tracker.example/announce",
		Info: infoDict{
			Name:        "demo.iso",
			PieceLength: 262144,
			Pieces:      bytes.Repeat([]byte{0xab}, 40),
			Length:      524288,
		},
	}
}

func TestEncode_Examples(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"zero", 0, "i0e"},
		{"negative", -5, "i-5e"},
		{"string", "spam", "4:spam"},
		{"empty string", "", "0:"},
		{"empty list", []any{}, "le"},
		{"list", []string{"spam", "eggs"}, "l4:spam4:eggse"},
		{"dict", map[string]any{"cow": "moo", "zebra": "world"}, "d3:cow3:moo5:zebra5:worlde"},
		{"dict with list", map[string]any{"spam": []string{"a", "b"}}, "d4:spaml1:a1:bee"},
		{"forced list", value.AsList(map[string]string{"x": "1"}), "l1:1e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Encode(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(out))
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	inputs := []any{
		0,
		-42,
		new(big.Int).Lsh(big.NewInt(1), 100),
		"",
		[]byte{0, 1, 2, 0xff},
		[]any{},
		[]any{"a", []any{1, []any{}}, map[string]any{"k": "v"}},
		map[string]any{"z": 1, "a": map[string]any{"nested": []int{3, 2, 1}}},
		value.NewDict(),
		sampleMetainfo(),
	}

	for i, in := range inputs {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			first, err := Encode(in)
			require.NoError(t, err)

			decoded, err := decodeMirror(first)
			require.NoError(t, err)

			second, err := Encode(decoded)
			require.NoError(t, err)
			require.Equal(t, first, second, "encoding is idempotent through its own grammar")
		})
	}
}

func TestEncode_EmptyContainersAreAmbiguous(t *testing.T) {
	fromMap, err := Encode(map[string]any{})
	require.NoError(t, err)

	fromSlice, err := Encode([]any{})
	require.NoError(t, err)

	require.Equal(t, fromSlice, fromMap)
}

func TestEncode_Error(t *testing.T) {
	_, err := Encode(map[string]any{"n": value.BigInt(nil)})
	require.ErrorIs(t, err, errs.ErrInvalidInteger)

	var encErr *errs.EncodeError
	require.True(t, errors.As(err, &encErr))
	require.Equal(t, "n", encErr.Path)
	require.Contains(t, err.Error(), "bencode: invalid integer")
	require.Contains(t, err.Error(), " at n")

	_, err = Encode("x", encoder.WithMaxDepth(0))
	require.ErrorIs(t, err, errs.ErrInvalidMaxDepth)
}

func TestEncodeTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := EncodeTo(&buf, map[string]int{"a": 1})
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	require.Equal(t, "d1:ai1ee", buf.String())

	_, err = EncodeTo(&buf, "x", encoder.WithBufferSize(-1))
	require.ErrorIs(t, err, errs.ErrInvalidBufferSize)
}

func TestNewEncoder(t *testing.T) {
	enc, err := NewEncoder([]int{1, 2})
	require.NoError(t, err)

	out, err := enc.Encode()
	require.NoError(t, err)
	require.Equal(t, "li1ei2ee", string(out))
}

func TestInfoHash(t *testing.T) {
	mi := sampleMetainfo()

	infoBytes, err := Encode(mi.Info)
	require.NoError(t, err)

	sum, err := InfoHash(mi.Info)
	require.NoError(t, err)
	require.Equal(t, sha1.Sum(infoBytes), sum) //nolint:gosec

	asMap := map[string]any{
		"length":       524288,
		"name":         "demo.iso",
		"piece length": 262144,
		"pieces":       mi.Info.Pieces,
	}
	sumFromMap, err := InfoHash(asMap)
	require.NoError(t, err)
	require.Equal(t, sum, sumFromMap, "same logical dictionary, same info hash")

	_, err = InfoHash([]any{value.ParseInteger("x")})
	require.ErrorIs(t, err, errs.ErrInvalidInteger)
}

func TestInfoHash_DuplicateKeys(t *testing.T) {
	dup := value.NewDict(value.Entry("name", "a"), value.Entry("name", "b"))

	_, err := InfoHash(dup)
	require.ErrorIs(t, err, errs.ErrDuplicateKey)

	sum, err := InfoHash(dup, encoder.WithStrictKeys(false))
	require.NoError(t, err)

	want, err := InfoHash(map[string]string{"name": "b"})
	require.NoError(t, err)
	require.Equal(t, want, sum)
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(map[string]any{"cow": "moo", "zebra": "world"})
	require.NoError(t, err)

	b, err := Fingerprint(value.NewDict(value.Entry("zebra", "world"), value.Entry("cow", "moo")))
	require.NoError(t, err)
	require.Equal(t, a, b)

	out, err := Encode(map[string]any{"cow": "moo", "zebra": "world"})
	require.NoError(t, err)
	require.Equal(t, hash.Sum(out), a)

	c, err := Fingerprint(map[string]any{"cow": "moo"})
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestPackUnpack(t *testing.T) {
	mi := sampleMetainfo()
	want, err := Encode(mi)
	require.NoError(t, err)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			packed, err := Pack(mi, ct)
			require.NoError(t, err)

			got, err := Unpack(packed)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}

	_, err = Pack(mi, format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = Unpack([]byte("d1:ai1ee"))
	require.ErrorIs(t, err, errs.ErrEnvelopeTooShort)
}

func TestMirrorRejectsNonCanonical(t *testing.T) {
	for _, in := range []string{"i-0e", "i03e", "d1:b0:1:a0:e", "4:sp", "x"} {
		_, err := decodeMirror([]byte(in))
		require.Error(t, err, in)
	}
}
