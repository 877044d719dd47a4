// Package format defines the value kinds, wire tokens and compression types
// shared by the bencode packages.
package format

type (
	Kind            uint8
	CompressionType uint8
)

const (
	KindInteger    Kind = 0x1 // KindInteger represents a signed whole number.
	KindByteString Kind = 0x2 // KindByteString represents an arbitrary byte sequence.
	KindList       Kind = 0x3 // KindList represents an ordered sequence of values.
	KindDictionary Kind = 0x4 // KindDictionary represents a byte-sorted key/value mapping.
	KindForcedList Kind = 0x5 // KindForcedList marks a container that must be encoded as a list.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Wire tokens of the Bencode grammar.
const (
	TokenInteger    byte = 'i'
	TokenList       byte = 'l'
	TokenDictionary byte = 'd'
	TokenEnd        byte = 'e'
	TokenSeparator  byte = ':'
	TokenMinus      byte = '-'
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindByteString:
		return "ByteString"
	case KindList:
		return "List"
	case KindDictionary:
		return "Dictionary"
	case KindForcedList:
		return "ForcedList"
	default:
		return "Unknown"
	}
}

// Token returns the opening wire token of the kind. Byte strings have no
// opening token and return 0.
func (k Kind) Token() byte {
	switch k {
	case KindInteger:
		return TokenInteger
	case KindList, KindForcedList:
		return TokenList
	case KindDictionary:
		return TokenDictionary
	default:
		return 0
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the known compression types.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}
