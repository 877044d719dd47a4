package envelope

import (
	"fmt"
	"math"

	"github.com/arloliu/bencode/endian"
	"github.com/arloliu/bencode/errs"
	"github.com/arloliu/bencode/format"
)

const (
	// HeaderSize is the fixed size of an envelope header in bytes.
	HeaderSize = 16

	// Version is the envelope layout version written by Seal.
	Version uint8 = 1

	// MaxPayloadSize is the largest payload whose length fits the header.
	MaxPayloadSize = math.MaxUint32
)

// Magic identifies a sealed payload.
var Magic = [2]byte{'B', 'E'}

// Header is the fixed-size header in front of a sealed payload.
//
// Layout, little-endian:
//
//	offset 0-1   magic "BE"
//	offset 2     version
//	offset 3     compression type
//	offset 4-7   length of the uncompressed payload
//	offset 8-15  xxHash64 of the uncompressed payload
type Header struct {
	Version     uint8
	Compression format.CompressionType
	RawLen      uint32
	Checksum    uint64
}

// AppendTo appends the serialized header to dst.
func (h Header) AppendTo(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = append(dst, Magic[0], Magic[1], h.Version, byte(h.Compression))
	dst = engine.AppendUint32(dst, h.RawLen)

	return engine.AppendUint64(dst, h.Checksum)
}

// Bytes serializes the header into a new slice of HeaderSize bytes.
func (h Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// ParseHeader parses and validates the header at the start of data.
//
// Parameters:
//   - data: Sealed envelope (at least HeaderSize bytes)
//
// Returns:
//   - Header: Parsed header
//   - error: ErrEnvelopeTooShort, ErrEnvelopeMagic, ErrEnvelopeVersion or
//     ErrInvalidCompression
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrEnvelopeTooShort, len(data))
	}
	if data[0] != Magic[0] || data[1] != Magic[1] {
		return Header{}, errs.ErrEnvelopeMagic
	}

	engine := endian.GetLittleEndianEngine()
	h := Header{
		Version:     data[2],
		Compression: format.CompressionType(data[3]),
		RawLen:      engine.Uint32(data[4:8]),
		Checksum:    engine.Uint64(data[8:16]),
	}

	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", errs.ErrEnvelopeVersion, h.Version)
	}
	if !h.Compression.Valid() {
		return Header{}, fmt.Errorf("%w: %d", errs.ErrInvalidCompression, data[3])
	}

	return h, nil
}
