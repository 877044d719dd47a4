// Package envelope wraps canonical Bencode payloads for storage and
// transport: an optional compression layer plus a checksum over the
// canonical bytes.
//
// A sealed envelope is a 16-byte Header followed by the payload compressed
// with the codec named in the header. Open always returns exactly the bytes
// passed to Seal, so hashes computed over canonical output (info hashes,
// fingerprints) stay valid across a seal/open round trip.
package envelope

import (
	"fmt"

	"github.com/arloliu/bencode/compress"
	"github.com/arloliu/bencode/errs"
	"github.com/arloliu/bencode/format"
	"github.com/arloliu/bencode/internal/hash"
)

// Seal compresses payload with the given codec and prefixes the header.
//
// Parameters:
//   - payload: Canonical bytes to seal; not modified
//   - ctype: Compression applied to the payload
//
// Returns:
//   - []byte: Newly allocated envelope
//   - error: ErrInvalidCompression, ErrPayloadTooLarge or a codec error
func Seal(payload []byte, ctype format.CompressionType) ([]byte, error) {
	if uint64(len(payload)) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrPayloadTooLarge, len(payload))
	}

	codec, err := compress.CreateCodec(ctype, "envelope")
	if err != nil {
		return nil, err
	}

	body, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("envelope: compress: %w", err)
	}

	h := Header{
		Version:     Version,
		Compression: ctype,
		RawLen:      uint32(len(payload)), //nolint:gosec
		Checksum:    hash.Sum(payload),
	}

	out := make([]byte, 0, HeaderSize+len(body))
	out = h.AppendTo(out)

	return append(out, body...), nil
}

// Open verifies an envelope and returns the original payload.
//
// The payload of an uncompressed envelope shares memory with data.
//
// Parameters:
//   - data: Envelope produced by Seal
//
// Returns:
//   - []byte: The payload passed to Seal
//   - error: Header errors from ParseHeader, a codec error, ErrEnvelopeLength
//     or ErrChecksumMismatch
func Open(data []byte) ([]byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}

	payload, err := compress.DecompressSized(codec, data[HeaderSize:], int(h.RawLen))
	if err != nil {
		return nil, fmt.Errorf("envelope: decompress %s: %w", h.Compression, err)
	}

	if uint64(len(payload)) != uint64(h.RawLen) {
		return nil, fmt.Errorf("%w: header says %d, got %d", errs.ErrEnvelopeLength, h.RawLen, len(payload))
	}
	if sum := hash.Sum(payload); sum != h.Checksum {
		return nil, fmt.Errorf("%w: %016x != %016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	return payload, nil
}
