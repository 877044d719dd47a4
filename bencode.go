// Package bencode produces canonical Bencode, the serialization format of
// BitTorrent metainfo files and tracker responses.
//
// Canonical means the output is a pure function of the logical value:
// dictionary keys are sorted by raw bytes, integers are minimal decimal
// text, and any Go value is classified into exactly one of the four
// Bencode types. Two logically equal inputs always encode to identical
// bytes, which is what makes hashes over the encoding (info hashes) stable.
//
// # Basic Usage
//
//	out, err := bencode.Encode(map[string]any{
//	    "cow":   "moo",
//	    "zebra": "world",
//	})
//	// out == "d3:cow3:moo5:zebra5:worlde"
//
// Lists, dictionaries and integers are inferred from the Go type:
//
//	bencode.Encode([]string{"spam", "eggs"})        // l4:spam4:eggse
//	bencode.Encode(map[int]string{0: "a", 1: "b"}) // l1:a1:be
//	bencode.Encode(-5)                              // i-5e
//
// Use value.AsList to force a list, value.NewDict for ordered dictionaries
// with last-write-wins duplicate keys, and struct tags ("bencode") to name
// dictionary keys of struct fields.
//
// # Package Structure
//
// This package wraps the encoder, envelope and hash packages for the most
// common cases. For repeated encodings of one value, logging or custom key
// order, use the encoder package directly.
package bencode

import (
	"crypto/sha1" //nolint:gosec
	"io"

	"github.com/arloliu/bencode/encoder"
	"github.com/arloliu/bencode/envelope"
	"github.com/arloliu/bencode/format"
	"github.com/arloliu/bencode/internal/hash"
	"github.com/arloliu/bencode/internal/options"
)

// Encode returns the canonical encoding of v.
//
// Parameters:
//   - v: Any Go value (see value.Classify for how it maps to Bencode)
//   - opts: Encoder options
//
// Returns:
//   - []byte: Newly allocated canonical encoding
//   - error: Option error, or an *errs.EncodeError
func Encode(v any, opts ...encoder.EncoderOption) ([]byte, error) {
	enc, err := encoder.NewEncoder(v, opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode()
}

// EncodeTo writes the canonical encoding of v to w. Nothing is written if
// encoding fails.
func EncodeTo(w io.Writer, v any, opts ...encoder.EncoderOption) (int64, error) {
	enc, err := encoder.NewEncoder(v, opts...)
	if err != nil {
		return 0, err
	}

	return enc.EncodeTo(w)
}

// NewEncoder creates a reusable encoder for v.
//
// Parameters:
//   - v: Root value; borrowed, not copied
//   - opts: Encoder options
//
// Returns:
//   - *encoder.Encoder: Encoder safe for concurrent Encode calls
//   - error: Option error
func NewEncoder(v any, opts ...encoder.EncoderOption) (*encoder.Encoder, error) {
	return encoder.NewEncoder(v, opts...)
}

// infoHashDefaults apply before caller options in InfoHash.
var infoHashDefaults = []encoder.EncoderOption{
	encoder.WithStrictKeys(true),
}

// InfoHash returns the SHA-1 of the canonical encoding of info, the
// BitTorrent v1 info hash when info is the "info" dictionary of a
// metainfo file.
//
// Duplicate keys are an error by default, since an identity hash must not
// depend on which duplicate happened to win. Pass
// encoder.WithStrictKeys(false) to resolve them instead.
func InfoHash(info any, opts ...encoder.EncoderOption) ([sha1.Size]byte, error) {
	out, err := Encode(info, options.Join(infoHashDefaults, opts)...)
	if err != nil {
		return [sha1.Size]byte{}, err
	}

	return sha1.Sum(out), nil //nolint:gosec
}

// Fingerprint returns the xxHash64 of the canonical encoding of v.
//
// Equal fingerprints identify logically equal values regardless of map
// iteration order or key insertion order, which makes it usable as a cache
// or deduplication key.
func Fingerprint(v any, opts ...encoder.EncoderOption) (uint64, error) {
	enc, err := encoder.NewEncoder(v, opts...)
	if err != nil {
		return 0, err
	}

	d := hash.NewDigest()
	if _, err := enc.EncodeTo(d); err != nil {
		return 0, err
	}

	return d.Sum64(), nil
}

// Pack encodes v and seals the canonical bytes into a compressed,
// checksummed envelope.
//
// Parameters:
//   - v: Value to encode
//   - ctype: Envelope compression
//   - opts: Encoder options
//
// Returns:
//   - []byte: Sealed envelope
//   - error: Encoding or envelope error
func Pack(v any, ctype format.CompressionType, opts ...encoder.EncoderOption) ([]byte, error) {
	out, err := Encode(v, opts...)
	if err != nil {
		return nil, err
	}

	return envelope.Seal(out, ctype)
}

// Unpack verifies an envelope produced by Pack and returns the canonical
// bytes it holds.
func Unpack(data []byte) ([]byte, error) {
	return envelope.Open(data)
}
