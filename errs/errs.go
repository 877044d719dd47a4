// Package errs defines the sentinel errors returned by the bencode packages.
//
// Callers should compare with errors.Is; most errors are wrapped with the
// location in the value graph where encoding stopped (see EncodeError).
package errs

import (
	"errors"
	"strings"
)

// Encoding errors.
var (
	// ErrInvalidInteger is returned when an integer value cannot be represented
	// without precision loss, e.g. a nil big integer or a non-integral number.
	ErrInvalidInteger = errors.New("invalid integer")
	// ErrDuplicateKey is returned when two dictionary keys coerce to the same byte string
	// and the encoder cannot (or is configured not to) resolve the collision.
	ErrDuplicateKey = errors.New("duplicate dictionary key")
	// ErrRecursionLimitExceeded is returned when the value graph nests deeper than
	// the configured maximum depth. Cyclic graphs always end up here.
	ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")
)

// Configuration errors.
var (
	ErrInvalidMaxDepth    = errors.New("max depth must be positive")
	ErrNilKeyComparator   = errors.New("key comparator must not be nil")
	ErrInvalidBufferSize  = errors.New("buffer size must not be negative")
	ErrInvalidCompression = errors.New("invalid compression type")
)

// Envelope errors.
var (
	ErrEnvelopeTooShort    = errors.New("envelope too short")
	ErrEnvelopeMagic       = errors.New("envelope magic mismatch")
	ErrEnvelopeVersion     = errors.New("unsupported envelope version")
	ErrEnvelopeLength      = errors.New("envelope payload length mismatch")
	ErrChecksumMismatch    = errors.New("envelope checksum mismatch")
	ErrPayloadTooLarge     = errors.New("payload too large for envelope")
	ErrUnsupportedDocument = errors.New("unsupported document")
)

// EncodeError reports the first failure encountered while encoding, together
// with the path of the offending value inside the root value.
//
// Path segments are dictionary keys joined by '.' and list indexes in
// brackets, e.g. "info.files[2].length". The root itself has an empty path.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return "bencode: " + e.Err.Error()
	}

	var sb strings.Builder
	sb.Grow(len(e.Path) + 16)
	sb.WriteString("bencode: ")
	sb.WriteString(e.Err.Error())
	sb.WriteString(" at ")
	sb.WriteString(e.Path)

	return sb.String()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
