package compress

import (
	"fmt"

	"github.com/arloliu/bencode/errs"
	"github.com/arloliu/bencode/format"
)

// Compressor compresses canonical Bencode payloads.
type Compressor interface {
	// Compress returns the compressed form of data.
	//
	// The returned slice is owned by the caller unless documented otherwise
	// by the implementation; data is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes of a payload produced by the
	// matching Compressor. Corrupted input or input from another algorithm
	// yields an error.
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor is implemented by codecs that can use the payload length
// recorded in an envelope header to size their output in one allocation.
// A payload that would decompress past size fails with errs.ErrEnvelopeLength
// before the extra bytes are produced, where the algorithm allows it.
type SizedDecompressor interface {
	DecompressSized(data []byte, size int) ([]byte, error)
}

// DecompressSized decompresses data with d, passing the expected size on
// when d is a SizedDecompressor.
func DecompressSized(d Decompressor, data []byte, size int) ([]byte, error) {
	if sd, ok := d.(SizedDecompressor); ok {
		return sd.DecompressSized(data, size)
	}

	return d.Decompress(data)
}

// presizeLimit caps buffers allocated up front from a declared size.
const presizeLimit = 128 * 1024 * 1024

func sizeMismatch(codec string, got, want int) error {
	return fmt.Errorf("%s: %w: payload is %d bytes, header says %d", codec, errs.ErrEnvelopeLength, got, want)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
