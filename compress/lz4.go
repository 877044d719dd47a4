package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/bencode/errs"
)

// lz4MaxDecompressedSize caps Decompress when the decoded length is not
// known.
const lz4MaxDecompressedSize = presizeLimit

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses payloads as raw LZ4 blocks.
//
// A raw block does not record its decoded length. Inside an envelope the
// header supplies it, and DecompressSized decodes into a buffer of exactly
// that size. Decompress, for blocks without a header, grows its buffer until
// the block fits.
type LZ4Compressor struct{}

var (
	_ Codec             = (*LZ4Compressor)(nil)
	_ SizedDecompressor = (*LZ4Compressor)(nil)
)

// NewLZ4Compressor creates an LZ4 codec.
//
// Returns:
//   - LZ4Compressor: New LZ4 codec
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress returns data as one raw LZ4 block.
//
// Parameters:
//   - data: Canonical payload to compress
//
// Returns:
//   - []byte: Compressed block (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:n], nil
}

// Decompress decodes a raw LZ4 block of unknown decoded length.
//
// The buffer starts at four times the block size and doubles on
// lz4.ErrInvalidSourceShortBuffer, up to lz4MaxDecompressedSize.
//
// Parameters:
//   - data: Compressed block
//
// Returns:
//   - []byte: Decoded payload (nil if input is empty)
//   - error: lz4.ErrInvalidSourceShortBuffer past the cap, or a decoding error
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for bufSize := len(data) * 4; bufSize <= lz4MaxDecompressedSize; bufSize *= 2 {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
	}

	return nil, fmt.Errorf("lz4 decompression failed: %w", lz4.ErrInvalidSourceShortBuffer)
}

// DecompressSized decodes a raw LZ4 block into a buffer of size bytes. A
// block that needs more room fails with errs.ErrEnvelopeLength.
func (c LZ4Compressor) DecompressSized(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, sizeMismatch("lz4", 0, size)
		}

		return nil, nil
	}

	if size > lz4MaxDecompressedSize {
		return nil, fmt.Errorf("lz4: %w: %d bytes", errs.ErrPayloadTooLarge, size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
		return nil, fmt.Errorf("lz4: %w: block decodes past %d bytes", errs.ErrEnvelopeLength, size)
	}
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return buf[:n], nil
}
