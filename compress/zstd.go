package compress

// ZstdCompressor provides Zstandard compression, the best ratio of the
// built-in codecs. Bencode payloads dominated by repeated dictionary keys
// and piece hashes compress well with it.
//
// The default build uses the pure Go klauspost/compress implementation.
// Building with the gozstd tag (and cgo) switches to the libzstd binding.
type ZstdCompressor struct{}

var (
	_ Codec             = (*ZstdCompressor)(nil)
	_ SizedDecompressor = (*ZstdCompressor)(nil)
)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
