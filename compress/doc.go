// Package compress provides the compression codecs used by the envelope
// package to store canonical Bencode payloads.
//
// Compression never touches the canonical bytes themselves: a payload is
// encoded first, then compressed, and Decompress returns exactly the bytes
// that were encoded. Info hashes and fingerprints are always computed over
// the uncompressed form.
//
// # Supported Algorithms
//
//   - format.CompressionNone: NoOpCompressor, payload stored as is
//   - format.CompressionZstd: ZstdCompressor, best ratio
//   - format.CompressionS2: S2Compressor, balanced speed and ratio
//   - format.CompressionLZ4: LZ4Compressor, fastest decompression
//
// Codecs are stateless values; the Zstd and LZ4 implementations keep pooled
// encoder state internally and are safe for concurrent use.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(packed)
//
// # Zstd Implementations
//
// The default build uses github.com/klauspost/compress/zstd. Building with
// -tags gozstd and cgo enabled swaps in github.com/valyala/gozstd, which
// binds the reference C library. Both produce standard Zstandard frames.
package compress
