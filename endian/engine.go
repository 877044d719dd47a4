// Package endian provides the byte order engine used for the fixed-size
// fields of envelope headers.
//
// Bencode itself has no binary integers: every number is decimal text. Byte
// order only matters for the envelope that wraps persisted payloads, which
// is always little-endian:
//
//	engine := endian.GetLittleEndianEngine()
//	header = engine.AppendUint32(header, uint32(len(payload)))
//
// All functions are safe for concurrent use; the returned engines are
// immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
