package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of data: a dictionary key or an encoded payload.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates an xxHash64 over payload chunks written in sequence.
// It is an io.Writer, so an encoder can stream into it.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns an empty streaming digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds p to the running hash. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

// Sum64 returns the hash of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
