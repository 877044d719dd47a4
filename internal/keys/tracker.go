package keys

import (
	"bytes"

	"github.com/arloliu/bencode/internal/hash"
)

// Tracker detects dictionary keys that coerce to identical byte strings.
//
// Keys are bucketed by their xxHash64; a bucket hit is confirmed with a full
// byte comparison so hash collisions between distinct keys are never
// reported as duplicates.
type Tracker struct {
	buckets map[uint64][]int // hash -> slot indexes
	keys    [][]byte         // slot -> key bytes
	dups    int
}

// NewTracker creates a tracker sized for about capacity keys.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		buckets: make(map[uint64][]int, capacity),
		keys:    make([][]byte, 0, capacity),
	}
}

// Track records key and returns its slot.
//
// If the key was seen before, Track returns the slot assigned on first sight
// and dup is true; the caller decides how to resolve the duplicate.
// Otherwise a new slot equal to the number of distinct keys tracked so far
// is returned.
func (t *Tracker) Track(key []byte) (slot int, dup bool) {
	h := hash.Sum(key)

	for _, s := range t.buckets[h] {
		if bytes.Equal(t.keys[s], key) {
			t.dups++
			return s, true
		}
	}

	slot = len(t.keys)
	t.keys = append(t.keys, key)
	t.buckets[h] = append(t.buckets[h], slot)

	return slot, false
}

// Count returns the number of distinct keys tracked.
func (t *Tracker) Count() int {
	return len(t.keys)
}

// Duplicates returns how many Track calls hit an existing key.
func (t *Tracker) Duplicates() int {
	return t.dups
}

// Reset clears all tracked keys while keeping allocated capacity.
func (t *Tracker) Reset() {
	for k := range t.buckets {
		delete(t.buckets, k)
	}
	t.keys = t.keys[:0]
	t.dups = 0
}
