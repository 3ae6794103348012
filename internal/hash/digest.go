// Package hash wraps xxHash64 for structural value hashing.
package hash

import (
	"github.com/cespare/xxhash/v2"
)

// Digest accumulates a structural hash.
//
// Every write is prefixed so that adjacent fields cannot collide by shifting
// bytes between them: byte strings carry their length, scalars are fixed width.
type Digest struct {
	d   *xxhash.Digest
	buf [8]byte
}

// New returns a fresh Digest.
func New() *Digest {
	return &Digest{d: xxhash.New()}
}

// Reset clears the digest for reuse.
func (h *Digest) Reset() {
	h.d.Reset()
}

// Tag writes a single discriminator byte.
func (h *Digest) Tag(b byte) {
	h.buf[0] = b
	_, _ = h.d.Write(h.buf[:1])
}

// Uint64 writes v as 8 little-endian bytes.
func (h *Digest) Uint64(v uint64) {
	for i := range 8 {
		h.buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.d.Write(h.buf[:8])
}

// Bytes writes len(data) followed by data.
func (h *Digest) Bytes(data []byte) {
	h.Uint64(uint64(len(data)))
	_, _ = h.d.Write(data)
}

// Sum64 returns the current hash.
func (h *Digest) Sum64() uint64 {
	return h.d.Sum64()
}
