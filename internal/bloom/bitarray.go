// internal/bloom/bitarray.go
package bloom

import "math/bits"

const (
	wordBits = 32           // bits per word
	div32    = 5            // k >> div32 == k / 32
	mod32    = wordBits - 1 // k & mod32 == k % 32
)

// BitArray is a fixed-size bit vector packed into 32-bit words.
// Bits are only ever set; nothing clears them.
type BitArray struct {
	words []uint32
	n     uint64
}

// NewBitArray allocates ceil(n/32) zeroed words.
func NewBitArray(n uint64) *BitArray {
	return &BitArray{
		words: make([]uint32, (n+mod32)>>div32),
		n:     n,
	}
}

// Set sets bit k. k must be below Len.
func (b *BitArray) Set(k uint64) {
	b.words[k>>div32] |= 1 << (k & mod32)
}

// Test reports whether bit k is set.
func (b *BitArray) Test(k uint64) bool {
	return b.words[k>>div32]&(1<<(k&mod32)) != 0
}

// Len is the number of addressable bits.
func (b *BitArray) Len() uint64 { return b.n }

// Words returns a copy of the backing words.
func (b *BitArray) Words() []uint32 {
	return append([]uint32(nil), b.words...)
}

// Count returns the number of set bits.
func (b *BitArray) Count() uint64 {
	var c uint64
	for _, w := range b.words {
		c += uint64(bits.OnesCount32(w))
	}
	return c
}

// FillRatio is Count/Len.
func (b *BitArray) FillRatio() float64 {
	if b.n == 0 {
		return 0
	}
	return float64(b.Count()) / float64(b.n)
}
