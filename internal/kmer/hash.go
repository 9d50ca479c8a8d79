// internal/kmer/hash.go
package kmer

import (
	"math"
	"math/bits"
)

// Triplet holds the A, B and C hash of one encoding, in that order.
type Triplet [3]uint64

// HashA buckets code proportionally: floor(code / 4^K * NumSlots).
// The product is formed in 128 bits, so the result is exact for every K.
func (p Params) HashA(code uint64) uint64 {
	hi, lo := bits.Mul64(code, p.NumSlots)
	s := 2 * uint(p.K)
	if s >= 64 {
		return hi
	}
	return hi<<(64-s) | lo>>s
}

// HashB is the division method: code mod Prime.
func (p Params) HashB(code uint64) uint64 { return code % p.Prime }

// HashC is Knuth's multiplicative method: floor(NumSlots * frac(code * Golden)).
func (p Params) HashC(code uint64) uint64 {
	v := float64(code) * p.Golden
	frac := v - math.Floor(v)
	h := uint64(math.Floor(float64(p.NumSlots) * frac))
	if h >= p.NumSlots {
		h = p.NumSlots - 1
	}
	return h
}

// Hashes returns the three hash projections of code.
func (p Params) Hashes(code uint64) Triplet {
	return Triplet{p.HashA(code), p.HashB(code), p.HashC(code)}
}
