// internal/bloom/filter.go
package bloom

import (
	"errors"

	"kmerbloom/internal/kmer"
)

// ErrSealed is returned by Build once the filter has been queried.
var ErrSealed = errors.New("bloom filter sealed: build after query")

// Filter runs the two phases of one index: Build with reference k-mers,
// then Count with query k-mers. The first Count seals the filter.
type Filter struct {
	bits   *BitArray
	sealed bool
}

// BuildStats summarises one Build call.
type BuildStats struct {
	Inserted int // k-mers whose forward hashes were written
	Skipped  int // k-mers already represented in either orientation
}

// New returns an empty filter with numSlots bits.
func New(numSlots uint64) *Filter {
	return &Filter{bits: NewBitArray(numSlots)}
}

// Bits exposes the underlying store for inspection.
func (f *Filter) Bits() *BitArray { return f.bits }

// Sealed reports whether Count has been called.
func (f *Filter) Sealed() bool { return f.sealed }

func (f *Filter) all(t kmer.Triplet) bool {
	return f.bits.Test(t[0]) && f.bits.Test(t[1]) && f.bits.Test(t[2])
}

// Contains reports whether either orientation of km is fully set.
func (f *Filter) Contains(km kmer.Kmer) bool {
	return f.all(km.Fwd) || f.all(km.Rev)
}

// Build inserts reference k-mers. A k-mer whose forward or reverse triplet
// is already fully set is skipped; otherwise only its forward triplet is
// written. Reverse hashes are never written.
func (f *Filter) Build(kms []kmer.Kmer) (BuildStats, error) {
	var st BuildStats
	if f.sealed {
		return st, ErrSealed
	}
	for i := range kms {
		if f.Contains(kms[i]) {
			st.Skipped++
			continue
		}
		t := kms[i].Fwd
		f.bits.Set(t[0])
		f.bits.Set(t[1])
		f.bits.Set(t[2])
		st.Inserted++
	}
	return st, nil
}

// Count returns how many query k-mers match in at least one orientation.
// Each k-mer contributes at most one.
func (f *Filter) Count(kms []kmer.Kmer) int {
	f.sealed = true
	n := 0
	for i := range kms {
		if f.Contains(kms[i]) {
			n++
		}
	}
	return n
}
