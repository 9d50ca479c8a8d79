// Package audit keeps an exact set of reference k-mers next to the Bloom
// filter so a run can tell true matches from false positives.
package audit

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"kmerbloom/internal/kmer"
)

// Index is the exact set of reference forward codes.
type Index struct {
	rb *roaring64.Bitmap
}

// NewIndex records the forward code of every reference k-mer.
func NewIndex(ref []kmer.Kmer) *Index {
	rb := roaring64.New()
	for i := range ref {
		rb.Add(ref[i].Forward)
	}
	rb.RunOptimize()
	return &Index{rb: rb}
}

// Distinct is the number of distinct reference k-mers.
func (x *Index) Distinct() uint64 { return x.rb.GetCardinality() }

// Has reports whether km occurs in the reference in either orientation.
// The reverse reading is an involution, so checking both codes against
// the forward set is enough.
func (x *Index) Has(km kmer.Kmer) bool {
	return x.rb.Contains(km.Forward) || x.rb.Contains(km.Reverse)
}

// TruePositives counts the query k-mers that Has reports.
func (x *Index) TruePositives(query []kmer.Kmer) int {
	n := 0
	for i := range query {
		if x.Has(query[i]) {
			n++
		}
	}
	return n
}

// SizeInBytes is the serialized size of the exact set.
func (x *Index) SizeInBytes() uint64 { return x.rb.GetSizeInBytes() }
