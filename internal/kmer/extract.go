// internal/kmer/extract.go
package kmer

import (
	"context"
	"fmt"
	"slices"

	"kmerbloom/internal/nucleotide"
)

// Kmer is one window of one sequence, encoded in both orientations.
type Kmer struct {
	Forward uint64 // window read left to right, position 0 least significant
	Reverse uint64 // window read right to left
	Fwd     Triplet
	Rev     Triplet
}

// Count returns how many k-mers a sequence of length n yields.
func Count(n, k int) int {
	if k < 1 || n < k {
		return 0
	}
	return n - k + 1
}

// Extract calls fn for every window of seq, left to right.
// Sequences shorter than K yield nothing.
//
// Both encodings are rolled one base per step; the result equals the
// positional sums
//
//	Forward = Σ code(seq[i+j]) · 4^j
//	Reverse = Σ code(seq[i+K-1-j]) · 4^j
//
// with code complemented in Reverse when p.ReverseComplement is set.
func Extract(seq []byte, p Params, fn func(Kmer)) {
	k := p.K
	if Count(len(seq), k) == 0 {
		return
	}
	top := 2 * uint(k-1)
	mask := p.mask()
	var fwd, rev uint64
	for i, b := range seq {
		c := nucleotide.Code(b)
		rc := c
		if p.ReverseComplement {
			rc = nucleotide.ComplementCode(c)
		}
		fwd = fwd>>2 | c<<top
		rev = (rev<<2 | rc) & mask
		if i < k-1 {
			continue
		}
		fn(Kmer{Forward: fwd, Reverse: rev, Fwd: p.Hashes(fwd), Rev: p.Hashes(rev)})
	}
}

// AppendKmers appends the k-mers of seq to dst.
func AppendKmers(dst []Kmer, seq []byte, p Params) []Kmer {
	dst = slices.Grow(dst, Count(len(seq), p.K))
	Extract(seq, p, func(km Kmer) { dst = append(dst, km) })
	return dst
}

// Sequence is the extractor's view of one input record.
type Sequence struct {
	ID  string
	Seq []byte
}

// Span locates the k-mers of one sequence inside Batch.Kmers.
type Span struct {
	ID         string
	Start, End int
}

func (s Span) Len() int { return s.End - s.Start }

// Batch is every k-mer of a sequence list, grouped by sequence.
type Batch struct {
	Kmers []Kmer
	Spans []Span
}

// Of returns the k-mers of the i-th sequence.
func (b *Batch) Of(i int) []Kmer {
	s := b.Spans[i]
	return b.Kmers[s.Start:s.End]
}

// Short returns the IDs of sequences that were shorter than K.
func (b *Batch) Short() []string {
	var ids []string
	for _, s := range b.Spans {
		if s.Len() == 0 {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// ExtractAll extracts the k-mers of every sequence. In strict mode a
// sequence holding a non-ACGT symbol fails the whole call. ErrNoKmers is
// returned when every sequence is shorter than K.
func ExtractAll(ctx context.Context, seqs []Sequence, p Params) (Batch, error) {
	total := 0
	for _, s := range seqs {
		total += Count(len(s.Seq), p.K)
	}
	b := Batch{
		Kmers: make([]Kmer, 0, total),
		Spans: make([]Span, 0, len(seqs)),
	}
	for _, s := range seqs {
		if err := ctx.Err(); err != nil {
			return Batch{}, err
		}
		if p.Strict {
			if err := nucleotide.Validate(s.Seq); err != nil {
				return Batch{}, fmt.Errorf("sequence %q: %w", s.ID, err)
			}
		}
		start := len(b.Kmers)
		b.Kmers = AppendKmers(b.Kmers, s.Seq, p)
		b.Spans = append(b.Spans, Span{ID: s.ID, Start: start, End: len(b.Kmers)})
	}
	if len(b.Kmers) == 0 {
		return b, fmt.Errorf("%w: all %d sequence(s) shorter than k=%d", ErrNoKmers, len(seqs), p.K)
	}
	return b, nil
}
