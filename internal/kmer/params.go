// internal/kmer/params.go
package kmer

import (
	"errors"
	"fmt"
	"math"

	"kmerbloom/internal/prime"
)

const (
	// MaxK is the longest k-mer whose 2-bit encoding fits a uint64.
	MaxK = 32
	// MaxBloomBytes bounds the filter so slot indices stay exact in float64.
	MaxBloomBytes = 1 << 40
)

var (
	ErrKmerLength = errors.New("k-mer length out of range")
	ErrBloomSize  = errors.New("bloom filter size out of range")
	ErrNoKmers    = errors.New("no k-mers extracted")
)

// Golden is (√5 − 1)/2, the multiplier of the multiplicative hash family.
var Golden = (math.Sqrt(5) - 1) / 2

// Params carries the k-mer length and every value derived from the filter size.
type Params struct {
	K           int
	NumSlots    uint64  // filter size in bits
	Prime       uint64  // modulus of hash family B
	Golden      float64 // multiplier of hash family C
	MaxEncoding float64 // 4^K

	// ReverseComplement complements each base of the reverse orientation.
	// Off by default: the reverse code is the window read backwards only.
	ReverseComplement bool
	// Strict rejects sequences that contain symbols other than A/C/G/T.
	Strict bool
}

// Option tweaks Params built by NewParams.
type Option func(*Params)

func WithReverseComplement(on bool) Option { return func(p *Params) { p.ReverseComplement = on } }

func WithStrict(on bool) Option { return func(p *Params) { p.Strict = on } }

// NewParams validates k and the filter size and derives the hash parameters.
func NewParams(k int, bloomBytes uint64, opts ...Option) (Params, error) {
	if k < 1 || k > MaxK {
		return Params{}, fmt.Errorf("%w: %d (want 1..%d)", ErrKmerLength, k, MaxK)
	}
	if bloomBytes < 1 || bloomBytes > MaxBloomBytes {
		return Params{}, fmt.Errorf("%w: %d bytes (want 1..%d)", ErrBloomSize, bloomBytes, uint64(MaxBloomBytes))
	}
	slots := bloomBytes * 8
	pr, err := prime.SmallerPrime(slots)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrBloomSize, err)
	}
	p := Params{
		K:           k,
		NumSlots:    slots,
		Prime:       pr,
		Golden:      Golden,
		MaxEncoding: math.Pow(4, float64(k)),
	}
	for _, o := range opts {
		o(&p)
	}
	return p, nil
}

// mask keeps the low 2K bits of an encoding.
func (p Params) mask() uint64 {
	if p.K >= MaxK {
		return ^uint64(0)
	}
	return 1<<(2*uint(p.K)) - 1
}
