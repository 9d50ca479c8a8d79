// internal/nucleotide/codec.go
package nucleotide

import (
	"errors"
	"fmt"
)

// 2-bit nucleotide codes.
const (
	A uint64 = 0
	C uint64 = 1
	G uint64 = 2
	T uint64 = 3
)

// ErrInvalidSymbol is matched by every *SymbolError.
var ErrInvalidSymbol = errors.New("invalid nucleotide symbol")

// Code maps a nucleotide symbol to its 2-bit code: A→0, C→1, G→2.
// Every other byte, T included, maps to 3. Callers that must not alias
// unknown symbols to T run Validate first.
func Code(b byte) uint64 {
	switch b {
	case 'A':
		return A
	case 'C':
		return C
	case 'G':
		return G
	default:
		return T
	}
}

// ComplementCode returns the code of the Watson-Crick partner (A↔T, C↔G).
func ComplementCode(c uint64) uint64 { return T - c }

// Valid reports whether b is one of A, C, G, T.
func Valid(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}

// SymbolError reports the first non-ACGT byte of a sequence.
type SymbolError struct {
	Offset int
	Symbol byte
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%v %q at offset %d", ErrInvalidSymbol, e.Symbol, e.Offset)
}

func (e *SymbolError) Unwrap() error { return ErrInvalidSymbol }

// Validate returns a *SymbolError for the first byte of seq outside A/C/G/T.
func Validate(seq []byte) error {
	for i, b := range seq {
		if !Valid(b) {
			return &SymbolError{Offset: i, Symbol: b}
		}
	}
	return nil
}
