// internal/pipeline/errors.go
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"

	"kmerbloom/internal/fasta"
	"kmerbloom/internal/kmer"
	"kmerbloom/internal/nucleotide"
	"kmerbloom/internal/prime"
)

// InputError ties an extraction failure to the input it came from.
type InputError struct {
	Role string // "reference" or "query"
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Role, e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

var inputErrs = []error{
	kmer.ErrKmerLength,
	kmer.ErrBloomSize,
	kmer.ErrNoKmers,
	prime.ErrNoPrime,
	nucleotide.ErrInvalidSymbol,
	fasta.ErrEmpty,
	fs.ErrNotExist,
	fs.ErrPermission,
}

// IsInputError reports whether err stems from bad arguments or input files
// rather than a runtime failure.
func IsInputError(err error) bool {
	for _, target := range inputErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
