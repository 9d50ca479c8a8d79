// internal/fasta/reader.go
package fasta

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmpty is returned by ReadAll when a file holds no records.
var ErrEmpty = errors.New("no FASTA records")

// Record is one parsed FASTA sequence.
type Record struct {
	ID  string
	Seq []byte
}

// StreamPath opens path ("-" for stdin, optionally compressed) and streams
// its records to emit.
func StreamPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := Stream(ctx, rc, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadAll loads every record of path into memory.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var recs []Record
	err := StreamPath(ctx, path, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return recs, nil
}

// TotalLen sums the sequence lengths of recs.
func TotalLen(recs []Record) int {
	n := 0
	for _, r := range recs {
		n += len(r.Seq)
	}
	return n
}
