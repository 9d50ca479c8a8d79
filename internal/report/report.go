// Package report renders a run summary for the console.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"kmerbloom/internal/pipeline"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders s in the given format.
func Write(w io.Writer, format string, s pipeline.Summary) error {
	switch format {
	case FormatText, "":
		return WriteText(w, s)
	case FormatJSON:
		return WriteJSON(w, s)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteText prints the three counts, then the optional exact and
// per-record sections.
func WriteText(w io.Writer, s pipeline.Summary) error {
	p := &errWriter{w: w}
	p.printf("Number of k-mers indexed in reference: %d\n", s.ReferenceKmers)
	p.printf("Number of k-mers scanned in query: %d\n", s.QueryKmers)
	p.printf("Number of k-mers from query found in the reference: %d\n", s.Matches)

	if s.Exact != nil {
		p.printf("\nBloom filter: %s, %d of %d bits set (%.2f%%)\n",
			humanize.IBytes(s.Params.NumSlots/8), s.SetBits, s.Params.NumSlots, 100*s.FillRatio)
		p.printf("Distinct reference k-mers: %d\n", s.Exact.DistinctReference)
		p.printf("True positives: %d\n", s.Exact.TruePositives)
		p.printf("False positives: %d (rate %.4f)\n", s.Exact.FalsePositives, falsePositiveRate(s.QueryKmers, s.Exact))
	}

	if s.Records != nil {
		fs := Fractions(s.Records)
		p.printf("\nPer-record match fraction over %d record(s): mean %.4f, sd %.4f, median %.4f, min %.4f, max %.4f\n",
			fs.Records, fs.Mean, fs.StdDev, fs.Median, fs.Min, fs.Max)
		p.printf("record\tkmers\tmatches\tfraction\n")
		for _, r := range s.Records {
			p.printf("%s\t%d\t%d\t%.4f\n", r.ID, r.Kmers, r.Matches, r.Fraction())
		}
	}
	return p.err
}

type jsonRecord struct {
	ID       string  `json:"id"`
	Kmers    int     `json:"kmers"`
	Matches  int     `json:"matches"`
	Fraction float64 `json:"fraction"`
}

type jsonExact struct {
	DistinctReference uint64  `json:"distinct_reference_kmers"`
	TruePositives     int     `json:"true_positives"`
	FalsePositives    int     `json:"false_positives"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
}

type jsonSummary struct {
	ReferenceKmers int `json:"reference_kmers"`
	QueryKmers     int `json:"query_kmers"`
	Matches        int `json:"matches"`

	K                 int     `json:"k"`
	Slots             uint64  `json:"slots"`
	Prime             uint64  `json:"prime"`
	ReverseComplement bool    `json:"reverse_complement"`
	Inserted          int     `json:"inserted"`
	Skipped           int     `json:"skipped"`
	SetBits           uint64  `json:"set_bits"`
	FillRatio         float64 `json:"fill_ratio"`

	Exact     *jsonExact     `json:"exact,omitempty"`
	Fractions *FractionStats `json:"fractions,omitempty"`
	Records   []jsonRecord   `json:"records,omitempty"`
}

// WriteJSON prints s as one JSON object.
func WriteJSON(w io.Writer, s pipeline.Summary) error {
	out := jsonSummary{
		ReferenceKmers:    s.ReferenceKmers,
		QueryKmers:        s.QueryKmers,
		Matches:           s.Matches,
		K:                 s.Params.K,
		Slots:             s.Params.NumSlots,
		Prime:             s.Params.Prime,
		ReverseComplement: s.Params.ReverseComplement,
		Inserted:          s.Inserted,
		Skipped:           s.Skipped,
		SetBits:           s.SetBits,
		FillRatio:         s.FillRatio,
	}
	if s.Exact != nil {
		out.Exact = &jsonExact{
			DistinctReference: s.Exact.DistinctReference,
			TruePositives:     s.Exact.TruePositives,
			FalsePositives:    s.Exact.FalsePositives,
			FalsePositiveRate: falsePositiveRate(s.QueryKmers, s.Exact),
		}
	}
	if s.Records != nil {
		fs := Fractions(s.Records)
		out.Fractions = &fs
		out.Records = make([]jsonRecord, len(s.Records))
		for i, r := range s.Records {
			out.Records[i] = jsonRecord{ID: r.ID, Kmers: r.Kmers, Matches: r.Matches, Fraction: r.Fraction()}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// errWriter keeps the first write error so the caller checks once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}
