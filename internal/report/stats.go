// internal/report/stats.go
package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"kmerbloom/internal/pipeline"
)

// FractionStats summarises per-record match fractions. Records without
// k-mers are left out.
type FractionStats struct {
	Records int     `json:"records"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"stddev"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Fractions computes FractionStats over recs.
func Fractions(recs []pipeline.RecordMatch) FractionStats {
	xs := make([]float64, 0, len(recs))
	for _, r := range recs {
		if r.Kmers > 0 {
			xs = append(xs, r.Fraction())
		}
	}
	if len(xs) == 0 {
		return FractionStats{}
	}
	sort.Float64s(xs)
	fs := FractionStats{
		Records: len(xs),
		Median:  stat.Quantile(0.5, stat.Empirical, xs, nil),
		Min:     xs[0],
		Max:     xs[len(xs)-1],
	}
	if len(xs) > 1 {
		fs.Mean, fs.StdDev = stat.MeanStdDev(xs, nil)
	} else {
		fs.Mean = xs[0]
	}
	return fs
}

// falsePositiveRate is FP over the query k-mers absent from the reference.
func falsePositiveRate(queryKmers int, x *pipeline.ExactStats) float64 {
	neg := queryKmers - x.TruePositives
	if neg <= 0 {
		return 0
	}
	return float64(x.FalsePositives) / float64(neg)
}
