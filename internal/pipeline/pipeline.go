// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"kmerbloom/internal/audit"
	"kmerbloom/internal/bloom"
	"kmerbloom/internal/fasta"
	"kmerbloom/internal/kmer"
	"kmerbloom/internal/logging"
)

// Config controls one run.
type Config struct {
	Reference  string // reference FASTA path ("-" = stdin)
	Query      string // query FASTA path ("-" = stdin)
	K          int    // k-mer length
	BloomBytes uint64 // filter size in bytes

	ReverseComplement bool // complement bases of the reverse orientation
	Strict            bool // reject non-ACGT symbols
	Exact             bool // count true/false positives with an exact index
	PerRecord         bool // report matches per query record
}

// RecordMatch is the outcome for one query record.
type RecordMatch struct {
	ID      string
	Kmers   int
	Matches int
}

// Fraction is Matches/Kmers, or 0 for a record without k-mers.
func (r RecordMatch) Fraction() float64 {
	if r.Kmers == 0 {
		return 0
	}
	return float64(r.Matches) / float64(r.Kmers)
}

// ExactStats compares the filter's answer against the exact reference set.
type ExactStats struct {
	DistinctReference uint64
	TruePositives     int
	FalsePositives    int
}

// Summary is everything a run reports.
type Summary struct {
	ReferenceKmers int
	QueryKmers     int
	Matches        int

	Params    kmer.Params
	Inserted  int
	Skipped   int
	SetBits   uint64
	FillRatio float64

	Exact   *ExactStats
	Records []RecordMatch
}

// Run executes the load, build and test phases.
func Run(ctx context.Context, cfg Config, log *logging.Logger) (Summary, error) {
	if log == nil {
		log = logging.Nop()
	}
	p, err := kmer.NewParams(cfg.K, cfg.BloomBytes,
		kmer.WithReverseComplement(cfg.ReverseComplement),
		kmer.WithStrict(cfg.Strict),
	)
	if err != nil {
		return Summary{}, err
	}

	refRecs, queryRecs, err := load(ctx, cfg, log)
	if err != nil {
		return Summary{}, err
	}

	ref, err := extract(ctx, "reference", cfg.Reference, refRecs, p, log)
	if err != nil {
		return Summary{}, err
	}
	query, err := extract(ctx, "query", cfg.Query, queryRecs, p, log)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		ReferenceKmers: len(ref.Kmers),
		QueryKmers:     len(query.Kmers),
		Params:         p,
	}

	log.LogFilter(ctx, p.NumSlots, p.Prime, p.K)
	f := bloom.New(p.NumSlots)

	start := time.Now()
	st, err := f.Build(ref.Kmers)
	if err != nil {
		return Summary{}, err
	}
	sum.Inserted, sum.Skipped = st.Inserted, st.Skipped
	sum.SetBits = f.Bits().Count()
	sum.FillRatio = f.Bits().FillRatio()
	log.LogPhase(ctx, "build", len(ref.Kmers), time.Since(start),
		"inserted", st.Inserted, "skipped", st.Skipped, "fill_ratio", sum.FillRatio)

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	start = time.Now()
	if cfg.PerRecord {
		sum.Records = make([]RecordMatch, len(query.Spans))
		for i, sp := range query.Spans {
			m := f.Count(query.Of(i))
			sum.Records[i] = RecordMatch{ID: sp.ID, Kmers: sp.Len(), Matches: m}
			sum.Matches += m
		}
	} else {
		sum.Matches = f.Count(query.Kmers)
	}
	log.LogPhase(ctx, "test", len(query.Kmers), time.Since(start), "matches", sum.Matches)

	if cfg.Exact {
		x := audit.NewIndex(ref.Kmers)
		tp := x.TruePositives(query.Kmers)
		sum.Exact = &ExactStats{
			DistinctReference: x.Distinct(),
			TruePositives:     tp,
			FalsePositives:    sum.Matches - tp,
		}
		log.DebugContext(ctx, "exact audit", "distinct", x.Distinct(), "true_positives", tp, "index_bytes", x.SizeInBytes())
	}
	return sum, nil
}

// load reads both inputs concurrently; the first failure cancels the other.
func load(ctx context.Context, cfg Config, log *logging.Logger) (ref, query []fasta.Record, err error) {
	g, gctx := errgroup.WithContext(ctx)
	read := func(role, path string, dst *[]fasta.Record) func() error {
		return func() error {
			start := time.Now()
			recs, err := fasta.ReadAll(gctx, path)
			if err != nil {
				return err
			}
			*dst = recs
			log.LogLoad(gctx, role, path, len(recs), fasta.TotalLen(recs), time.Since(start))
			return nil
		}
	}
	g.Go(read("reference", cfg.Reference, &ref))
	g.Go(read("query", cfg.Query, &query))
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ref, query, nil
}

func extract(ctx context.Context, role, path string, recs []fasta.Record, p kmer.Params, log *logging.Logger) (kmer.Batch, error) {
	seqs := make([]kmer.Sequence, len(recs))
	for i, r := range recs {
		seqs[i] = kmer.Sequence(r)
	}
	b, err := kmer.ExtractAll(ctx, seqs, p)
	if err != nil {
		return kmer.Batch{}, &InputError{Role: role, Path: path, Err: err}
	}
	log.LogShort(ctx, role, p.K, b.Short())
	return b, nil
}
