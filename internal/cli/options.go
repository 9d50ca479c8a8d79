// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"kmerbloom/internal/cliutil"
	"kmerbloom/internal/logging"
	"kmerbloom/internal/pipeline"
	"kmerbloom/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Reference string
	Query     string

	// Index
	K          int
	BloomBytes uint64
	RevComp    bool
	Strict     bool

	// Output
	Output    string // text|json
	Exact     bool
	PerRecord bool

	// Misc
	LogLevel  string
	LogFormat string
	Quiet     bool
	Version   bool
}

// NewFlagSet returns a FlagSet with ContinueOnError and the tool's usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() { usage(fs.Output(), name, fs) }
	return fs
}

func usage(out io.Writer, name string, fs *flag.FlagSet) {
	def := func(flagName string) string {
		if f := fs.Lookup(flagName); f != nil {
			return f.DefValue
		}
		return ""
	}
	fmt.Fprintf(out, "%s – k-mer Bloom filter membership\n\n", name)
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %s -r REF.fa -q QUERY.fa -k LEN -b BYTES\n", name)
	fmt.Fprintf(out, "  %s [options] -k LEN -b BYTES REF.fa QUERY.fa\n", name)

	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "  -r, --reference file        Reference FASTA (plain, .gz, .zst, .lz4 or '-') [*]")
	fmt.Fprintln(out, "  -q, --query file            Query FASTA (plain, .gz, .zst, .lz4 or '-') [*]")

	fmt.Fprintln(out, "\nIndex:")
	fmt.Fprintln(out, "  -k, --kmer-length int       k-mer length, 1..32 [*]")
	fmt.Fprintln(out, "  -b, --bloom-bytes int       Bloom filter size in bytes [*]")
	fmt.Fprintf(out, "      --revcomp               Complement bases of the reverse orientation [%s]\n", def("revcomp"))
	fmt.Fprintf(out, "      --strict                Reject symbols other than A/C/G/T [%s]\n", def("strict"))

	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  -o, --output string         Output: text | json [%s]\n", def("output"))
	fmt.Fprintf(out, "      --exact                 Count true/false positives with an exact index [%s]\n", def("exact"))
	fmt.Fprintf(out, "      --per-record            Report matches per query record [%s]\n", def("per-record"))

	fmt.Fprintln(out, "\nMiscellaneous:")
	fmt.Fprintf(out, "      --log-level string      debug | info | warn | error [%s]\n", def("log-level"))
	fmt.Fprintf(out, "      --log-format string     text | json [%s]\n", def("log-format"))
	fmt.Fprintf(out, "      --quiet                 Suppress warnings [%s]\n", def("quiet"))
	fmt.Fprintln(out, "  -v, --version               Print version and exit")
	fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	fmt.Fprintln(out, "\n[*] required; REF and QUERY may also be given as positionals.")
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool

	// Input
	fs.StringVar(&o.Reference, "reference", "", "reference FASTA [*]")
	fs.StringVar(&o.Reference, "r", "", "alias of --reference")
	fs.StringVar(&o.Query, "query", "", "query FASTA [*]")
	fs.StringVar(&o.Query, "q", "", "alias of --query")

	// Index
	fs.IntVar(&o.K, "kmer-length", 0, "k-mer length [*]")
	fs.IntVar(&o.K, "k", 0, "alias of --kmer-length")
	fs.Uint64Var(&o.BloomBytes, "bloom-bytes", 0, "Bloom filter size in bytes [*]")
	fs.Uint64Var(&o.BloomBytes, "b", 0, "alias of --bloom-bytes")
	fs.BoolVar(&o.RevComp, "revcomp", false, "complement bases of the reverse orientation [false]")
	fs.BoolVar(&o.Strict, "strict", false, "reject symbols other than A/C/G/T [false]")

	// Output
	fs.StringVar(&o.Output, "output", "text", "output: text | json [text]")
	fs.StringVar(&o.Output, "o", "text", "alias of --output")
	fs.BoolVar(&o.Exact, "exact", false, "count true/false positives [false]")
	fs.BoolVar(&o.PerRecord, "per-record", false, "report matches per query record [false]")

	// Misc
	fs.StringVar(&o.LogLevel, "log-level", "warn", "log level [warn]")
	fs.StringVar(&o.LogFormat, "log-format", "text", "log format [text]")
	fs.BoolVar(&o.Quiet, "quiet", false, "suppress warnings [false]")
	fs.BoolVar(&o.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&o.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&help, "help", false, "show this help [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}
	if err := cliutil.FillPositionals(posArgs, &o.Reference, &o.Query); err != nil {
		return o, err
	}
	return o, Validate(o)
}

// Validate applies the CLI invariants. Numeric ranges of -k and -b are
// checked again, with exact bounds, when the index parameters are derived.
func Validate(o Options) error {
	switch {
	case o.Reference == "":
		return errors.New("a reference FASTA is required (--reference)")
	case o.Query == "":
		return errors.New("a query FASTA is required (--query)")
	case o.Reference == "-" && o.Query == "-":
		return errors.New("only one of --reference/--query can read stdin")
	}
	if o.K <= 0 {
		return errors.New("--kmer-length must be > 0")
	}
	if o.BloomBytes == 0 {
		return errors.New("--bloom-bytes must be > 0")
	}
	switch o.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if _, err := logging.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	switch o.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid --log-format %q", o.LogFormat)
	}
	return nil
}

// Config converts parsed options into a pipeline run.
func (o Options) Config() pipeline.Config {
	return pipeline.Config{
		Reference:         o.Reference,
		Query:             o.Query,
		K:                 o.K,
		BloomBytes:        o.BloomBytes,
		ReverseComplement: o.RevComp,
		Strict:            o.Strict,
		Exact:             o.Exact,
		PerRecord:         o.PerRecord,
	}
}
