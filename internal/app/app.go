// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"kmerbloom/internal/cli"
	"kmerbloom/internal/logging"
	"kmerbloom/internal/pipeline"
	"kmerbloom/internal/report"
	"kmerbloom/internal/version"
	"kmerbloom/internal/writers"
)

// RunContext parses argv, runs one build/test cycle and writes the report.
// Exit codes: 0 ok, 2 usage or input error, 3 I/O or runtime error,
// 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("kmerbloom")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return writers.Flush(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return writers.Flush(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return writers.Flush(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "kmerbloom version %s\n", version.Version)
		return writers.Flush(outw, stderr, 0)
	}

	log, err := newLogger(opts, stderr)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	log, runID := log.WithRun()
	log.DebugContext(parent, "run started", "version", version.Version, "run_id", runID)

	sum, err := pipeline.Run(parent, opts.Config(), log)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			return 130
		case pipeline.IsInputError(err):
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		default:
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	if err := report.Write(outw, opts.Output, sum); err != nil {
		return writers.Finish(err, stderr, 0)
	}
	return writers.Flush(outw, stderr, 0)
}

func newLogger(opts cli.Options, stderr io.Writer) (*logging.Logger, error) {
	lv, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	if opts.Quiet && lv < slog.LevelError {
		lv = slog.LevelError
	}
	return logging.New(stderr, lv, opts.LogFormat)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
