// Package logging wraps slog with the fields a kmerbloom run reports.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Logger wraps slog.Logger with run-specific helpers.
type Logger struct {
	*slog.Logger
}

// New builds a Logger writing to w. format is "text" or "json".
func New(w io.Writer, level slog.Level, format string) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch format {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return &Logger{Logger: slog.New(h)}, nil
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lv, nil
}

// WithRun tags every record with a fresh run id and returns it.
func (l *Logger) WithRun() (*Logger, string) {
	id := uuid.NewString()
	return &Logger{Logger: l.Logger.With("run_id", id)}, id
}

// LogLoad reports one input file read.
func (l *Logger) LogLoad(ctx context.Context, role, path string, records, bases int, took time.Duration) {
	l.InfoContext(ctx, "input loaded",
		"role", role,
		"path", path,
		"records", records,
		"bases", humanize.Comma(int64(bases)),
		"took", took,
	)
}

// LogShort warns about sequences that produced no k-mers.
func (l *Logger) LogShort(ctx context.Context, role string, k int, ids []string) {
	if len(ids) == 0 {
		return
	}
	const show = 5
	shown := ids
	if len(shown) > show {
		shown = shown[:show]
	}
	l.WarnContext(ctx, "sequences shorter than k skipped",
		"role", role,
		"k", k,
		"count", len(ids),
		"ids", strings.Join(shown, ","),
	)
}

// LogFilter reports the derived filter geometry.
func (l *Logger) LogFilter(ctx context.Context, slots, prime uint64, k int) {
	l.InfoContext(ctx, "bloom filter allocated",
		"slots", slots,
		"size", humanize.IBytes(slots/8),
		"prime", prime,
		"k", k,
	)
}

// LogPhase reports a finished build or test phase.
func (l *Logger) LogPhase(ctx context.Context, phase string, kmers int, took time.Duration, attrs ...any) {
	args := append([]any{"phase", phase, "kmers", kmers, "took", took}, attrs...)
	l.InfoContext(ctx, "phase done", args...)
}
