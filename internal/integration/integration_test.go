// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"github.com/klauspost/compress/gzip"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kmerbloom/internal/app"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code = app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

const threeLines = "Number of k-mers indexed in reference: %d\n" +
	"Number of k-mers scanned in query: %d\n" +
	"Number of k-mers from query found in the reference: %d\n"

func TestEndToEndSelfQuery(t *testing.T) {
	ref := write(t, "ref.fa", ">r\nACGTACGT\n")

	code, out, errS := run(t, "-r", ref, "-q", ref, "-k", "3", "-b", "100")
	require.Equal(t, 0, code, errS)
	want := "Number of k-mers indexed in reference: 6\n" +
		"Number of k-mers scanned in query: 6\n" +
		"Number of k-mers from query found in the reference: 6\n"
	assert.Equal(t, want, out)
}

func TestPositionalsMatchFlags(t *testing.T) {
	ref := write(t, "ref.fa", ">a\nACGTTGCAACGGT\n>b\nTTTTACGA\n")
	query := write(t, "q.fa", ">q\nGGGACGTTGCAAC\n")

	c1, flags, _ := run(t, "-r", ref, "-q", query, "-k", "4", "-b", "64")
	c2, pos, _ := run(t, ref, query, "-k", "4", "-b", "64")
	require.Equal(t, 0, c1)
	require.Equal(t, 0, c2)
	assert.Equal(t, flags, pos)
	assert.True(t, strings.HasPrefix(flags, "Number of k-mers indexed in reference: 15\n"), flags)
}

func TestDeterministic(t *testing.T) {
	ref := write(t, "ref.fa", ">a\n"+strings.Repeat("ACGGTCATTGCA", 50)+"\n")
	query := write(t, "q.fa", ">q\n"+strings.Repeat("TTGACCAGT", 40)+"\n")
	_, first, _ := run(t, ref, query, "-k", "11", "-b", "32", "--exact", "-o", "json")
	for i := 0; i < 3; i++ {
		_, again, _ := run(t, ref, query, "-k", "11", "-b", "32", "--exact", "-o", "json")
		require.Equal(t, first, again)
	}
}

func TestJSONExactAndPerRecord(t *testing.T) {
	ref := write(t, "ref.fa", ">r\nACGTACGTTTGACA\n")
	query := write(t, "q.fa", ">hit\nACGTACG\n>miss\nGGGGGGGG\n")

	code, out, errS := run(t, ref, query, "-k", "5", "-b", "4096", "--exact", "--per-record", "--output", "json")
	require.Equal(t, 0, code, errS)

	var got struct {
		ReferenceKmers int `json:"reference_kmers"`
		QueryKmers     int `json:"query_kmers"`
		Matches        int `json:"matches"`
		K              int `json:"k"`
		Exact          struct {
			TruePositives  int `json:"true_positives"`
			FalsePositives int `json:"false_positives"`
		} `json:"exact"`
		Records []struct {
			ID    string `json:"id"`
			Kmers int    `json:"kmers"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 10, got.ReferenceKmers)
	assert.Equal(t, 7, got.QueryKmers)
	assert.Equal(t, 5, got.K)
	assert.GreaterOrEqual(t, got.Matches, got.Exact.TruePositives)
	assert.Equal(t, got.Matches, got.Exact.TruePositives+got.Exact.FalsePositives)
	assert.GreaterOrEqual(t, got.Exact.TruePositives, 3)
	require.Len(t, got.Records, 2)
	assert.Equal(t, "hit", got.Records[0].ID)
	assert.Equal(t, 3, got.Records[0].Kmers)
	assert.Equal(t, "miss", got.Records[1].ID)
	assert.Equal(t, 4, got.Records[1].Kmers)
}

func TestTextExactSection(t *testing.T) {
	ref := write(t, "ref.fa", ">r\nACGTACGT\n")
	code, out, _ := run(t, ref, ref, "-k", "3", "-b", "100", "--exact")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "True positives: 6\n")
	assert.Contains(t, out, "False positives: 0")
}

func TestGzipReference(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(">r\nACGTACGT\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	ref := write(t, "ref.fa.gz", buf.String())
	plain := write(t, "ref.fa", ">r\nACGTACGT\n")

	_, fromGz, _ := run(t, ref, plain, "-k", "3", "-b", "100")
	_, fromPlain, _ := run(t, plain, plain, "-k", "3", "-b", "100")
	assert.Equal(t, fromPlain, fromGz)
}

func TestShortSequenceWarns(t *testing.T) {
	ref := write(t, "ref.fa", ">long\nACGTACGT\n>tiny\nAC\n")
	code, out, errS := run(t, ref, ref, "-k", "3", "-b", "100")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "indexed in reference: 6\n")
	assert.Contains(t, errS, "tiny")

	code, _, errS = run(t, ref, ref, "-k", "3", "-b", "100", "--quiet")
	require.Equal(t, 0, code)
	assert.Empty(t, errS)
}

func TestUsageAndInputErrors(t *testing.T) {
	ref := write(t, "ref.fa", ">r\nACGTACGT\n")
	bad := write(t, "bad.fa", ">r\nACGNNT\n")
	empty := write(t, "empty.fa", "")

	cases := map[string][]string{
		"missing query":   {"-r", ref, "-k", "3", "-b", "100"},
		"k too large":     {ref, ref, "-k", "33", "-b", "100"},
		"filter too tiny": {ref, ref, "-k", "3", "-b", "0"},
		"missing file":    {ref, filepath.Join(t.TempDir(), "nope.fa"), "-k", "3", "-b", "100"},
		"strict symbols":  {ref, bad, "-k", "3", "-b", "100", "--strict"},
		"no kmers":        {ref, ref, "-k", "20", "-b", "100"},
		"empty input":     {ref, empty, "-k", "3", "-b", "100"},
		"unknown flag":    {ref, ref, "-k", "3", "-b", "100", "--bogus"},
	}
	for name, args := range cases {
		code, _, errS := run(t, args...)
		assert.Equal(t, 2, code, "%s: stderr=%s", name, errS)
		assert.NotEmpty(t, errS, name)
	}

	// Lenient mode reads the same file.
	code, _, errS := run(t, ref, bad, "-k", "3", "-b", "100")
	assert.Equal(t, 0, code, errS)
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "--kmer-length")

	code, out, _ = run(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage:")

	code, out, _ = run(t, "-v")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "kmerbloom version "), out)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("device full") }

func TestWriteFailureExit3(t *testing.T) {
	ref := write(t, "ref.fa", ">r\nACGTACGT\n")
	var errBuf bytes.Buffer
	code := app.Run([]string{ref, ref, "-k", "3", "-b", "100"}, failWriter{}, &errBuf)
	assert.Equal(t, 3, code)
	assert.Contains(t, errBuf.String(), "device full")
}
