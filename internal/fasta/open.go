// internal/fasta/open.go
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// openReader opens path ("-" = stdin) and unwraps gzip, zstd or lz4
// framing, detected by magic number or file suffix.
func openReader(path string) (io.ReadCloser, error) {
	var src io.ReadCloser
	if path == "-" {
		src = io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
	}

	br := bufio.NewReaderSize(src, 64<<10)
	sig, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(sig, gzipMagic) || strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("%s: gzip: %w", path, err)
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, src}}, nil
	case bytes.HasPrefix(sig, zstdMagic) || strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(br)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("%s: zstd: %w", path, err)
		}
		zr := dec.IOReadCloser()
		return &multiReadCloser{Reader: zr, closers: []io.Closer{zr, src}}, nil
	case bytes.HasPrefix(sig, lz4Magic) || strings.HasSuffix(path, ".lz4"):
		return &multiReadCloser{Reader: lz4.NewReader(br), closers: []io.Closer{src}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{src}}, nil
}
