package writers

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"
)

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestIsBrokenPipe(t *testing.T) {
	if IsBrokenPipe(nil) {
		t.Fatal("nil is not a broken pipe")
	}
	if !IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)) {
		t.Fatal("wrapped EPIPE not detected")
	}
	if !IsBrokenPipe(io.ErrClosedPipe) {
		t.Fatal("ErrClosedPipe not detected")
	}
	if IsBrokenPipe(errors.New("disk full")) {
		t.Fatal("unrelated error detected as broken pipe")
	}
}

func TestFlushCodes(t *testing.T) {
	var stderr bytes.Buffer

	var out bytes.Buffer
	w := bufio.NewWriter(&out)
	_, _ = w.WriteString("ok\n")
	if code := Flush(w, &stderr, 2); code != 2 || out.String() != "ok\n" {
		t.Fatalf("code=%d out=%q", code, out.String())
	}

	w = bufio.NewWriter(failWriter{syscall.EPIPE})
	_, _ = w.WriteString("x")
	if code := Flush(w, &stderr, 0); code != 0 {
		t.Fatalf("broken pipe should exit 0, got %d", code)
	}
	if stderr.Len() != 0 {
		t.Fatalf("broken pipe should be silent, got %q", stderr.String())
	}

	w = bufio.NewWriter(failWriter{errors.New("disk full")})
	_, _ = w.WriteString("x")
	if code := Flush(w, &stderr, 0); code != 3 {
		t.Fatalf("write failure should exit 3, got %d", code)
	}
	if !strings.Contains(stderr.String(), "disk full") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
