package writers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Flush flushes w and maps the result to an exit code: a broken pipe is
// success, any other write failure is reported to stderr and yields 3.
// ok is returned unchanged when the flush succeeds.
func Flush(w *bufio.Writer, stderr io.Writer, ok int) int {
	return Finish(w.Flush(), stderr, ok)
}

// Finish maps a write error to an exit code the same way Flush does.
func Finish(err error, stderr io.Writer, ok int) int {
	switch {
	case err == nil:
		return ok
	case IsBrokenPipe(err):
		return 0
	default:
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
}
