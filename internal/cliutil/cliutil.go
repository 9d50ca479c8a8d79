// internal/cliutil/cliutil.go
package cliutil

import (
	"flag"
	"fmt"
	"strings"
)

// boolFlags returns names of flags that don't take a value.
func boolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals separates flag-like args from positionals so
// positionals may appear anywhere on the command line. "-" is a positional
// (stdin) and everything after "--" is positional. Use before fs.Parse(flagArgs).
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	isBool := boolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return flagArgs, append(posArgs, argv[i+1:]...)
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			posArgs = append(posArgs, arg)
		case strings.Contains(arg, "="):
			flagArgs = append(flagArgs, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if !isBool[strings.TrimLeft(arg, "-")] && i+1 < len(argv) {
				i++
				flagArgs = append(flagArgs, argv[i])
			}
		}
	}
	return flagArgs, posArgs
}

// FillPositionals assigns positionals, in order, to the targets that are
// still empty. Leftover positionals are an error.
func FillPositionals(posArgs []string, targets ...*string) error {
	for _, dst := range targets {
		if len(posArgs) == 0 {
			return nil
		}
		if *dst == "" {
			*dst = posArgs[0]
			posArgs = posArgs[1:]
		}
	}
	if len(posArgs) > 0 {
		return fmt.Errorf("unexpected argument(s): %s", strings.Join(posArgs, " "))
	}
	return nil
}
