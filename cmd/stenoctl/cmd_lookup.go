package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/stenocore/steno/stroke"
)

func runLookup(args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(errOut)
	df := bindDictFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: stenoctl lookup <strokes> [--dict=...] [--userdict=...]")
	}

	key, err := parseOutline(fs.Arg(0))
	if err != nil {
		return err
	}

	stack, _, closeFn, err := df.openStack()
	if err != nil {
		return err
	}
	defer closeFn()

	text, source, ok := stack.Lookup(key)
	if !ok {
		return fmt.Errorf("no translation for %s", key.String())
	}
	fmt.Fprintf(out, "%s\t%s\n", text, source)
	return nil
}

// parseOutline parses a "/"-separated sequence of strokes, e.g.
// "KAT/HROG", into a stroke.Key.
func parseOutline(s string) (stroke.Key, error) {
	parts := strings.Split(s, "/")
	key := make(stroke.Key, len(parts))
	for i, part := range parts {
		st, err := stroke.Parse(part)
		if err != nil {
			return nil, err
		}
		key[i] = st
	}
	return key, nil
}
