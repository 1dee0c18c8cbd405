package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

func runList(args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	df := bindDictFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	stack, _, closeFn, err := df.openStack()
	if err != nil {
		return err
	}
	defer closeFn()

	for _, d := range stack.Dictionaries() {
		state := "enabled"
		if !d.Enabled() {
			state = "disabled"
		}
		fmt.Fprintf(out, "%-24s %-8s maxOutlineLength=%d\n", d.Name(), state, d.MaximumOutlineLength())
	}
	return nil
}
