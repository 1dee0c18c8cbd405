package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

func runPrint(args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(errOut)
	df := bindDictFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: stenoctl print <name> [--dict=...] [--userdict=...]")
	}
	name := fs.Arg(0)

	stack, _, closeFn, err := df.openStack()
	if err != nil {
		return err
	}
	defer closeFn()

	for _, d := range stack.Dictionaries() {
		if d.Name() == name {
			return d.Print(out)
		}
	}
	return fmt.Errorf("no dictionary named %q in the stack", name)
}
