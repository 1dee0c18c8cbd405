// Command stenoctl is a thin reference harness exercising the
// translation engine from the command line: feed a stroke script,
// inspect the dictionary stack, look up an outline, and compile a JSON
// dictionary source into the packed binary format. It is explicitly not
// the firmware console/HAL/transport stack spec.md treats as out of
// scope -- just enough surface to drive the packages in this module by
// hand.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run dispatches to a subcommand and returns the process exit code.
func Run(args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 1
	}

	cmd, rest := args[0], args[1:]
	fn, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(errOut, "stenoctl: unknown command %q\n", cmd)
		printUsage(errOut)
		return 1
	}

	if err := fn(rest, out, errOut); err != nil {
		fmt.Fprintf(errOut, "stenoctl: %v\n", err)
		return 1
	}
	return 0
}

var commands = map[string]func(args []string, out, errOut io.Writer) error{
	"strokes": runStrokes,
	"list":    runList,
	"print":   runPrint,
	"lookup":  runLookup,
	"compile": runCompile,
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: stenoctl <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  strokes <file|->         feed a stroke script and print the translated text")
	fmt.Fprintln(w, "  list                     list the dictionary stack")
	fmt.Fprintln(w, "  print <name>             dump one dictionary's entries as JSON lines")
	fmt.Fprintln(w, "  lookup <strokes>         translate one outline (e.g. KAT or KAT/HROG)")
	fmt.Fprintln(w, "  compile <json> <out>     compile a JSON dictionary source into packed binary")
}
