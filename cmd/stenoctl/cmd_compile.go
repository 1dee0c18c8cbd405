package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/stenocore/steno/dictcompiler"
	"github.com/stenocore/steno/packeddict"
	"github.com/stenocore/steno/stroke"
)

// sourceEntry is one translation in a JSON dictionary source file.
type sourceEntry struct {
	Strokes string `json:"strokes"`
	Text    string `json:"text"`
}

// sourceDictionary is the JSON schema compile reads: a human-editable
// stand-in for the binary collection format packeddict.Parse consumes,
// grounded on dictcompiler.Builder's construction order.
type sourceDictionary struct {
	Name                 string        `json:"name"`
	DefaultEnabled       *bool         `json:"defaultEnabled"`
	MaximumOutlineLength int           `json:"maximumOutlineLength"`
	Format               string        `json:"format"`
	Entries              []sourceEntry `json:"entries"`
}

func runCompile(args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: stenoctl compile <json> <out>")
	}
	srcPath, outPath := fs.Arg(0), fs.Arg(1)

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	var src sourceDictionary
	if err := json.Unmarshal(data, &src); err != nil {
		return fmt.Errorf("parsing %s: %w", srcPath, err)
	}

	format, err := parseFormat(src.Format)
	if err != nil {
		return err
	}

	maxLen := src.MaximumOutlineLength
	if maxLen <= 0 {
		maxLen = stroke.MaxOutlineLength
	}
	defaultEnabled := true
	if src.DefaultEnabled != nil {
		defaultEnabled = *src.DefaultEnabled
	}

	builder := dictcompiler.NewBuilder(src.Name, defaultEnabled, maxLen, format)
	for _, e := range src.Entries {
		key, err := parseOutline(e.Strokes)
		if err != nil {
			return fmt.Errorf("entry %q: %w", e.Strokes, err)
		}
		if err := builder.Add(key, e.Text); err != nil {
			return fmt.Errorf("entry %q: %w", e.Strokes, err)
		}
	}

	dict, err := builder.Freeze()
	if err != nil {
		return err
	}

	blob := packeddict.Encode(&packeddict.Collection{Dictionaries: []*packeddict.Dictionary{dict}})
	if err := os.WriteFile(outPath, blob, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(out, "compiled %d entries into %s\n", len(src.Entries), outPath)
	return nil
}

func parseFormat(s string) (packeddict.Format, error) {
	switch s {
	case "", "compact":
		return packeddict.Compact, nil
	case "full":
		return packeddict.Full, nil
	default:
		return 0, fmt.Errorf("unknown format %q: expected \"compact\" or \"full\"", s)
	}
}
