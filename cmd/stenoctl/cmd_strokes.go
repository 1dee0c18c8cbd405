package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/stenocore/steno/convert"
	"github.com/stenocore/steno/engine"
	"github.com/stenocore/steno/segment"
	"github.com/stenocore/steno/stroke"
)

// textSink accumulates the key-code stream into a single string,
// standing in for the host key-code emission spec §6 leaves to the
// firmware layer.
type textSink struct {
	runes []rune
}

func (s *textSink) EmitBackspaces(n int) {
	if n > len(s.runes) {
		n = len(s.runes)
	}
	s.runes = s.runes[:len(s.runes)-n]
}

func (s *textSink) EmitText(utf8 string) { s.runes = append(s.runes, []rune(utf8)...) }

func (s *textSink) EmitRawKey(scanCode, modifiers int) {}

func (s *textSink) String() string { return string(s.runes) }

func runStrokes(args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("strokes", flag.ContinueOnError)
	fs.SetOutput(errOut)
	df := bindDictFlags(fs)
	historyCap := fs.Int("history-capacity", 64, "undo ring buffer capacity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: stenoctl strokes <file|-> [--dict=...] [--userdict=...]")
	}

	tokens, err := readStrokeTokens(fs.Arg(0))
	if err != nil {
		return err
	}

	stack, ud, closeFn, err := df.openStack()
	if err != nil {
		return err
	}
	defer closeFn()

	builder := segment.NewBuilder(stack, nil)
	conv := convert.New(nil)
	sink := &textSink{}
	var userDict engine.UserDictionary = noopUserDict{}
	if ud != nil {
		userDict = ud
	}

	e := engine.New(engine.Config{HistoryCapacity: *historyCap}, stack, builder, conv, sink, userDict)

	for _, tok := range tokens {
		if strings.EqualFold(tok, "undo") {
			e.Stroke(stroke.Undo)
			continue
		}
		key, err := parseOutline(tok)
		if err != nil {
			return fmt.Errorf("stroke %q: %w", tok, err)
		}
		if len(key) != 1 {
			return fmt.Errorf("stroke %q: expected a single chord, not an outline", tok)
		}
		e.Stroke(key[0])
	}

	fmt.Fprintln(out, sink.String())
	return nil
}

type noopUserDict struct{}

func (noopUserDict) Lookup(key stroke.Key) (string, bool)  { return "", false }
func (noopUserDict) Add(key stroke.Key, text string) error { return nil }
func (noopUserDict) Remove(key stroke.Key) error           { return nil }

func readStrokeTokens(path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	return tokens, scanner.Err()
}
