package userdict

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/stenocore/steno/stroke"
)

// Dictionary is the default file-backed user dictionary: an in-memory
// ordered store durable via a CRC-guarded append-only journal, spec §6
// "User dictionary interface (collaborator)". It satisfies both
// engine.UserDictionary and dictstack.Dictionary structurally, so it can
// sit in the dictionary stack alongside packed dictionaries (spec §4.C)
// while also serving as the engine's add-translation target.
type Dictionary struct {
	name    string
	enabled bool
	maxLen  int

	st *store
	wr *writer
}

// Options configures Open.
type Options struct {
	Name                  string
	MaximumOutlineLength  int
	MaxJournalSegmentSize int64
	WriteBuffer           int
}

// Open replays dir's journal segments in order into a fresh store, then
// starts a writer goroutine appending to the newest (or first) segment.
func Open(dir string, opts Options) (*Dictionary, error) {
	jnl, err := openJournal(dir, opts.MaxJournalSegmentSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open user dictionary journal: %w", err)
	}

	st := newStore()
	if err := replay(dir, st); err != nil {
		jnl.close()
		return nil, fmt.Errorf("failed to replay user dictionary journal: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = "user"
	}
	maxLen := opts.MaximumOutlineLength
	if maxLen <= 0 {
		maxLen = stroke.MaxOutlineLength
	}

	d := &Dictionary{
		name:    name,
		enabled: true,
		maxLen:  maxLen,
		st:      st,
		wr:      newWriter(opts.WriteBuffer, jnl),
	}
	return d, nil
}

// replay reads every journal segment in dir, oldest first, applying each
// record's Define/Undefine to st in order, spec §4.J "on open, the
// journal is replayed in order into the skip list".
func replay(dir string, st *store) error {
	tmp := &journal{dir: dir}
	paths, err := tmp.segmentPaths()
	if err != nil {
		return err
	}

	for _, path := range paths {
		if err := replaySegment(path, st); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func replaySegment(path string, st *store) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		e, err := decodeEntry(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch e.op {
		case opDefine:
			st.put(e.key, e.value)
		case opUndefine:
			st.delete(e.key)
		}
	}
}

// Close stops the writer goroutine and closes the active journal segment.
func (d *Dictionary) Close() error { return d.wr.close() }

// Lookup satisfies engine.UserDictionary and dictstack.Dictionary.
func (d *Dictionary) Lookup(key stroke.Key) (string, bool) {
	return d.st.get(key)
}

// Add upserts key -> text in the in-memory store and journals the
// change before returning, satisfying engine.UserDictionary.Add.
func (d *Dictionary) Add(key stroke.Key, text string) error {
	if err := d.wr.write(&entry{op: opDefine, key: key, value: text}); err != nil {
		return err
	}
	d.st.put(key, text)
	return nil
}

// Remove deletes key from the in-memory store and journals the removal,
// satisfying engine.UserDictionary.Remove.
func (d *Dictionary) Remove(key stroke.Key) error {
	if err := d.wr.write(&entry{op: opUndefine, key: key}); err != nil {
		return err
	}
	d.st.delete(key)
	return nil
}

// Name, Enabled, SetEnabled, MaximumOutlineLength, Print, and
// ReverseLookup below round out dictstack.Dictionary, letting the user
// dictionary sit in the stack like any packed dictionary.

func (d *Dictionary) Name() string { return d.name }

func (d *Dictionary) Enabled() bool { return d.enabled }

func (d *Dictionary) SetEnabled(enabled bool) { d.enabled = enabled }

func (d *Dictionary) MaximumOutlineLength() int { return d.maxLen }

// ReverseLookup linearly scans the store for entries whose text matches,
// spec §4.J "reverse lookup via a linear scan ... small by construction".
func (d *Dictionary) ReverseLookup(text string) []stroke.Key {
	var out []stroke.Key
	d.st.each(func(key stroke.Key, value string) {
		if value == text {
			out = append(out, key.Clone())
		}
	})
	return out
}

// Print dumps every entry as one JSON object per line, matching
// packeddict.Dictionary.Print's shape (spec §4.B).
func (d *Dictionary) Print(w io.Writer) error {
	var printErr error
	d.st.each(func(key stroke.Key, value string) {
		if printErr != nil {
			return
		}
		_, printErr = fmt.Fprintf(w, "{\"stroke\": %q, \"text\": %q}\n", key.String(), value)
	})
	return printErr
}
