package engine

import (
	"io"
	"testing"

	"github.com/stenocore/steno/convert"
	"github.com/stenocore/steno/dictstack"
	"github.com/stenocore/steno/segment"
	"github.com/stenocore/steno/stroke"
)

type fakeDict struct {
	name    string
	enabled bool
	maxLen  int
	entries map[string]string
}

func (f *fakeDict) Name() string              { return f.name }
func (f *fakeDict) Enabled() bool             { return f.enabled }
func (f *fakeDict) SetEnabled(enabled bool)   { f.enabled = enabled }
func (f *fakeDict) MaximumOutlineLength() int { return f.maxLen }
func (f *fakeDict) Print(w io.Writer) error { return nil }
func (f *fakeDict) Lookup(key stroke.Key) (string, bool) {
	text, ok := f.entries[key.String()]
	return text, ok
}
func (f *fakeDict) ReverseLookup(text string) []stroke.Key { return nil }

type fakeSink struct {
	backspaces []int
	texts      []string
}

func (s *fakeSink) EmitBackspaces(n int)                  { s.backspaces = append(s.backspaces, n) }
func (s *fakeSink) EmitText(utf8 string)                  { s.texts = append(s.texts, utf8) }
func (s *fakeSink) EmitRawKey(scanCode, modifiers int)     {}

type fakeUserDict struct {
	added   map[string]string
	removed []string
}

func (u *fakeUserDict) Lookup(key stroke.Key) (string, bool) { return "", false }
func (u *fakeUserDict) Add(key stroke.Key, text string) error {
	if u.added == nil {
		u.added = map[string]string{}
	}
	u.added[key.String()] = text
	return nil
}
func (u *fakeUserDict) Remove(key stroke.Key) error {
	u.removed = append(u.removed, key.String())
	return nil
}

func newTestEngine(entries map[string]string, cfg Config) (*Engine, *fakeSink) {
	dict := &fakeDict{name: "main", enabled: true, maxLen: 4, entries: entries}
	stack := dictstack.New(dict)
	builder := segment.NewBuilder(stack, nil)
	conv := convert.New(nil)
	sink := &fakeSink{}
	ud := &fakeUserDict{}
	return New(cfg, stack, builder, conv, sink, ud), sink
}

func TestStrokeEmitsTextForFreshTranslation(t *testing.T) {
	cat := stroke.Key{1}
	e, sink := newTestEngine(map[string]string{cat.String(): "cat"}, Config{HistoryCapacity: 8})

	e.Stroke(stroke.Stroke(1))

	if len(sink.texts) != 1 || sink.texts[0] != "cat" {
		t.Fatalf("texts = %v, want [cat]", sink.texts)
	}
}

func TestUndoRemovesLastSegmentOutput(t *testing.T) {
	cat := stroke.Key{1}
	dog := stroke.Key{2}
	e, sink := newTestEngine(map[string]string{cat.String(): "cat", dog.String(): "dog"}, Config{HistoryCapacity: 8})

	e.Stroke(stroke.Stroke(1))
	e.Stroke(stroke.Stroke(2))
	e.Stroke(stroke.Undo)

	lastBackspaces := sink.backspaces[len(sink.backspaces)-1]
	if lastBackspaces != len(" dog") {
		t.Fatalf("undo backspace count = %d, want %d (erase \" dog\" back to \"cat\")", lastBackspaces, len(" dog"))
	}
}

func TestUndoBeyondHistoryIsNoOp(t *testing.T) {
	e, sink := newTestEngine(map[string]string{}, Config{HistoryCapacity: 8})

	e.Stroke(stroke.Undo)

	if len(sink.texts) != 0 || len(sink.backspaces) != 0 {
		t.Fatalf("expected no emission for undo on empty history, got texts=%v backspaces=%v", sink.texts, sink.backspaces)
	}
}

func TestAddTranslationCommitsToUserDictionary(t *testing.T) {
	const addStroke = stroke.Stroke(1 << 15)
	const sepStroke = stroke.Stroke(1 << 16)
	const commitStroke = stroke.Stroke(1 << 17)
	newKey := stroke.Stroke(9)

	dict := &fakeDict{name: "main", enabled: true, maxLen: 4, entries: map[string]string{
		stroke.Key{stroke.Stroke(10)}.String(): "hi",
	}}
	stack := dictstack.New(dict)
	builder := segment.NewBuilder(stack, nil)
	conv := convert.New(nil)
	sink := &fakeSink{}
	ud := &fakeUserDict{}
	e := New(Config{
		HistoryCapacity:      8,
		AddTranslationStroke: addStroke,
		SeparatorStroke:      sepStroke,
		CommitStroke:         commitStroke,
	}, stack, builder, conv, sink, ud)

	e.Stroke(addStroke)
	if e.Mode() != AddTranslation {
		t.Fatalf("Mode() = %v, want AddTranslation", e.Mode())
	}

	e.Stroke(newKey)
	e.Stroke(sepStroke)
	e.Stroke(stroke.Stroke(10))
	e.Stroke(commitStroke)

	if e.Mode() != Normal {
		t.Fatalf("Mode() = %v, want Normal after commit", e.Mode())
	}
	want := stroke.Key{newKey}.String()
	if text, ok := ud.added[want]; !ok || text != "hi" {
		t.Fatalf("added = %v, want %q -> hi", ud.added, want)
	}
}
