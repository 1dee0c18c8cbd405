package dictstack

import (
	"io"
	"testing"

	"github.com/stenocore/steno/stroke"
)

type entry struct {
	key  stroke.Key
	text string
}

type fakeDict struct {
	name    string
	enabled bool
	maxLen  int
	entries []entry
}

func (f *fakeDict) Name() string              { return f.name }
func (f *fakeDict) Enabled() bool             { return f.enabled }
func (f *fakeDict) SetEnabled(enabled bool)   { f.enabled = enabled }
func (f *fakeDict) MaximumOutlineLength() int { return f.maxLen }
func (f *fakeDict) Print(w io.Writer) error   { return nil }

func (f *fakeDict) Lookup(key stroke.Key) (string, bool) {
	for _, e := range f.entries {
		if e.key.Equal(key) {
			return e.text, true
		}
	}
	return "", false
}

func (f *fakeDict) ReverseLookup(text string) []stroke.Key {
	var out []stroke.Key
	for _, e := range f.entries {
		if e.text == text {
			out = append(out, e.key)
		}
	}
	return out
}

func TestLookupPrefersFrontOfStack(t *testing.T) {
	key := stroke.Key{1}
	user := &fakeDict{name: "user", enabled: true, maxLen: 1, entries: []entry{{key, "override"}}}
	main := &fakeDict{name: "main", enabled: true, maxLen: 1, entries: []entry{{key, "base"}}}
	s := New(user, main)

	text, source, ok := s.Lookup(key)
	if !ok || text != "override" || source != "user" {
		t.Fatalf("Lookup = (%q, %q, %v), want (override, user, true)", text, source, ok)
	}
}

func TestLookupSkipsDisabledAndFallsThrough(t *testing.T) {
	key := stroke.Key{1}
	front := &fakeDict{name: "front", enabled: false, maxLen: 1, entries: []entry{{key, "front-text"}}}
	back := &fakeDict{name: "back", enabled: true, maxLen: 1, entries: []entry{{key, "back-text"}}}
	s := New(front, back)

	text, source, ok := s.Lookup(key)
	if !ok || text != "back-text" || source != "back" {
		t.Fatalf("Lookup = (%q, %q, %v), want (back-text, back, true)", text, source, ok)
	}
}

func TestEnableDisableToggleByName(t *testing.T) {
	d := &fakeDict{name: "user", enabled: false, maxLen: 2}
	s := New(d)

	if err := s.EnableByName("user"); err != nil {
		t.Fatalf("EnableByName: %v", err)
	}
	if !d.enabled {
		t.Fatal("expected enabled after EnableByName")
	}

	if err := s.ToggleByName("user"); err != nil {
		t.Fatalf("ToggleByName: %v", err)
	}
	if d.enabled {
		t.Fatal("expected disabled after toggle")
	}

	if err := s.DisableByName("missing"); err == nil {
		t.Fatal("expected error for unknown dictionary name")
	}
}

func TestMaximumOutlineLengthIgnoresDisabled(t *testing.T) {
	a := &fakeDict{name: "a", enabled: true, maxLen: 3}
	b := &fakeDict{name: "b", enabled: false, maxLen: 10}
	s := New(a, b)

	if got := s.MaximumOutlineLength(); got != 3 {
		t.Fatalf("MaximumOutlineLength() = %d, want 3", got)
	}
}

func TestReverseLookupAggregatesEnabledDictionaries(t *testing.T) {
	a := &fakeDict{name: "a", enabled: true, maxLen: 1, entries: []entry{{stroke.Key{1}, "cat"}}}
	b := &fakeDict{name: "b", enabled: true, maxLen: 1, entries: []entry{{stroke.Key{2}, "cat"}}}
	s := New(a, b)

	keys := s.ReverseLookup("cat")
	if len(keys) != 2 {
		t.Fatalf("ReverseLookup(cat) returned %d keys, want 2", len(keys))
	}
}
