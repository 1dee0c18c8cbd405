package segment

import (
	"io"
	"testing"

	"github.com/stenocore/steno/stroke"
)

type fakePrefixDict struct {
	enabled bool
	entries map[string]stroke.Key // text -> stem stroke key
}

func (f *fakePrefixDict) Name() string               { return "prefix" }
func (f *fakePrefixDict) Enabled() bool              { return f.enabled }
func (f *fakePrefixDict) SetEnabled(enabled bool)    { f.enabled = enabled }
func (f *fakePrefixDict) MaximumOutlineLength() int  { return 4 }
func (f *fakePrefixDict) Print(w io.Writer) error    { return nil }
func (f *fakePrefixDict) Lookup(stroke.Key) (string, bool) {
	return "", false
}

func (f *fakePrefixDict) ReverseLookup(text string) []stroke.Key {
	if key, ok := f.entries[text]; ok {
		return []stroke.Key{key}
	}
	return nil
}

type suffixJoiner struct{}

func (suffixJoiner) Join(word, suffix string) string {
	if suffix == "s" && len(word) > 0 && word[len(word)-1] == 'y' {
		return word[:len(word)-1] + "ies"
	}
	return word + suffix
}

func TestReverseSuffixDictionaryRecombines(t *testing.T) {
	stemKey := stroke.Key{stroke.Stroke(1)}
	prefix := &fakePrefixDict{enabled: true, entries: map[string]stroke.Key{"cat": stemKey}}

	const pluralBit = stroke.Stroke(1 << 20)
	rsd := NewReverseSuffixDictionary("reverse-s", prefix, suffixJoiner{}, map[string]stroke.Stroke{"s": pluralBit}, 0)

	keys := rsd.ReverseLookup("cats")
	if len(keys) != 1 {
		t.Fatalf("ReverseLookup(cats) = %v, want 1 key", keys)
	}
	want := stemKey[0].Union(pluralBit)
	if keys[0][0] != want {
		t.Fatalf("ReverseLookup(cats)[0] = %v, want stroke with plural bit merged (%v)", keys[0], want)
	}
}

func TestReverseSuffixDictionaryRejectsIrregularJoin(t *testing.T) {
	stemKey := stroke.Key{stroke.Stroke(2)}
	prefix := &fakePrefixDict{enabled: true, entries: map[string]stroke.Key{"puppy": stemKey}}

	const pluralBit = stroke.Stroke(1 << 20)
	rsd := NewReverseSuffixDictionary("reverse-s", prefix, suffixJoiner{}, map[string]stroke.Stroke{"s": pluralBit}, 0)

	// "puppys" is not what Join(puppy, s) produces ("puppies"), so no
	// stem should be recombined for that literal text.
	if keys := rsd.ReverseLookup("puppys"); len(keys) != 0 {
		t.Fatalf("ReverseLookup(puppys) = %v, want empty", keys)
	}

	keys := rsd.ReverseLookup("puppies")
	if len(keys) != 1 {
		t.Fatalf("ReverseLookup(puppies) = %v, want 1 key", keys)
	}
}

func TestReverseSuffixDictionaryCachesResults(t *testing.T) {
	stemKey := stroke.Key{stroke.Stroke(3)}
	prefix := &fakePrefixDict{enabled: true, entries: map[string]stroke.Key{"dog": stemKey}}
	rsd := NewReverseSuffixDictionary("reverse-s", prefix, suffixJoiner{}, map[string]stroke.Stroke{"s": stroke.Stroke(1 << 21)}, 0)

	first := rsd.ReverseLookup("dogs")
	delete(prefix.entries, "dog")
	second := rsd.ReverseLookup("dogs")

	if len(first) != len(second) || len(first) != 1 {
		t.Fatalf("cache not honored: first=%v second=%v", first, second)
	}
}
