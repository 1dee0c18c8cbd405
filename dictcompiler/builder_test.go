package dictcompiler

import (
	"testing"

	"github.com/stenocore/steno/packeddict"
	"github.com/stenocore/steno/stroke"
)

func TestFreezeLookupRoundTrip(t *testing.T) {
	for _, format := range []packeddict.Format{packeddict.Compact, packeddict.Full} {
		t.Run(format.String(), func(t *testing.T) {
			b := NewBuilder("main", true, 4, format)

			type kv struct {
				key  stroke.Key
				text string
			}
			entries := []kv{
				{stroke.Key{1, 2}, "cat"},
				{stroke.Key{3}, "dog"},
				{stroke.Key{5, 6, 7}, "elephant"},
				{stroke.Key{9}, "ant"},
				{stroke.Key{1, 2, 3, 4}, "four stroke word"},
			}
			for _, e := range entries {
				if err := b.Add(e.key, e.text); err != nil {
					t.Fatalf("Add(%v): %v", e.key, err)
				}
			}

			dict, err := b.Freeze()
			if err != nil {
				t.Fatalf("Freeze: %v", err)
			}

			for _, e := range entries {
				got, ok := dict.Lookup(e.key)
				if !ok {
					t.Fatalf("Lookup(%v): not found", e.key)
				}
				if got != e.text {
					t.Fatalf("Lookup(%v) = %q, want %q", e.key, got, e.text)
				}
			}

			if _, ok := dict.Lookup(stroke.Key{42}); ok {
				t.Fatal("Lookup of absent key should miss")
			}
		})
	}
}

func TestFreezeBaseOffsetInvariant(t *testing.T) {
	b := NewBuilder("main", true, 2, packeddict.Compact)
	for i := 0; i < 50; i++ {
		if err := b.Add(stroke.Key{stroke.Stroke(i), stroke.Stroke(i + 1)}, "word"); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	dict, err := b.Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	lt := dict.LengthTables()[1]
	if lt == nil {
		t.Fatal("expected length-2 table")
	}

	running := uint32(0)
	for _, block := range lt.Blocks() {
		if block.BaseOffset != running {
			t.Fatalf("block baseOffset = %d, want %d", block.BaseOffset, running)
		}
		running += uint32(block.PopCount())
	}
}

func TestBuiltDictionaryRoundTripsThroughPackeddictEncode(t *testing.T) {
	b := NewBuilder("main", true, 3, packeddict.Compact)
	entries := map[string]string{}
	words := []struct {
		key  stroke.Key
		text string
	}{
		{stroke.Key{1}, "cat"},
		{stroke.Key{2}, "dog"},
		{stroke.Key{1, 2}, "catdog"},
		{stroke.Key{3, 4, 5}, "three word outline"},
	}
	for _, w := range words {
		if err := b.Add(w.key, w.text); err != nil {
			t.Fatalf("Add: %v", err)
		}
		entries[w.key.String()] = w.text
	}

	dict, err := b.Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}

	blob := packeddict.Encode(&packeddict.Collection{Dictionaries: []*packeddict.Dictionary{dict}})

	col, err := packeddict.Parse(blob)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(col.Dictionaries) != 1 {
		t.Fatalf("got %d dictionaries, want 1", len(col.Dictionaries))
	}

	parsed := col.Dictionaries[0]
	if parsed.Name() != "main" {
		t.Fatalf("Name() = %q, want main", parsed.Name())
	}

	for _, w := range words {
		got, ok := parsed.Lookup(w.key)
		if !ok || got != w.text {
			t.Fatalf("Lookup(%v) = (%q, %v), want (%q, true)", w.key, got, ok, w.text)
		}
	}
}
