package packeddict

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stenocore/steno/stroke"
)

func buildSingleEntryDict(t *testing.T, format Format) *Dictionary {
	t.Helper()

	key := stroke.Key{7}
	text := "hello"
	textBlock := append([]byte(text), 0)

	hashMapSize := 4
	h := int(key.Hash() % uint64(hashMapSize))
	width := format.BlockWidth()
	blockCount := (hashMapSize + width - 1) / width

	blocks := make([]Block, blockCount)
	blockIdx, bitIdx := h/width, h%width
	var masks [4]uint32
	masks[bitIdx/32] = 1 << uint(bitIdx%32)
	if format == Compact {
		blocks[blockIdx] = NewCompactBlock(masks, 0)
	} else {
		blocks[blockIdx] = NewFullBlock(masks[0], 0)
	}

	fieldSize := format.RecordFieldSize()
	rec := make([]byte, format.RecordSize(1))
	format.EncodeRecordField(rec[0:], uint32(key[0]))
	format.EncodeRecordField(rec[fieldSize:], 0)

	lt := NewLengthTable(1, format, hashMapSize, blocks, rec)
	return NewDictionary("test", true, 1, format, textBlock, []*LengthTable{lt})
}

func TestLookupHitAndMiss(t *testing.T) {
	for _, format := range []Format{Compact, Full} {
		t.Run(format.String(), func(t *testing.T) {
			dict := buildSingleEntryDict(t, format)

			got, ok := dict.Lookup(stroke.Key{7})
			if !ok || got != "hello" {
				t.Fatalf("Lookup(7) = (%q, %v), want (hello, true)", got, ok)
			}

			if _, ok := dict.Lookup(stroke.Key{8}); ok {
				t.Fatal("Lookup(8) should miss")
			}

			if _, ok := dict.Lookup(stroke.Key{7, 8}); ok {
				t.Fatal("Lookup of wrong-length key should miss")
			}
		})
	}
}

func TestReverseLookup(t *testing.T) {
	dict := buildSingleEntryDict(t, Compact)

	keys := dict.ReverseLookup("hello")
	if len(keys) != 1 || !keys[0].Equal(stroke.Key{7}) {
		t.Fatalf("ReverseLookup(hello) = %v, want [[7]]", keys)
	}

	if keys := dict.ReverseLookup("nope"); len(keys) != 0 {
		t.Fatalf("ReverseLookup(nope) = %v, want empty", keys)
	}
}

func TestPrintEmitsJSONPerEntry(t *testing.T) {
	dict := buildSingleEntryDict(t, Compact)

	var buf bytes.Buffer
	if err := dict.Print(&buf); err != nil {
		t.Fatalf("Print: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"text": "hello"`) {
		t.Fatalf("Print output missing entry: %q", out)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	blob := make([]byte, 32)
	copy(blob, "XXXX")

	if _, err := Parse(blob); err != ErrBadMagic {
		t.Fatalf("Parse() err = %v, want ErrBadMagic", err)
	}
}

func TestParseRejectsLegacyMagic(t *testing.T) {
	blob := make([]byte, 32)
	copy(blob, legacyMagic)

	if _, err := Parse(blob); err != ErrLegacyFormat {
		t.Fatalf("Parse() err = %v, want ErrLegacyFormat", err)
	}
}

func TestParseRejectsTruncated(t *testing.T) {
	if _, err := Parse([]byte{1, 2, 3}); err != ErrTruncated {
		t.Fatalf("Parse() err = %v, want ErrTruncated", err)
	}
}
