package packeddict

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/stenocore/steno/stroke"
)

// LengthTable holds the strokes-definition for one outline length within
// a dictionary (spec §3 "Per stroke-length L, a strokes-definition").
type LengthTable struct {
	length      int
	format      Format
	hashMapSize int
	blocks      []Block
	data        []byte // raw (stroke-key, text-offset) records, block-then-bit order

	// negative lookup accelerator, spec §6.2: in-memory only, never
	// serialized, rebuilt from data at load time.
	bloom *bloom.BloomFilter
}

// NewLengthTable constructs a length table directly from already-encoded
// block and record data, used by dictcompiler and by Parse.
func NewLengthTable(length int, format Format, hashMapSize int, blocks []Block, data []byte) *LengthTable {
	lt := &LengthTable{
		length:      length,
		format:      format,
		hashMapSize: hashMapSize,
		blocks:      blocks,
		data:        data,
	}
	lt.buildAccelerator()
	return lt
}

func (lt *LengthTable) buildAccelerator() {
	size := lt.format.RecordSize(lt.length)
	count := 1
	if size > 0 {
		count = len(lt.data) / size
	}
	if count == 0 {
		count = 1
	}
	lt.bloom = bloom.NewWithEstimates(uint(count), 0.01)
	lt.forEach(func(key stroke.Key, _ uint32) {
		lt.bloom.Add(keyBytes(key))
	})
}

func keyBytes(key stroke.Key) []byte {
	b := make([]byte, 4*len(key))
	for i, s := range key {
		b[4*i] = byte(s)
		b[4*i+1] = byte(s >> 8)
		b[4*i+2] = byte(s >> 16)
		b[4*i+3] = byte(s >> 24)
	}
	return b
}

// HashMapSize reports the (power-of-two) slot count, exposed for tests
// that verify the baseOffset invariant across a whole compiled
// dictionary.
func (lt *LengthTable) HashMapSize() int { return lt.hashMapSize }

// Blocks exposes the decoded blocks, read-only, for invariant checks.
func (lt *LengthTable) Blocks() []Block { return lt.blocks }

// Data exposes the raw (stroke-key, text-offset) record bytes, read-only,
// used by Encode to re-serialize a built table.
func (lt *LengthTable) Data() []byte { return lt.data }

func (lt *LengthTable) recordAt(index int) (stroke.Key, uint32) {
	size := lt.format.RecordSize(lt.length)
	rec := lt.data[index*size : index*size+size]

	key := make(stroke.Key, lt.length)
	fieldSize := lt.format.RecordFieldSize()
	for i := 0; i < lt.length; i++ {
		key[i] = stroke.Stroke(lt.format.DecodeRecordField(rec[i*fieldSize:]))
	}
	textOffset := lt.format.DecodeRecordField(rec[lt.length*fieldSize:])
	return key, textOffset
}

// forEach walks every live (key, textOffset) record in block-then-bit
// order, matching spec §4.B's "Print" traversal.
func (lt *LengthTable) forEach(fn func(key stroke.Key, textOffset uint32)) {
	recordIndex := 0
	width := lt.format.BlockWidth()
	for _, block := range lt.blocks {
		for bit := 0; bit < width; bit++ {
			if !block.IsBitSet(bit) {
				continue
			}
			key, textOffset := lt.recordAt(recordIndex)
			fn(key, textOffset)
			recordIndex++
		}
	}
}

// lookup implements spec §4.B's probe algorithm for a single outline
// length.
func (lt *LengthTable) lookup(key stroke.Key) (uint32, bool) {
	if lt.hashMapSize == 0 {
		return 0, false
	}
	if lt.bloom != nil && !lt.bloom.Test(keyBytes(key)) {
		return 0, false
	}

	width := lt.format.BlockWidth()
	h := int(key.Hash() % uint64(lt.hashMapSize))

	for probes := 0; probes < lt.hashMapSize; probes++ {
		blockIndex := h / width
		bitIndex := h % width
		block := lt.blocks[blockIndex]

		if !block.IsBitSet(bitIndex) {
			return 0, false
		}

		recordIndex := int(block.BaseOffset) + block.PopCountBefore(bitIndex)
		recKey, textOffset := lt.recordAt(recordIndex)
		if recKey.Equal(key) {
			return textOffset, true
		}

		h = (h + 1) % lt.hashMapSize
	}
	return 0, false
}

// Dictionary is one read-only packed stroke dictionary, spec §4.B/§4.C.
type Dictionary struct {
	name                 string
	enabled              bool
	maximumOutlineLength int
	format               Format
	textBlock            []byte
	lengths              []*LengthTable // index 0 => outline length 1
}

// NewDictionary constructs a Dictionary from already-built length tables,
// used by dictcompiler.Builder.Freeze and by Parse.
func NewDictionary(name string, defaultEnabled bool, maximumOutlineLength int, format Format, textBlock []byte, lengths []*LengthTable) *Dictionary {
	return &Dictionary{
		name:                 name,
		enabled:              defaultEnabled,
		maximumOutlineLength: maximumOutlineLength,
		format:               format,
		textBlock:            textBlock,
		lengths:              lengths,
	}
}

func (d *Dictionary) Name() string             { return d.name }
func (d *Dictionary) Enabled() bool            { return d.enabled }
func (d *Dictionary) SetEnabled(enabled bool)  { d.enabled = enabled }
func (d *Dictionary) MaximumOutlineLength() int { return d.maximumOutlineLength }
func (d *Dictionary) Format() Format            { return d.format }

// LengthTables exposes the per-length tables read-only, used by Encode
// and by tests.
func (d *Dictionary) LengthTables() []*LengthTable { return d.lengths }

// TextBlock exposes the raw text block read-only, used by Encode.
func (d *Dictionary) TextBlock() []byte { return d.textBlock }

func (d *Dictionary) text(offset uint32) (string, bool) {
	if int(offset) >= len(d.textBlock) {
		return "", false
	}
	end := bytes.IndexByte(d.textBlock[offset:], 0)
	if end < 0 {
		return "", false
	}
	return string(d.textBlock[offset : int(offset)+end]), true
}

// Lookup implements spec §4.B: resolve a stroke key of length
// len(key) <= maximumOutlineLength into its dictionary text.
func (d *Dictionary) Lookup(key stroke.Key) (string, bool) {
	if len(key) == 0 || len(key) > len(d.lengths) {
		return "", false
	}
	lt := d.lengths[len(key)-1]
	if lt == nil {
		return "", false
	}
	offset, ok := lt.lookup(key)
	if !ok {
		return "", false
	}
	return d.text(offset)
}

// ReverseLookup enumerates every stroke key whose text equals text,
// across every outline length. Packed dictionaries have no reverse hash
// table of their own (spec §6 only defines the forward map), so this is
// a full scan. segment.ReverseSuffixDictionary wraps this scan: it
// checks each entry of its suffix-text map in turn and uses no sorted
// index or binary search.
func (d *Dictionary) ReverseLookup(text string) []stroke.Key {
	var out []stroke.Key
	for _, lt := range d.lengths {
		if lt == nil {
			continue
		}
		lt.forEach(func(key stroke.Key, textOffset uint32) {
			if got, ok := d.text(textOffset); ok && got == text {
				out = append(out, key.Clone())
			}
		})
	}
	return out
}

// Print emits one JSON object per entry, `{"stroke": "...", "text":
// "..."}`, walking block-by-block and bit-by-bit as spec §4.B describes.
func (d *Dictionary) Print(w io.Writer) error {
	for _, lt := range d.lengths {
		if lt == nil {
			continue
		}
		var err error
		lt.forEach(func(key stroke.Key, textOffset uint32) {
			if err != nil {
				return
			}
			text, ok := d.text(textOffset)
			if !ok {
				return
			}
			_, err = fmt.Fprintf(w, "{\"stroke\": %q, \"text\": %q}\n", key.String(), text)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
