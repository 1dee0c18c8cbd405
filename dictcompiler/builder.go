// Package dictcompiler builds packed stroke dictionaries (package
// packeddict) from an in-memory set of (stroke key, text) pairs.
//
// It plays the role spec §4.I assigns it: the write-side counterpart of
// packeddict's reader, staged the way the teacher's sst.diskSSTWriter
// stages data/index/footer blocks -- here, per-length hash blocks and
// records instead of SST data blocks.
package dictcompiler

import (
	"fmt"
	"sort"

	"github.com/stenocore/steno/packeddict"
	"github.com/stenocore/steno/stroke"
)

// loadFactor bounds the fraction of occupied slots in a built hash
// table, guaranteeing the open-addressing probe in packeddict.Lookup
// always terminates (spec §9: "the hash table maintains load < 1.0").
const loadFactor = 0.5

type entry struct {
	key  stroke.Key
	text string
}

// Builder accumulates dictionary entries and freezes them into a
// packeddict.Dictionary.
type Builder struct {
	name                 string
	defaultEnabled       bool
	maximumOutlineLength int
	format               packeddict.Format
	byLength             map[int][]entry
}

// NewBuilder starts a dictionary build. maximumOutlineLength bounds the
// stroke-key lengths Add will accept, matching the packed dictionary
// header field of the same name.
func NewBuilder(name string, defaultEnabled bool, maximumOutlineLength int, format packeddict.Format) *Builder {
	return &Builder{
		name:                 name,
		defaultEnabled:       defaultEnabled,
		maximumOutlineLength: maximumOutlineLength,
		format:               format,
		byLength:             make(map[int][]entry),
	}
}

// Add registers one (stroke key, text) entry. It is an error to add a
// key longer than the builder's maximumOutlineLength.
func (b *Builder) Add(key stroke.Key, text string) error {
	if len(key) == 0 || len(key) > b.maximumOutlineLength {
		return fmt.Errorf("dictcompiler: key length %d exceeds maximum outline length %d", len(key), b.maximumOutlineLength)
	}
	b.byLength[len(key)] = append(b.byLength[len(key)], entry{key: key.Clone(), text: text})
	return nil
}

// Freeze builds the immutable packeddict.Dictionary. It computes a
// power-of-two hashMapSize per length, resolves collisions with linear
// probing (the same scheme packeddict.Lookup probes with), and lays
// records out in block-then-bit order so the baseOffset invariant
// (spec §8 invariant 1) holds by construction.
func (b *Builder) Freeze() (*packeddict.Dictionary, error) {
	lengths := make([]*packeddict.LengthTable, b.maximumOutlineLength)
	var textBlock []byte
	textOffsets := make(map[string]uint32)

	internText := func(text string) uint32 {
		if off, ok := textOffsets[text]; ok {
			return off
		}
		off := uint32(len(textBlock))
		textBlock = append(textBlock, []byte(text)...)
		textBlock = append(textBlock, 0)
		textOffsets[text] = off
		return off
	}

	for length := 1; length <= b.maximumOutlineLength; length++ {
		entries := b.byLength[length]
		if len(entries) == 0 {
			continue
		}

		lt, err := b.freezeLength(length, entries, internText)
		if err != nil {
			return nil, fmt.Errorf("dictcompiler: length %d: %w", length, err)
		}
		lengths[length-1] = lt
	}

	return packeddict.NewDictionary(b.name, b.defaultEnabled, b.maximumOutlineLength, b.format, textBlock, lengths), nil
}

func (b *Builder) freezeLength(length int, entries []entry, internText func(string) uint32) (*packeddict.LengthTable, error) {
	hashMapSize := packeddict.NextPowerOfTwo(int(float64(len(entries))/loadFactor) + 1)

	slots := make([]*entry, hashMapSize)
	for i := range entries {
		e := &entries[i]
		h := int(e.key.Hash() % uint64(hashMapSize))
		for slots[h] != nil {
			h = (h + 1) % hashMapSize
		}
		slots[h] = e
	}

	width := b.format.BlockWidth()
	blockCount := (hashMapSize + width - 1) / width
	blocks := make([]packeddict.Block, blockCount)

	fieldSize := b.format.RecordFieldSize()
	recordSize := b.format.RecordSize(length)
	data := make([]byte, 0, recordSize*len(entries))

	baseOffset := uint32(0)
	for blockIdx := 0; blockIdx < blockCount; blockIdx++ {
		var masks [4]uint32
		for bit := 0; bit < width; bit++ {
			slot := blockIdx*width + bit
			if slot >= hashMapSize || slots[slot] == nil {
				continue
			}
			masks[bit/32] |= 1 << uint(bit%32)

			e := slots[slot]
			rec := make([]byte, recordSize)
			for i, s := range e.key {
				b.format.EncodeRecordField(rec[i*fieldSize:], uint32(s))
			}
			b.format.EncodeRecordField(rec[length*fieldSize:], internText(e.text))
			data = append(data, rec...)
		}

		if b.format == packeddict.Compact {
			blocks[blockIdx] = packeddict.NewCompactBlock(masks, baseOffset)
		} else {
			blocks[blockIdx] = packeddict.NewFullBlock(masks[0], baseOffset)
		}
		baseOffset += uint32(blocks[blockIdx].PopCount())
	}

	if int(baseOffset) != len(entries) {
		return nil, fmt.Errorf("internal error: built %d records, expected %d", baseOffset, len(entries))
	}

	return packeddict.NewLengthTable(length, b.format, hashMapSize, blocks, data), nil
}

// Lengths returns the outline lengths that currently have at least one
// entry, in ascending order.
func (b *Builder) Lengths() []int {
	keys := make([]int, 0, len(b.byLength))
	for k, v := range b.byLength {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)
	return keys
}
