// Package packeddict implements the read-only, population-count-indexed
// packed stroke dictionary described by spec §4.B/§6: a memory-efficient
// mapping from stroke keys to text, loaded either by constructing it
// in-memory (dictcompiler) or by parsing the on-disk collection format
// (Parse).
//
// The on-disk layout mirrors spec §6 exactly except that C pointers are
// replaced with uint32 byte offsets from the start of the blob -- Go has
// no equivalent to the firmware's flash-addressed struct pointers.
package packeddict

import "math/bits"

// Magic is the 4-byte collection header magic, spec §6 "JSC2".
const Magic = "JSC2"

// legacyMagic is the older, single-dictionary format mentioned in spec
// §9 as a migration path, not a format to reimplement. Parse rejects it
// with ErrLegacyFormat so callers get an actionable message instead of a
// generic bad-magic error.
const legacyMagic = "JSD2"

// Format selects the physical encoding of a dictionary's hash blocks and
// records, spec §6.
type Format uint8

const (
	// Compact uses a 128-bit block (4x32-bit masks) and 24-bit record
	// fields: fewer block entries, smaller records.
	Compact Format = iota
	// Full uses a 32-bit block and 32-bit record fields: simpler, larger.
	Full
)

func (f Format) String() string {
	switch f {
	case Compact:
		return "compact"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// BlockWidth is the number of hash-table slots one block of this format
// covers (spec §4.B step 2: "B is the block width, 128 for Compact, 32
// for Full").
func (f Format) BlockWidth() int {
	if f == Compact {
		return 128
	}
	return 32
}

// RecordFieldSize is the byte width of one stroke or text-offset field
// within a record of this format (spec §6: "24-bit" vs "32-bit" fields).
func (f Format) RecordFieldSize() int {
	if f == Compact {
		return 3
	}
	return 4
}

// RecordSize returns the byte size of one (stroke-key, text-offset)
// record for an outline of the given length.
func (f Format) RecordSize(length int) int {
	return f.RecordFieldSize() * (length + 1)
}

// BlockByteSize returns the serialized byte size of one hash block.
func (f Format) BlockByteSize() int {
	if f == Compact {
		return 20
	}
	return 8
}

// Block is the decoded, format-independent view of one block of the
// population-count-indexed hash table (spec §3 "Packed Dictionary"
// invariants).
type Block struct {
	Masks      [4]uint32 // only Masks[0] is used for Full
	Count      int       // 1 for Full, 4 for Compact
	BaseOffset uint32
}

// IsBitSet reports whether bitIndex (0..BlockWidth-1) is present.
func (b Block) IsBitSet(bitIndex int) bool {
	word, bit := bitIndex/32, bitIndex%32
	return b.Masks[word]&(1<<uint(bit)) != 0
}

// PopCountBefore returns the number of set bits strictly before bitIndex
// within this block, used to compute the dense record index (spec §4.B
// step 4).
func (b Block) PopCountBefore(bitIndex int) int {
	word, bit := bitIndex/32, bitIndex%32
	n := 0
	for i := 0; i < word; i++ {
		n += bits.OnesCount32(b.Masks[i])
	}
	n += bits.OnesCount32(b.Masks[word] & (1<<uint(bit) - 1))
	return n
}

// PopCount returns the total number of set bits in the block, used by
// the baseOffset invariant check (spec §8 invariant 1).
func (b Block) PopCount() int {
	n := 0
	for i := 0; i < b.Count; i++ {
		n += bits.OnesCount32(b.Masks[i])
	}
	return n
}

// NewCompactBlock builds a Block from 4 mask words and a base offset.
func NewCompactBlock(masks [4]uint32, baseOffset uint32) Block {
	return Block{Masks: masks, Count: 4, BaseOffset: baseOffset}
}

// NewFullBlock builds a Block from a single mask word and a base offset.
func NewFullBlock(mask uint32, baseOffset uint32) Block {
	return Block{Masks: [4]uint32{mask}, Count: 1, BaseOffset: baseOffset}
}

// DecodeBlock reads a serialized block: 20 bytes for Compact (4x32-bit
// masks + 32-bit baseOffset), 8 bytes for Full (32-bit mask + 32-bit
// baseOffset), little-endian (spec §6).
func (f Format) DecodeBlock(b []byte) Block {
	if f == Compact {
		return NewCompactBlock([4]uint32{
			leUint32(b[0:4]),
			leUint32(b[4:8]),
			leUint32(b[8:12]),
			leUint32(b[12:16]),
		}, leUint32(b[16:20]))
	}
	return NewFullBlock(leUint32(b[0:4]), leUint32(b[4:8]))
}

// EncodeBlock writes blk into b using this format's on-disk layout.
func (f Format) EncodeBlock(b []byte, blk Block) {
	if f == Compact {
		for i := 0; i < 4; i++ {
			putLeUint32(b[4*i:4*i+4], blk.Masks[i])
		}
		putLeUint32(b[16:20], blk.BaseOffset)
		return
	}
	putLeUint32(b[0:4], blk.Masks[0])
	putLeUint32(b[4:8], blk.BaseOffset)
}

// DecodeRecordField reads a record field of the format's field width
// (24-bit Compact or 32-bit Full), little-endian.
func (f Format) DecodeRecordField(b []byte) uint32 {
	if f == Compact {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	}
	return leUint32(b[0:4])
}

// EncodeRecordField writes v into b using this format's field width.
func (f Format) EncodeRecordField(b []byte, v uint32) {
	if f == Compact {
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
		return
	}
	putLeUint32(b[0:4], v)
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLeUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// NextPowerOfTwo returns the smallest power of two >= n, with a floor of
// 1 -- spec §3 invariant "hashMapSize is a power of two".
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
