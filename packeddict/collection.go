package packeddict

import (
	"bytes"
	"fmt"
)

// Collection is a loaded set of dictionaries sharing one blob, spec §6
// "Collection header".
type Collection struct {
	HasReverseLookup bool
	Dictionaries     []*Dictionary
}

// Wire layout constants (byte offsets/sizes), spec §6 with pointers
// replaced by offsets -- see package doc comment. Exported so
// dictcompiler (the write-side counterpart of this reader) can lay out
// the same regions without duplicating magic numbers.
const (
	CollectionHeaderSize = 16 // magic(4) + count(2) + hasReverse(1) + pad(1) + textBlockOff(4) + textBlockLen(4)
	DictHeaderSize       = 16 // enabled(1) + maxLen(1) + format(1) + pad(1) + nameOff(4) + textBlockOff(4) + strokesDefArrayOff(4)
	StrokesDefSize       = 20 // hashMapSize(4) + dataOff(4) + dataLen(4) + blocksOff(4) + blocksCount(4)
)

const (
	collectionHeaderSize = CollectionHeaderSize
	dictHeaderSize       = DictHeaderSize
	strokesDefSize       = StrokesDefSize
)

// Parse decodes a serialized JSC2 collection. Per spec §7, a malformed
// dictionary is a fatal, init-time condition: Parse returns an error
// rather than panicking, and callers are expected to treat that error as
// fatal to engine construction.
func Parse(data []byte) (*Collection, error) {
	if len(data) < collectionHeaderSize {
		return nil, ErrTruncated
	}

	magic := string(data[0:4])
	if magic == legacyMagic {
		return nil, ErrLegacyFormat
	}
	if magic != Magic {
		return nil, ErrBadMagic
	}

	dictionaryCount := int(data[4]) | int(data[5])<<8
	hasReverseLookup := data[6] != 0

	dictOffsetsStart := collectionHeaderSize
	dictOffsetsEnd := dictOffsetsStart + 4*dictionaryCount
	if dictOffsetsEnd > len(data) {
		return nil, ErrTruncated
	}

	dicts := make([]*Dictionary, 0, dictionaryCount)
	for i := 0; i < dictionaryCount; i++ {
		headerOffset := leUint32(data[dictOffsetsStart+4*i:])
		dict, err := parseDictionary(data, headerOffset)
		if err != nil {
			return nil, fmt.Errorf("packeddict: dictionary %d: %w", i, err)
		}
		dicts = append(dicts, dict)
	}

	return &Collection{HasReverseLookup: hasReverseLookup, Dictionaries: dicts}, nil
}

func parseDictionary(data []byte, headerOffset uint32) (*Dictionary, error) {
	if int(headerOffset)+dictHeaderSize > len(data) {
		return nil, ErrOffsetInvalid
	}
	h := data[headerOffset:]

	defaultEnabled := h[0] != 0
	maxOutlineLength := int(h[1])
	format := Format(h[2])
	nameOffset := leUint32(h[4:8])
	textBlockOffset := leUint32(h[8:12])
	strokesDefArrayOffset := leUint32(h[12:16])

	name, err := readCString(data, nameOffset)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	if int(textBlockOffset) > len(data) {
		return nil, ErrOffsetInvalid
	}
	textBlock := data[textBlockOffset:]

	arrayEnd := int(strokesDefArrayOffset) + 4*maxOutlineLength
	if arrayEnd > len(data) {
		return nil, ErrTruncated
	}

	lengths := make([]*LengthTable, maxOutlineLength)
	for l := 0; l < maxOutlineLength; l++ {
		defOffset := leUint32(data[int(strokesDefArrayOffset)+4*l:])
		if defOffset == 0 {
			continue
		}
		lt, err := parseLengthTable(data, defOffset, l+1, format)
		if err != nil {
			return nil, fmt.Errorf("length %d: %w", l+1, err)
		}
		lengths[l] = lt
	}

	return NewDictionary(name, defaultEnabled, maxOutlineLength, format, textBlock, lengths), nil
}

func parseLengthTable(data []byte, defOffset uint32, length int, format Format) (*LengthTable, error) {
	if int(defOffset)+strokesDefSize > len(data) {
		return nil, ErrOffsetInvalid
	}
	d := data[defOffset:]

	hashMapSize := int(leUint32(d[0:4]))
	dataOffset := leUint32(d[4:8])
	dataLength := leUint32(d[8:12])
	blocksOffset := leUint32(d[12:16])
	blocksCount := int(leUint32(d[16:20]))

	if int(dataOffset)+int(dataLength) > len(data) {
		return nil, ErrTruncated
	}
	recordData := data[dataOffset : dataOffset+dataLength]

	blockSize := format.BlockByteSize()
	if int(blocksOffset)+blocksCount*blockSize > len(data) {
		return nil, ErrTruncated
	}
	blocks := make([]Block, blocksCount)
	for i := 0; i < blocksCount; i++ {
		blocks[i] = format.DecodeBlock(data[int(blocksOffset)+i*blockSize:])
	}

	return NewLengthTable(length, format, hashMapSize, blocks, recordData), nil
}

func readCString(data []byte, offset uint32) (string, error) {
	if int(offset) > len(data) {
		return "", ErrOffsetInvalid
	}
	end := bytes.IndexByte(data[offset:], 0)
	if end < 0 {
		return "", ErrBadTextOffset
	}
	return string(data[offset : int(offset)+end]), nil
}
