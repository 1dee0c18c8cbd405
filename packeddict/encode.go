package packeddict

// Encode serializes a Collection back into the wire layout Parse reads,
// the write-side counterpart dictcompiler needs to turn a freshly built
// *Dictionary into bytes a later process can Parse again. Mirrors
// parseDictionary/parseLengthTable's field order exactly, in reverse.
func Encode(c *Collection) []byte {
	buf := make([]byte, collectionHeaderSize+4*len(c.Dictionaries))

	dictOffsets := make([]uint32, len(c.Dictionaries))
	for i, d := range c.Dictionaries {
		dictOffsets[i] = uint32(len(buf))
		buf = encodeDictionary(buf, d)
	}

	copy(buf[0:4], []byte(Magic))
	buf[4] = byte(len(c.Dictionaries))
	buf[5] = byte(len(c.Dictionaries) >> 8)
	if c.HasReverseLookup {
		buf[6] = 1
	}
	for i, off := range dictOffsets {
		putLeUint32(buf[collectionHeaderSize+4*i:], off)
	}

	return buf
}

func encodeDictionary(buf []byte, d *Dictionary) []byte {
	headerStart := len(buf)
	buf = append(buf, make([]byte, dictHeaderSize)...)

	nameOffset := uint32(len(buf))
	buf = append(buf, []byte(d.Name())...)
	buf = append(buf, 0)

	maxLen := d.MaximumOutlineLength()
	strokesDefArrayOffset := uint32(len(buf))
	buf = append(buf, make([]byte, 4*maxLen)...)

	lengths := d.LengthTables()
	blockSize := d.Format().BlockByteSize()
	for l := 0; l < maxLen; l++ {
		lt := lengths[l]
		if lt == nil {
			continue
		}

		defOffset := uint32(len(buf))
		putLeUint32(buf[strokesDefArrayOffset+4*uint32(l):], defOffset)
		buf = append(buf, make([]byte, strokesDefSize)...)

		blocksOffset := uint32(len(buf))
		for _, blk := range lt.Blocks() {
			blockBytes := make([]byte, blockSize)
			d.Format().EncodeBlock(blockBytes, blk)
			buf = append(buf, blockBytes...)
		}

		dataOffset := uint32(len(buf))
		buf = append(buf, lt.Data()...)

		putLeUint32(buf[defOffset:], uint32(lt.HashMapSize()))
		putLeUint32(buf[defOffset+4:], dataOffset)
		putLeUint32(buf[defOffset+8:], uint32(len(lt.Data())))
		putLeUint32(buf[defOffset+12:], blocksOffset)
		putLeUint32(buf[defOffset+16:], uint32(len(lt.Blocks())))
	}

	textBlockOffset := uint32(len(buf))
	buf = append(buf, d.TextBlock()...)

	if d.Enabled() {
		buf[headerStart] = 1
	}
	buf[headerStart+1] = byte(maxLen)
	buf[headerStart+2] = byte(d.Format())
	putLeUint32(buf[headerStart+4:], nameOffset)
	putLeUint32(buf[headerStart+8:], textBlockOffset)
	putLeUint32(buf[headerStart+12:], strokesDefArrayOffset)

	return buf
}
