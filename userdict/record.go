package userdict

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/stenocore/steno/stroke"
)

// invalidCRC and maxRecordSize mirror wal.go's InvalidCRC/MaxEntrySize:
// a placeholder CRC that can never occur from crc32.ChecksumIEEE doubles
// as an end-of-log sentinel when a writer crashed mid-append.
const (
	invalidCRC    = uint32(0xFFFFFFFF)
	maxRecordSize = 16 << 20
)

// ErrCorruptJournal is returned by decode when a record's checksum does
// not match its payload, the teacher's ErrCorruptWAL renamed to this
// package's domain.
var ErrCorruptJournal = errors.New("corrupt user dictionary journal")

// op is the journal record's TYPE byte: wal.go's OperationPut/OperationDelete
// repurposed from a raw byte store to user-dictionary define/undefine.
type op byte

const (
	opDefine op = iota
	opUndefine
)

// entry is one journal record: CRC | TOTAL_LEN | TYPE | KEY_LEN | KEY |
// VAL_LEN | VALUE, identical framing to wal.go's Log, with KEY holding a
// length-prefixed sequence of little-endian stroke masks instead of an
// arbitrary byte key.
type entry struct {
	op    op
	key   stroke.Key
	value string
}

func encodeKey(key stroke.Key) []byte {
	buf := make([]byte, 4*len(key))
	for i, s := range key {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(s))
	}
	return buf
}

func decodeKey(buf []byte) (stroke.Key, error) {
	if len(buf)%4 != 0 {
		return nil, ErrCorruptJournal
	}
	key := make(stroke.Key, len(buf)/4)
	for i := range key {
		key[i] = stroke.Stroke(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return key, nil
}

// size reports the number of bytes encode will write, so callers can
// reserve segment space before writing (segmentmanager.WriteActive's n
// argument).
func (e *entry) size() int {
	return 4 + 4 + 1 + 4 + 4*len(e.key) + 4 + len(e.value)
}

// encode writes e to w in wal.go's Log.Encode format, seeking back to
// patch in the CRC once the payload is known. w must be an io.Seeker,
// same requirement as the teacher's WAL.
func (e *entry) encode(w io.Writer) error {
	seeker, ok := w.(io.Seeker)
	if !ok {
		return fmt.Errorf("journal writer must be seekable")
	}

	keyBytes := encodeKey(e.key)
	valBytes := []byte(e.value)

	keyLen := uint32(len(keyBytes))
	valLen := uint32(len(valBytes))
	payloadLen := 1 + 4 + keyLen + 4 + valLen
	totalLen := 4 + payloadLen

	if totalLen > maxRecordSize {
		return fmt.Errorf("journal record too large: %d bytes", totalLen)
	}

	crc := crc32.NewIEEE()
	mw := io.MultiWriter(w, crc)

	if err := binary.Write(w, binary.LittleEndian, invalidCRC); err != nil {
		return err
	}
	if err := binary.Write(mw, binary.LittleEndian, totalLen); err != nil {
		return err
	}
	if err := binary.Write(mw, binary.LittleEndian, byte(e.op)); err != nil {
		return err
	}
	if err := binary.Write(mw, binary.LittleEndian, keyLen); err != nil {
		return err
	}
	if _, err := mw.Write(keyBytes); err != nil {
		return err
	}
	if err := binary.Write(mw, binary.LittleEndian, valLen); err != nil {
		return err
	}
	if _, err := mw.Write(valBytes); err != nil {
		return err
	}

	pos, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := seeker.Seek(pos-int64(totalLen)-4, io.SeekStart); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, crc.Sum32()); err != nil {
		return err
	}
	if _, err := seeker.Seek(pos, io.SeekStart); err != nil {
		return err
	}
	return nil
}

func cleanEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return io.EOF
	}
	return err
}

// decodeEntry reads one record from r, wal.go's Decode adapted to the
// entry/key shape above.
func decodeEntry(r io.Reader) (*entry, error) {
	var storedCRC uint32
	if err := binary.Read(r, binary.LittleEndian, &storedCRC); err != nil {
		return nil, cleanEOF(err)
	}
	if storedCRC == invalidCRC {
		return nil, io.EOF
	}

	var totalLen uint32
	if err := binary.Read(r, binary.LittleEndian, &totalLen); err != nil {
		return nil, cleanEOF(err)
	}
	if totalLen > maxRecordSize || totalLen < 13 {
		return nil, ErrCorruptJournal
	}

	payload := make([]byte, totalLen)
	binary.LittleEndian.PutUint32(payload[0:4], totalLen)
	if _, err := io.ReadFull(r, payload[4:]); err != nil {
		return nil, cleanEOF(err)
	}
	if crc32.ChecksumIEEE(payload) != storedCRC {
		return nil, ErrCorruptJournal
	}

	pos := 4
	e := &entry{op: op(payload[pos])}
	pos++

	keyLen := binary.LittleEndian.Uint32(payload[pos:])
	pos += 4
	if keyLen > uint32(len(payload))-uint32(pos) {
		return nil, ErrCorruptJournal
	}
	key, err := decodeKey(payload[pos : pos+int(keyLen)])
	if err != nil {
		return nil, err
	}
	e.key = key
	pos += int(keyLen)

	valLen := binary.LittleEndian.Uint32(payload[pos:])
	pos += 4
	if valLen > uint32(len(payload))-uint32(pos) {
		return nil, ErrCorruptJournal
	}
	e.value = string(payload[pos : pos+int(valLen)])

	return e, nil
}
