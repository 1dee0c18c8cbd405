package stroke

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// MaxOutlineLength is the hard ceiling on stroke sequence length that any
// dictionary in this engine may declare, matching the 8-bit
// maximumOutlineLength field of the packed dictionary header (spec §6).
const MaxOutlineLength = 32

// siphash key pair used to mix stroke-key bytes into a hash table index.
// Dictionaries are trusted, compiled-in data (spec §4.B "no failure modes
// ... dictionary is trusted"), so this key exists only to spread bits
// evenly across hashMapSize slots, not to resist adversarial input.
const (
	hashK0 = 0x6a7938656c617672 // "javascript"-ish filler, arbitrary fixed constant
	hashK1 = 0x6f6e2073746e656f
)

// Key is a stroke sequence of length 1..MaxOutlineLength used as a
// dictionary lookup key. Equality is positional: two keys are equal only
// if they have the same length and the same stroke at every position.
type Key []Stroke

// Equal reports whether k and other contain the same strokes in the same
// order.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// Hash mixes the concatenated little-endian stroke masks of the key into a
// 64-bit value, per spec §3 ("Hash is computed as a mixing function over
// the concatenated masks").
func (k Key) Hash() uint64 {
	buf := make([]byte, 4*len(k))
	for i, s := range k {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(s))
	}
	return siphash.Hash(hashK0, hashK1, buf)
}

// String renders the key as slash-separated strokes, e.g. "HEL/HROE".
func (k Key) String() string {
	if len(k) == 0 {
		return ""
	}
	out := k[0].String()
	for _, s := range k[1:] {
		out += "/" + s.String()
	}
	return out
}

// Clone returns an independent copy of the key.
func (k Key) Clone() Key {
	out := make(Key, len(k))
	copy(out, k)
	return out
}
