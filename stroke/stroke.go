// Package stroke defines the fixed-width stroke value type and stroke
// sequences (keys) used to index the dictionary stack.
package stroke

import (
	"fmt"
	"strings"
)

// Stroke is one chord: a bitmask of simultaneously pressed steno keys.
// Bit position i corresponds to KeyLabels[i].
type Stroke uint32

// Undo is the canonical sentinel stroke recognized by the engine as the
// undo command. It is the combination that cannot occur from normal
// chording (the number bar together with every letter key).
const Undo Stroke = 1<<len(KeyLabels) - 1

// KeyLabels gives the canonical on-the-wire ordering of steno keys, left
// to right across the keyboard. Bit i of a Stroke is set when KeyLabels[i]
// is pressed in that chord.
var KeyLabels = [...]string{
	"#",
	"S-", "T-", "K-", "P-", "W-", "H-", "R-",
	"A-", "O-",
	"*",
	"-E", "-U",
	"-F", "-R", "-P", "-B", "-L", "-G", "-T", "-S", "-D", "-Z",
}

// Union returns the chord formed by pressing both strokes' keys at once.
func (s Stroke) Union(other Stroke) Stroke { return s | other }

// Has reports whether every key set in mask is also set in s.
func (s Stroke) Has(mask Stroke) bool { return s&mask == mask }

// String renders the stroke using the canonical key labels, e.g. "KAT",
// "TPHO*ER" or "-FT": a '-' precedes the right-bank keys when no vowel
// or '*' separates them from the left bank.
func (s Stroke) String() string {
	if s == 0 {
		return ""
	}

	const middleKeys = Stroke(1<<8 | 1<<9 | 1<<10 | 1<<11 | 1<<12)
	hyphenWritten := s&middleKeys != 0

	var b strings.Builder
	for i, label := range KeyLabels {
		if s&(1<<uint(i)) == 0 {
			continue
		}
		if label == "#" {
			b.WriteByte('#')
			continue
		}
		if i >= 13 && !hyphenWritten {
			b.WriteByte('-')
			hyphenWritten = true
		}
		b.WriteString(strings.Trim(label, "-"))
	}
	return b.String()
}

var (
	leftBankBits  = map[rune]uint{'S': 1, 'T': 2, 'K': 3, 'P': 4, 'W': 5, 'H': 6, 'R': 7}
	vowelBits     = map[rune]uint{'A': 8, 'O': 9, 'E': 11, 'U': 12}
	rightBankBits = map[rune]uint{'F': 13, 'R': 14, 'P': 15, 'B': 16, 'L': 17, 'G': 18, 'T': 19, 'S': 20, 'D': 21, 'Z': 22}
)

// Parse reverses String: it reads a steno chord written in the KeyLabels
// order (left-bank consonants, vowels, right-bank consonants), with an
// optional explicit '-' marking the left/right boundary for outlines
// that are otherwise ambiguous (e.g. a right-bank-only "-FT"). Letters
// that appear on both banks (R, P, T, S) are resolved by which phase of
// the chord has been reached: left-bank until a vowel or '-' is seen,
// right-bank afterward.
func Parse(s string) (Stroke, error) {
	const (
		phaseLeft = iota
		phaseVowel
		phaseRight
	)

	var result Stroke
	phase := phaseLeft

	for _, r := range s {
		switch r {
		case '#':
			result |= 1 << 0
			continue
		case '-':
			if phase < phaseRight {
				phase = phaseRight
			}
			continue
		case '*':
			if phase == phaseRight {
				return 0, fmt.Errorf("stroke %q: '*' cannot appear in the right bank", s)
			}
			phase = phaseVowel
			result |= 1 << 10
			continue
		}

		switch phase {
		case phaseLeft:
			if bit, ok := leftBankBits[r]; ok {
				result |= 1 << bit
				continue
			}
			if bit, ok := vowelBits[r]; ok {
				phase = phaseVowel
				result |= 1 << bit
				continue
			}
			return 0, fmt.Errorf("stroke %q: unexpected %q in left bank", s, r)
		case phaseVowel:
			if bit, ok := vowelBits[r]; ok {
				result |= 1 << bit
				continue
			}
			phase = phaseRight
			if bit, ok := rightBankBits[r]; ok {
				result |= 1 << bit
				continue
			}
			return 0, fmt.Errorf("stroke %q: unexpected %q after vowels", s, r)
		default:
			if bit, ok := rightBankBits[r]; ok {
				result |= 1 << bit
				continue
			}
			return 0, fmt.Errorf("stroke %q: unexpected %q in right bank", s, r)
		}
	}

	return result, nil
}
