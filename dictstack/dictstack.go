// Package dictstack provides an ordered list of dictionaries searched
// front-to-back for a translation, with enable/disable/toggle by name.
package dictstack

import (
	"fmt"
	"io"

	"github.com/stenocore/steno/stroke"
)

// Dictionary is the interface every dictionary in the stack must satisfy.
// packeddict.Dictionary and userdict.Dictionary both implement it
// structurally, with no import of this package, avoiding an import
// cycle between dictstack and its members.
type Dictionary interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	MaximumOutlineLength() int
	Lookup(key stroke.Key) (string, bool)
	ReverseLookup(text string) []stroke.Key
	Print(w io.Writer) error
}

// Stack is an ordered, front-to-back priority list of dictionaries.
// Index 0 has highest priority: the first enabled dictionary with a
// match wins.
type Stack struct {
	dicts []Dictionary
}

// New builds a stack from dicts in priority order, front first.
func New(dicts ...Dictionary) *Stack {
	return &Stack{dicts: dicts}
}

// Add appends a dictionary at the back of the stack (lowest priority).
func (s *Stack) Add(d Dictionary) {
	s.dicts = append(s.dicts, d)
}

// Dictionaries exposes the stack's members in priority order, read-only.
func (s *Stack) Dictionaries() []Dictionary { return s.dicts }

func (s *Stack) find(name string) Dictionary {
	for _, d := range s.dicts {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// EnableByName enables the named dictionary. It reports an error if no
// dictionary by that name is in the stack.
func (s *Stack) EnableByName(name string) error {
	d := s.find(name)
	if d == nil {
		return fmt.Errorf("dictstack: no dictionary named %q", name)
	}
	d.SetEnabled(true)
	return nil
}

// DisableByName disables the named dictionary.
func (s *Stack) DisableByName(name string) error {
	d := s.find(name)
	if d == nil {
		return fmt.Errorf("dictstack: no dictionary named %q", name)
	}
	d.SetEnabled(false)
	return nil
}

// ToggleByName flips the named dictionary's enabled state.
func (s *Stack) ToggleByName(name string) error {
	d := s.find(name)
	if d == nil {
		return fmt.Errorf("dictstack: no dictionary named %q", name)
	}
	d.SetEnabled(!d.Enabled())
	return nil
}

// MaximumOutlineLength is the largest maximum outline length among the
// enabled dictionaries, the bound a segment builder should use for its
// re-translation window (spec §4.C/§4.E).
func (s *Stack) MaximumOutlineLength() int {
	max := 0
	for _, d := range s.dicts {
		if !d.Enabled() {
			continue
		}
		if n := d.MaximumOutlineLength(); n > max {
			max = n
		}
	}
	return max
}

// Lookup searches enabled dictionaries front-to-back and returns the
// first match, along with the name of the dictionary that produced it.
func (s *Stack) Lookup(key stroke.Key) (text string, source string, ok bool) {
	for _, d := range s.dicts {
		if !d.Enabled() {
			continue
		}
		if text, ok := d.Lookup(key); ok {
			return text, d.Name(), true
		}
	}
	return "", "", false
}

// ReverseLookup collects every stroke key mapping to text across every
// enabled dictionary, highest-priority dictionary's results first.
func (s *Stack) ReverseLookup(text string) []stroke.Key {
	var out []stroke.Key
	for _, d := range s.dicts {
		if !d.Enabled() {
			continue
		}
		out = append(out, d.ReverseLookup(text)...)
	}
	return out
}
