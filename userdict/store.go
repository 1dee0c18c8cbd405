// Package userdict implements the default, file-backed user dictionary
// (spec §6 "User dictionary interface (collaborator)"): an in-memory
// ordered store of stroke.Key -> text, made durable by a CRC-guarded
// append-only journal replayed on open.
package userdict

import (
	"math/rand"

	"github.com/stenocore/steno/stroke"
)

const maxLevel = 32

// less orders two stroke keys lexicographically by stroke value, then by
// length, giving the "canonical stroke order" spec §4.J's print/reverse
// enumeration wants. memtable/skip_list.go's ordered constraint only
// covers scalar types with a native '<'; stroke.Key has none, so the
// store below calls this function directly instead of using '<'.
func less(a, b stroke.Key) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func equal(a, b stroke.Key) bool { return a.Equal(b) }

type record struct {
	key   stroke.Key
	value string
}

type node struct {
	record  record
	forward []*node
}

func newNode(key stroke.Key, value string, levels int) *node {
	return &node{record: record{key, value}, forward: make([]*node, levels+1)}
}

// store is an in-memory ordered map from stroke.Key to translation text,
// adapted from memtable.SkipList[K,V] (memtable/skip_list.go) with the
// scalar ordered constraint replaced by the less/equal comparators above.
type store struct {
	head   *node
	levels int
	size   int
}

func newStore() *store {
	return &store{head: newNode(nil, "", 0), levels: -1}
}

func (s *store) get(key stroke.Key) (string, bool) {
	curr := s.head
	for level := s.levels; level >= 0; level-- {
		for curr.forward[level] != nil && less(curr.forward[level].record.key, key) {
			curr = curr.forward[level]
		}
		if curr.forward[level] != nil && equal(curr.forward[level].record.key, key) {
			return curr.forward[level].record.value, true
		}
	}
	return "", false
}

func (s *store) adjustLevels(level int) {
	prev := s.head.forward
	s.head = newNode(nil, "", level)
	s.levels = level
	copy(s.head.forward, prev)
}

func (s *store) randomLevel() int {
	level := 0
	for rand.Int31()&1 == 0 && level < maxLevel {
		level++
	}
	return level
}

func (s *store) put(key stroke.Key, value string) {
	newLevel := s.randomLevel()
	if newLevel > s.levels {
		s.adjustLevels(newLevel)
	}

	updates := make([]*node, s.levels+1)
	x := s.head
	for level := s.levels; level >= 0; level-- {
		for x.forward[level] != nil && less(x.forward[level].record.key, key) {
			x = x.forward[level]
		}
		updates[level] = x
	}

	if x.forward[0] != nil && equal(x.forward[0].record.key, key) {
		x.forward[0].record.value = value
		return
	}

	n := newNode(key, value, newLevel)
	for level := 0; level <= newLevel; level++ {
		n.forward[level] = updates[level].forward[level]
		updates[level].forward[level] = n
	}
	s.size++
}

func (s *store) delete(key stroke.Key) {
	x := s.head
	found := false
	for level := s.levels; level >= 0; level-- {
		for x.forward[level] != nil && less(x.forward[level].record.key, key) {
			x = x.forward[level]
		}
		if x.forward[level] != nil && equal(x.forward[level].record.key, key) {
			x.forward[level] = x.forward[level].forward[level]
			found = true
		}
	}

	for s.levels > 0 && s.head.forward[s.levels] == nil {
		s.levels--
		s.head.forward = s.head.forward[:s.levels+1]
	}

	if found {
		s.size--
	}
}

// each calls fn for every entry in ascending key order.
func (s *store) each(fn func(key stroke.Key, value string)) {
	for curr := s.head.forward[0]; curr != nil; curr = curr.forward[0] {
		fn(curr.record.key, curr.record.value)
	}
}

