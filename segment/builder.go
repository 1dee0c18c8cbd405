package segment

import "github.com/stenocore/steno/stroke"

// Dictionaries is the subset of dictstack.Stack the builder needs.
// Declared here, not imported from dictstack, so callers can pass any
// lookup source (a full stack, a single dictionary, a test double)
// without this package importing dictstack.
type Dictionaries interface {
	MaximumOutlineLength() int
	Lookup(key stroke.Key) (text string, source string, ok bool)
}

// AutoSuffixes exposes the stroke-bit -> suffix-text table of spec
// §4.F's autoSuffixes, consulted when no length of the window matches.
type AutoSuffixes interface {
	// Suffixes returns every registered (bit, text) pair, in a stable
	// order, so retry order is deterministic.
	Suffixes() []AutoSuffixEntry
}

// AutoSuffixEntry is one entry of an AutoSuffixes table.
type AutoSuffixEntry struct {
	Bit  stroke.Stroke
	Text string
}

// Builder runs the longest-match algorithm of spec §4.E over a window
// of strokes.
type Builder struct {
	Dicts        Dictionaries
	AutoSuffixes AutoSuffixes // nil disables auto-suffix retry
}

// NewBuilder constructs a Builder over dicts. autoSuffixes may be nil.
func NewBuilder(dicts Dictionaries, autoSuffixes AutoSuffixes) *Builder {
	return &Builder{Dicts: dicts, AutoSuffixes: autoSuffixes}
}

// Build translates strokes[0:] into a segment list whose stroke spans
// sum to len(strokes) (spec §4.E "Contract").
func (b *Builder) Build(strokes []stroke.Stroke) List {
	var out List
	maxLen := b.Dicts.MaximumOutlineLength()
	if maxLen <= 0 {
		maxLen = 1
	}

	p := 0
	end := len(strokes)
	for p < end {
		l := end - p
		if l > maxLen {
			l = maxLen
		}

		if seg, consumed, ok := b.matchLongest(strokes, p, l); ok {
			out = append(out, seg)
			p += consumed
			continue
		}

		if segs, consumed, ok := b.matchAutoSuffix(strokes, p, l); ok {
			out = append(out, segs...)
			p += consumed
			continue
		}

		out = append(out, Segment{
			Start:         p,
			Length:        1,
			Text:          strokes[p].String(),
			Fingerspelled: true,
		})
		p++
	}

	return out
}

// matchLongest tries lengths l down to 1, spec §4.E step 2.
func (b *Builder) matchLongest(strokes []stroke.Stroke, p, l int) (Segment, int, bool) {
	for length := l; length >= 1; length-- {
		key := toKey(strokes[p : p+length])
		if text, source, ok := b.Dicts.Lookup(key); ok {
			return Segment{Start: p, Length: length, Text: text, Source: source}, length, true
		}
	}
	return Segment{}, 0, false
}

// matchAutoSuffix retries the full-length window with a registered
// auto-suffix bit stripped from its last stroke, spec §4.E
// "Auto-suffix".
func (b *Builder) matchAutoSuffix(strokes []stroke.Stroke, p, l int) (List, int, bool) {
	if b.AutoSuffixes == nil || l == 0 {
		return nil, 0, false
	}

	last := strokes[p+l-1]
	for _, entry := range b.AutoSuffixes.Suffixes() {
		if !last.Has(entry.Bit) {
			continue
		}

		modified := make([]stroke.Stroke, l)
		copy(modified, strokes[p:p+l])
		modified[l-1] = last &^ entry.Bit

		if text, source, ok := b.Dicts.Lookup(toKey(modified)); ok {
			main := Segment{Start: p, Length: l, Text: text, Source: source}
			suffix := Segment{Start: p + l, Length: 0, Text: entry.Text, Synthetic: true}
			return List{main, suffix}, l, true
		}
	}
	return nil, 0, false
}

func toKey(s []stroke.Stroke) stroke.Key {
	k := make(stroke.Key, len(s))
	copy(k, s)
	return k
}
