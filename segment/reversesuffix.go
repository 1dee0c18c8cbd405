package segment

import (
	"io"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/stenocore/steno/stroke"
)

// Joiner is the orthography.Join contract (spec §4.F), declared here to
// avoid this package importing orthography.
type Joiner interface {
	Join(word, suffix string) string
}

// ReverseSuffixDictionary wraps a prefix (stem) dictionary to answer
// reverse lookups for text ending in a known suffix, by stripping the
// suffix, reverse-looking-up the stem, and recombining the suffix's
// stroke bit into the stem's last stroke (spec §4.E "Reverse lookup",
// grounded on the original engine's StenoReverseSuffixDictionary: a
// prefix dictionary plus a suffix list plus an orthography instance).
// It forwards every other operation to the wrapped prefix dictionary,
// matching StenoWrappedDictionary's pass-through design.
type ReverseSuffixDictionary struct {
	name   string
	prefix Dictionary
	join   Joiner

	// suffixBits is spec §4.F's reverseAutoSuffixes: suffix text ->
	// the stroke bit that, merged into the stem's last stroke, encodes
	// that suffix.
	suffixBits map[string]stroke.Stroke

	cache *lru.Cache[string, []stroke.Key]
}

// Dictionary is the subset of dictstack.Dictionary a wrapped prefix
// dictionary must supply.
type Dictionary interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	MaximumOutlineLength() int
	Lookup(key stroke.Key) (string, bool)
	ReverseLookup(text string) []stroke.Key
	Print(w io.Writer) error
}

// NewReverseSuffixDictionary builds a reverse-suffix dictionary named
// name over prefix, using join for recombination and suffixBits as the
// suffix-text -> stroke-bit table. cacheSize bounds the suggestion
// cache (hashicorp/golang-lru), distinct from orthography's own
// set-associative join cache.
func NewReverseSuffixDictionary(name string, prefix Dictionary, join Joiner, suffixBits map[string]stroke.Stroke, cacheSize int) *ReverseSuffixDictionary {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, _ := lru.New[string, []stroke.Key](cacheSize)
	return &ReverseSuffixDictionary{name: name, prefix: prefix, join: join, suffixBits: suffixBits, cache: cache}
}

func (r *ReverseSuffixDictionary) Name() string             { return r.name }
func (r *ReverseSuffixDictionary) Enabled() bool            { return r.prefix.Enabled() }
func (r *ReverseSuffixDictionary) SetEnabled(enabled bool)  { r.prefix.SetEnabled(enabled) }
func (r *ReverseSuffixDictionary) MaximumOutlineLength() int { return r.prefix.MaximumOutlineLength() }
func (r *ReverseSuffixDictionary) Print(w io.Writer) error  { return r.prefix.Print(w) }

func (r *ReverseSuffixDictionary) Lookup(key stroke.Key) (string, bool) {
	return r.prefix.Lookup(key)
}

// ReverseLookup implements spec §4.E's reverse-suffix recombination.
func (r *ReverseSuffixDictionary) ReverseLookup(text string) []stroke.Key {
	if cached, ok := r.cache.Get(text); ok {
		return cached
	}

	var out []stroke.Key
	for suffixText, bit := range r.suffixBits {
		if !strings.HasSuffix(text, suffixText) {
			continue
		}
		stem := strings.TrimSuffix(text, suffixText)
		if stem == "" {
			continue
		}
		if r.join.Join(stem, suffixText) != text {
			continue
		}

		for _, stemKey := range r.prefix.ReverseLookup(stem) {
			if len(stemKey) == 0 {
				continue
			}
			combined := stemKey.Clone()
			combined[len(combined)-1] = combined[len(combined)-1].Union(bit)
			out = append(out, combined)
		}
	}

	r.cache.Add(text, out)
	return out
}
