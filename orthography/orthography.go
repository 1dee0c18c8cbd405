// Package orthography implements the pattern-based stem+suffix
// combiner of spec §4.F: join(word, suffix) honors a table of
// regular-expression rules, suffix aliases, and auto-suffix bits,
// translated from the original engine's AddSuffix/AddSuffixInternal/
// AddCandidates (original_source/orthography.cc) into Go idiom --
// []rune/string and regexp.Regexp in place of a hand-rolled pattern
// engine, candidates as plain Go values needing no explicit free.
package orthography

import (
	"fmt"
	"regexp"

	"github.com/bits-and-blooms/bitset"
	"github.com/stenocore/steno/segment"
	"github.com/stenocore/steno/stroke"
)

// maximumPrefixLength bounds how much of word is fed to the rule
// matcher, spec §4.F step 3 ("last <=8 characters").
const maximumPrefixLength = 8

// WordList reports whether a candidate string is a known word, and its
// rank if so. Lower rank wins when multiple candidates are viable (spec
// §4.F step 4). The core has no built-in word list; callers supply one
// (e.g. loaded from the compiled dictionary's text block).
type WordList interface {
	Rank(word string) (rank int, ok bool)
}

// MapWordList is a WordList backed by a plain map, sufficient for tests
// and small embedded word lists.
type MapWordList map[string]int

func (m MapWordList) Rank(word string) (int, bool) {
	rank, ok := m[word]
	return rank, ok
}

// Rule is one compiled orthographic rewrite rule. Pattern is matched
// against the probe string `tail + " ^" + suffix`; Replacement is a Go
// regexp replacement template ($1, $2, ... referencing Pattern's
// capture groups).
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string

	// requiredChars is the quick-reject bitmask of spec §4.F "Pattern
	// compilation and quick-reject": a probe string missing any of
	// these characters cannot match Pattern, so the full regexp engine
	// is never invoked for it.
	requiredChars *bitset.BitSet
}

// RuleSpec is the uncompiled source form of a Rule, the shape tables
// are authored in (e.g. loaded from a JSON orthography definition).
type RuleSpec struct {
	Pattern       string
	Replacement   string
	RequiredChars string
}

// Alias maps a suffix to the text that should be tried in its place
// before rule matching (spec §4.F "aliases").
type Alias struct {
	Suffix string
	Alias  string
}

// AutoSuffix associates a stroke bit with the suffix text it
// contributes, consulted by the segment builder (spec §4.F
// "autoSuffixes").
type AutoSuffix struct {
	Bit  stroke.Stroke
	Text string
}

// Orthography is the compiled rule/alias/auto-suffix table plus its
// join cache.
type Orthography struct {
	rules               []Rule
	aliases             []Alias
	autoSuffixes        []AutoSuffix
	reverseAutoSuffixes map[string]stroke.Stroke
	words               WordList
	cache               *cache
}

// Config bundles the parameters New needs.
type Config struct {
	Rules               []RuleSpec
	Aliases             []Alias
	AutoSuffixes        []AutoSuffix
	ReverseAutoSuffixes map[string]stroke.Stroke
	Words               WordList
	CacheSets           int
	CacheWays           int
}

// New compiles cfg's rule patterns. Pattern compile failure is fatal at
// construction (spec §4.F "Pattern compile-time errors are fatal at
// engine init"), matching the teacher's own init-time dictionary
// validation style.
func New(cfg Config) (*Orthography, error) {
	rules := make([]Rule, len(cfg.Rules))
	for i, spec := range cfg.Rules {
		pattern, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("orthography: rule %d: compile %q: %w", i, spec.Pattern, err)
		}
		rules[i] = Rule{
			Pattern:       pattern,
			Replacement:   spec.Replacement,
			requiredChars: charMask(spec.RequiredChars),
		}
	}

	words := cfg.Words
	if words == nil {
		words = MapWordList{}
	}

	return &Orthography{
		rules:               rules,
		aliases:             cfg.Aliases,
		autoSuffixes:        cfg.AutoSuffixes,
		reverseAutoSuffixes: cfg.ReverseAutoSuffixes,
		words:               words,
		cache:               newCache(cfg.CacheSets, cfg.CacheWays),
	}, nil
}

// Suffixes returns the registered auto-suffix table, satisfying
// segment.AutoSuffixes so an *Orthography can be passed directly to
// segment.NewBuilder.
func (o *Orthography) Suffixes() []segment.AutoSuffixEntry {
	out := make([]segment.AutoSuffixEntry, len(o.autoSuffixes))
	for i, a := range o.autoSuffixes {
		out[i] = segment.AutoSuffixEntry{Bit: a.Bit, Text: a.Text}
	}
	return out
}

// ReverseAutoSuffixBits exposes the suffix-text -> stroke-bit table for
// segment.ReverseSuffixDictionary.
func (o *Orthography) ReverseAutoSuffixBits() map[string]stroke.Stroke {
	return o.reverseAutoSuffixes
}

type candidate struct {
	text string
	rank int
}

// Join computes word+suffix honoring orthographic rules, spec §4.F
// "Algorithm for join(word, suffix)". Allocation failure has no Go
// analogue (the runtime panics instead of returning an allocation
// error), so the "degrade to plain concatenation" failure path is
// exercised only via the no-candidates-matched branch, not a recovered
// panic.
func (o *Orthography) Join(word, suffix string) string {
	if cached, ok := o.cache.get(word, suffix); ok {
		return cached
	}

	result := o.joinUncached(word, suffix)
	o.cache.put(word, suffix, result)
	return result
}

func (o *Orthography) joinUncached(word, suffix string) string {
	var candidates []candidate

	for _, alias := range o.aliases {
		if alias.Suffix == suffix {
			candidates = append(candidates, o.addCandidates(word, alias.Alias)...)
		}
	}

	simple := word + suffix
	if rank, ok := o.words.Rank(simple); ok {
		candidates = append(candidates, candidate{simple, rank})
	}

	candidates = append(candidates, o.addCandidates(word, suffix)...)

	if len(candidates) > 0 {
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.rank < best.rank {
				best = c
			}
		}
		return best.text
	}

	text := word + " ^" + suffix
	for _, rule := range o.rules {
		if loc := rule.Pattern.FindStringSubmatchIndex(text); loc != nil {
			return string(rule.Pattern.ExpandString(nil, rule.Replacement, text, loc))
		}
	}

	return word + suffix
}

// addCandidates implements spec §4.F step 3: probe the word's tail plus
// suffix against every rule, quick-rejecting via the character bitmask,
// keeping only candidates with a non-negative word-list rank.
func (o *Orthography) addCandidates(word, suffix string) []candidate {
	runes := []rune(word)
	offset := 0
	tail := word
	if len(runes) > maximumPrefixLength {
		offset = len(runes) - maximumPrefixLength
		tail = string(runes[offset:])
	}

	text := tail + " ^" + suffix
	inputMask := charMask(text)

	var prefix string
	if offset != 0 {
		prefix = string(runes[:offset])
	}

	var out []candidate
	for _, rule := range o.rules {
		if !rule.requiredChars.Difference(inputMask).None() {
			continue
		}

		loc := rule.Pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		candidateText := prefix + string(rule.Pattern.ExpandString(nil, rule.Replacement, text, loc))
		rank, ok := o.words.Rank(candidateText)
		if !ok {
			continue
		}
		out = append(out, candidate{candidateText, rank})
	}
	return out
}

func charMask(s string) *bitset.BitSet {
	b := bitset.New(256)
	for _, r := range s {
		if r < 256 {
			b.Set(uint(r))
		}
	}
	return b
}
